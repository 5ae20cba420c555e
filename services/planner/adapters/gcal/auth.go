package gcal

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// HTTPClient returns an OAuth2 client allowed to edit calendar events. Without a
// saved token it prints the consent URL to prompt and reads the code from answers.
func HTTPClient(ctx context.Context, credentialsFile, tokenFile string, prompt io.Writer, answers io.Reader) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client credentials %s: %w", credentialsFile, err)
	}

	cfg, err := google.ConfigFromJSON(b, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse client credentials: %w", err)
	}

	tok, err := loadToken(tokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		tok, err = exchangeCode(ctx, cfg, prompt, answers)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return cfg.Client(ctx, tok), nil
}

func exchangeCode(ctx context.Context, cfg *oauth2.Config, prompt io.Writer, answers io.Reader) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("study-planner", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(prompt, "Open this URL, grant access and paste the code:\n%s\n> ", authURL)

	sc := bufio.NewScanner(answers)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read authorization code: %w", err)
		}
		return nil, errors.New("no authorization code given")
	}
	code := strings.TrimSpace(sc.Text())
	if code == "" {
		return nil, errors.New("no authorization code given")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(b, tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", path, err)
	}
	return tok, nil
}

// saveToken writes the token owner-readable only, via a temp file and rename.
func saveToken(path string, tok *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}

	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}
