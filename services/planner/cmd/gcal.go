package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"study-planner/services/planner/adapters/gcal"
	"study-planner/services/planner/core"
)

var (
	gcalWeek     bool
	gcalUpcoming bool
	gcalDryRun   bool
)

var gcalSyncCmd = &cobra.Command{
	Use:   "gcal-sync",
	Short: "Export scheduled sessions to Google Calendar",
	Long: `gcal-sync upserts sessions into a Google Calendar. Events are matched
by a private planner_session_id property, so running it again only
patches what changed. By default the upcoming window is exported.`,
	Args: cobra.NoArgs,
	RunE: runGcalSync,
}

func init() {
	gcalSyncCmd.Flags().BoolVar(&gcalWeek, "week", false, "export this week's grid")
	gcalSyncCmd.Flags().BoolVar(&gcalUpcoming, "upcoming", false, "export the next seven days")
	gcalSyncCmd.Flags().BoolVar(&gcalDryRun, "dry-run", false, "report changes without writing events")
	gcalSyncCmd.MarkFlagsMutuallyExclusive("week", "upcoming")
}

func runGcalSync(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	var sessions []core.ScheduledSession
	if gcalWeek {
		days, err := a.svc.Week(ctx, time.Now(), nil)
		if err != nil {
			return fmt.Errorf("failed to build week: %w", err)
		}
		sessions = flattenWeek(days)
	} else {
		sessions, err = a.svc.Upcoming(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to list upcoming sessions: %w", err)
		}
	}

	calCfg := a.cfg.Calendar
	httpClient, err := gcal.HTTPClient(ctx, calCfg.CredentialsFile, calCfg.TokenFile, cmd.ErrOrStderr(), cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to authorize calendar access: %w", err)
	}

	client, err := gcal.NewClient(ctx, a.log, httpClient, calCfg.CalendarID)
	if err != nil {
		return err
	}

	res, err := client.SyncSessions(ctx, sessions, gcalDryRun)
	printSyncResult(cmd.OutOrStdout(), res, gcalDryRun)
	if err != nil {
		return fmt.Errorf("calendar sync: %w", err)
	}
	if res.Failed > 0 {
		return errors.New("some sessions failed to sync")
	}
	return nil
}

func flattenWeek(days []core.DayBucket) []core.ScheduledSession {
	var out []core.ScheduledSession
	for _, d := range days {
		out = append(out, d.Sessions...)
	}
	return out
}

func printSyncResult(w io.Writer, res gcal.SyncResult, dryRun bool) {
	if dryRun {
		fmt.Fprint(w, "Dry run: ")
	}
	fmt.Fprintf(w, "%d created, %d updated, %d unchanged, %d failed\n",
		res.Created, res.Updated, res.Unchanged, res.Failed)
}
