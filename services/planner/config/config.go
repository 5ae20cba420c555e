package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address       string        `yaml:"address" env:"PLANNER_ADDRESS" env-default:":8080"`
	Timeout       time.Duration `yaml:"timeout" env:"PLANNER_TIMEOUT" env-default:"5s"`
	CSRFKey       string        `yaml:"csrf_key" env:"PLANNER_CSRF_KEY"`
	SecureCookies bool          `yaml:"secure_cookies" env:"PLANNER_SECURE_COOKIES" env-default:"false"`
}

type CalendarConfig struct {
	CredentialsFile string `yaml:"credentials_file" env:"GCAL_CREDENTIALS" env-default:"credentials.json"`
	TokenFile       string `yaml:"token_file" env:"GCAL_TOKEN" env-default:"token.json"`
	CalendarID      string `yaml:"calendar_id" env:"GCAL_CALENDAR_ID" env-default:"primary"`
}

type Config struct {
	LogLevel    string         `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	HTTP        HTTPConfig     `yaml:"http"`
	GRPCAddress string         `yaml:"grpc_address" env:"PLANNER_GRPC_ADDRESS"` // empty disables health server
	DBAddress   string         `yaml:"db_address" env:"DB_ADDRESS" env-required:"true"`
	Timezone    string         `yaml:"timezone" env:"PLANNER_TIMEZONE" env-default:"Local"`
	Calendar    CalendarConfig `yaml:"calendar"`
}

// Location resolves Timezone; "Local" and "" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configPath, falling back to the environment when the file is missing
// or configPath is empty.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return Config{}, fmt.Errorf("cannot read env: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("cannot read config %q: %w", configPath, err)
	}

	return cfg, nil
}
