package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RequirementSpec is a configured per-role staffing requirement applied to
// seeded shifts.
type RequirementSpec struct {
	Role        string `yaml:"role" validate:"required"`
	MinRequired int    `yaml:"minRequired" validate:"min=0"`
	MaxAllowed  *int   `yaml:"maxAllowed,omitempty" validate:"omitempty,min=1"`
}

// ShiftPattern defines a recurring shift schedule used when seeding shift
// records for a season.
type ShiftPattern struct {
	RRule         string            `yaml:"rrule" validate:"required"`
	Zone          string            `yaml:"zone" validate:"required"`
	MinVolunteers int               `yaml:"minVolunteers" validate:"min=0"`
	Requirements  []RequirementSpec `yaml:"requirements,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	// Timezone is the organization's IANA timezone identifier. It is
	// resolved (and rejected if unknown) where it is used, so loading a
	// config never touches the zone database.
	Timezone string `yaml:"timezone" validate:"required"`

	// WeekAnchorWeekday is the first day of the coverage week.
	WeekAnchorWeekday string `yaml:"weekAnchorWeekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`

	// DigestSendHour is the local hour at which the weekly digest goes out.
	DigestSendHour int `yaml:"digestSendHour" validate:"min=0,max=23"`

	DigestRecipients []string `yaml:"digestRecipients,omitempty" validate:"dive,email"`

	Counties []string `yaml:"counties" validate:"required,min=1"`
	Zones    []string `yaml:"zones" validate:"required,min=1"`

	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	GmailUserID string `yaml:"gmailUserID,omitempty"`
	GmailSender string `yaml:"gmailSender,omitempty"`

	ShiftPatterns []ShiftPattern `yaml:"shiftPatterns,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var weekdaysByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// AnchorWeekday returns the configured week anchor as a time.Weekday
func (c *Config) AnchorWeekday() (time.Weekday, error) {
	wd, ok := weekdaysByName[c.WeekAnchorWeekday]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", c.WeekAnchorWeekday)
	}
	return wd, nil
}

// LoadWithEnv loads and validates the configuration for an environment.
// env="test" looks for "fieldrota_config.test.yaml", falling back to
// "fieldrota_config.yaml", in the current directory then the home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, pattern := range cfg.ShiftPatterns {
		if _, err := rrule.StrToRRule(pattern.RRule); err != nil {
			return fmt.Errorf("invalid rrule in shiftPatterns[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in the current directory and
// the home directory, preferring the environment-specific name.
func findConfigFile(env string) (string, error) {
	names := []string{"fieldrota_config.yaml"}
	if env != "" {
		names = []string{"fieldrota_config." + env + ".yaml", "fieldrota_config.yaml"}
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		if homeErr == nil {
			homePath := filepath.Join(homeDir, name)
			if _, err := os.Stat(homePath); err == nil {
				return homePath, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
