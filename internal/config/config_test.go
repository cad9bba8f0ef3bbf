package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `timezone: America/New_York
weekAnchorWeekday: Sunday
digestSendHour: 7
digestRecipients:
  - ops@example.org
counties:
  - Hartford
  - Tolland
zones:
  - North
  - South
databaseURL: postgres://localhost:5432/fieldrota
gmailUserID: me
gmailSender: coverage@example.org
shiftPatterns:
  - rrule: FREQ=WEEKLY;BYDAY=SA
    zone: North
    minVolunteers: 3
    requirements:
      - role: Dispatcher
        minRequired: 1
      - role: Zone lead
        minRequired: 1
        maxAllowed: 1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldrota_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, validConfigYAML))

	require.NoError(t, err)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "Sunday", cfg.WeekAnchorWeekday)
	assert.Equal(t, 7, cfg.DigestSendHour)
	assert.Equal(t, []string{"ops@example.org"}, cfg.DigestRecipients)
	assert.Equal(t, []string{"Hartford", "Tolland"}, cfg.Counties)
	assert.Equal(t, []string{"North", "South"}, cfg.Zones)

	require.Len(t, cfg.ShiftPatterns, 1)
	pattern := cfg.ShiftPatterns[0]
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA", pattern.RRule)
	assert.Equal(t, "North", pattern.Zone)
	assert.Equal(t, 3, pattern.MinVolunteers)
	require.Len(t, pattern.Requirements, 2)
	require.NotNil(t, pattern.Requirements[1].MaxAllowed)
	assert.Equal(t, 1, *pattern.Requirements[1].MaxAllowed)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "timezone: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate_MissingTimezone(t *testing.T) {
	cfg := &Config{
		WeekAnchorWeekday: "Sunday",
		Counties:          []string{"Hartford"},
		Zones:             []string{"North"},
		DatabaseURL:       "postgres://localhost:5432/fieldrota",
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timezone")
}

func TestValidate_UnknownWeekday(t *testing.T) {
	cfg := &Config{
		Timezone:          "America/New_York",
		WeekAnchorWeekday: "Funday",
		Counties:          []string{"Hartford"},
		Zones:             []string{"North"},
		DatabaseURL:       "postgres://localhost:5432/fieldrota",
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WeekAnchorWeekday")
}

func TestValidate_BadRecipientEmail(t *testing.T) {
	cfg := &Config{
		Timezone:          "America/New_York",
		WeekAnchorWeekday: "Sunday",
		DigestRecipients:  []string{"not-an-email"},
		Counties:          []string{"Hartford"},
		Zones:             []string{"North"},
		DatabaseURL:       "postgres://localhost:5432/fieldrota",
	}
	err := Validate(cfg)
	require.Error(t, err)
}

func TestValidate_BadRRule(t *testing.T) {
	cfg := &Config{
		Timezone:          "America/New_York",
		WeekAnchorWeekday: "Sunday",
		Counties:          []string{"Hartford"},
		Zones:             []string{"North"},
		DatabaseURL:       "postgres://localhost:5432/fieldrota",
		ShiftPatterns: []ShiftPattern{
			{RRule: "FREQ=NEVERLY", Zone: "North"},
		},
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in shiftPatterns[0]")
}

func TestValidate_EmptyCounties(t *testing.T) {
	cfg := &Config{
		Timezone:          "America/New_York",
		WeekAnchorWeekday: "Sunday",
		Zones:             []string{"North"},
		DatabaseURL:       "postgres://localhost:5432/fieldrota",
	}
	err := Validate(cfg)
	require.Error(t, err)
}

func TestAnchorWeekday(t *testing.T) {
	cfg := &Config{WeekAnchorWeekday: "Wednesday"}
	wd, err := cfg.AnchorWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, wd)

	cfg.WeekAnchorWeekday = "Funday"
	_, err = cfg.AnchorWeekday()
	require.Error(t, err)
}
