package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreMemory)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, AdvisorRules, cfg.Advisor.Mode)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Africa/Lagos", cfg.Reporting.Timezone)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadMongoRequiresURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreMongo)
	t.Setenv("MONGODB_URI", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMongo(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreMongo)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "farms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "farms", cfg.Store.DBName)
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Store:     StoreConfig{Driver: "postgres"},
		Advisor:   AdvisorConfig{Mode: AdvisorRules},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
	}

	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")
}

func TestValidateUnknownAdvisorMode(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Store:     StoreConfig{Driver: StoreMemory},
		Advisor:   AdvisorConfig{Mode: "oracle"},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
	}

	assert.ErrorContains(t, cfg.Validate(), "ADVISOR_MODE")
}

func TestValidateSheetsPairing(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Store:     StoreConfig{Driver: StoreMemory},
		Advisor:   AdvisorConfig{Mode: AdvisorRules},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
		Sheets:    SheetsConfig{SpreadsheetID: "sheet-id"},
	}

	assert.ErrorContains(t, cfg.Validate(), "GOOGLE_SHEETS_CREDENTIALS_PATH")

	cfg.Sheets.CredentialsPath = "/tmp/creds.json"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Sheets.Enabled())
}
