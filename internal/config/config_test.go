package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "APP_ENV", "LOG_LEVEL", "MONGODB_URI", "MONGODB_DB_NAME",
		"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN", "WHATSAPP_OWNER_ID",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "ANTHROPIC_API_KEY", "STORAGE_DRIVER",
	} {
		// t.Setenv restores the original value; unsetting lets godotenv fill the key.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "MONGODB_URI=mongodb://localhost:27017\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, "deliciarte", cfg.MongoDB.DBName)
	assert.Equal(t, StorageMongoDB, cfg.Storage.Driver)
	assert.Equal(t, "America/Sao_Paulo", cfg.Reporting.Timezone)
	assert.Equal(t, "R$", cfg.Reporting.CurrencySymbol)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoad_MissingEnvFileIsTolerated(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_RequiresMongoURI(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.EqualError(t, err, "MONGODB_URI must be provided")
}

func TestLoad_MemoryDriverNeedsNoMongo(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)

	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate_PartialIntegrations(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/secrets/sheets.json")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")
	t.Setenv("META_VERIFY_TOKEN", "verify")

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.EqualError(t, err, "WHATSAPP_OWNER_ID must be provided")
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestReportingLocation(t *testing.T) {
	location, err := ReportingConfig{Timezone: "America/Sao_Paulo"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", location.String())

	_, err = ReportingConfig{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
