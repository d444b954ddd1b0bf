package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	AI        AIConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
	Env  string
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level       string
	Development bool
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
// The integration is optional; Enabled reports whether credentials were supplied.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
	OwnerID       string
}

// Enabled reports whether the WhatsApp integration was configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether report export to Google Sheets was configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule         string
	SnapshotCronSchedule string
	Timezone             string
	CurrencySymbol       string
}

// Location resolves Timezone. Reports, the order calendar and the cron jobs
// all use it to decide what "today" and "this month" are.
func (c ReportingConfig) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
	Model        string
}

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// StorageConfig selects the persistence backend. The memory driver keeps
// everything in process and is meant for local runs.
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	env := getenvWithDefault("APP_ENV", "production")

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
			Env:  env,
		},
		Log: LogConfig{
			Level:       getenvWithDefault("LOG_LEVEL", "info"),
			Development: env == "development",
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			OwnerID:       os.Getenv("WHATSAPP_OWNER_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule:         getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * 5"),
			SnapshotCronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 23 28-31 * *"),
			Timezone:             getenvWithDefault("TIMEZONE", "America/Sao_Paulo"),
			CurrencySymbol:       getenvWithDefault("CURRENCY_SYMBOL", "R$"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:        getenvWithDefault("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
		},
		Storage: StorageConfig{
			Driver: getenvWithDefault("STORAGE_DRIVER", StorageMongoDB),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "deliciarte"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.Log.Level)
	}

	switch c.Storage.Driver {
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not one of mongodb, memory", c.Storage.Driver)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.VerifyToken == "":
			return errors.New("META_VERIFY_TOKEN must be provided")
		case c.WhatsApp.OwnerID == "":
			return errors.New("WHATSAPP_OWNER_ID must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.SnapshotCronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := c.Reporting.Location(); err != nil {
		return err
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
