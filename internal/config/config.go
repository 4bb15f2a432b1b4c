package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/locvowork/gridreport/pkg/gridreport"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// export defaults
	BORDER_COLOUR   string
	BORDER_STYLE    string
	DATE_FORMAT     string
	DATETIME_FORMAT string
	ALLOW_OVERWRITE bool

	// server config
	SERVER_PORT          int
	SERVER_READ_TIMEOUT  time.Duration
	SERVER_WRITE_TIMEOUT time.Duration

	// database config
	DB_HOST     string
	DB_PORT     int
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	DB_SSL_MODE string

	// logger config
	LOG_FILE_PATH string
}

// LoadEnvConfig reads .env (when present) and materializes the process-wide
// configuration. Export defaults are resolved here, once, and threaded
// through gridreport.Defaults; the core never reads the environment.
func LoadEnvConfig() error {
	// A missing .env file is fine; explicit env vars still apply.
	_ = godotenv.Load()

	DefaultEnvConfig = &envConfig{
		BORDER_COLOUR:   getEnvString("GRIDREPORT_BORDER_COLOUR", "black"),
		BORDER_STYLE:    getEnvString("GRIDREPORT_BORDER_STYLE", "thin"),
		DATE_FORMAT:     getEnvString("GRIDREPORT_DATE_FORMAT", "yyyy-mm-dd"),
		DATETIME_FORMAT: getEnvString("GRIDREPORT_DATETIME_FORMAT", "yyyy-mm-dd hh:mm:ss"),
		ALLOW_OVERWRITE: getEnvBool("GRIDREPORT_ALLOW_OVERWRITE", true),

		SERVER_PORT:          getEnvInt("SERVER_PORT", 8080),
		SERVER_READ_TIMEOUT:  getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
		SERVER_WRITE_TIMEOUT: getEnvDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),

		DB_HOST:     getEnvString("DB_HOST", "localhost"),
		DB_PORT:     getEnvInt("DB_PORT", 5432),
		DB_USER:     getEnvString("DB_USER", "postgres"),
		DB_PASSWORD: getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:     getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE: getEnvString("DB_SSL_MODE", "disable"),

		LOG_FILE_PATH: getEnvString("LOG_FILE_PATH", ""),
	}
	return nil
}

// ExportDefaults converts the env-resolved values into the defaults
// structure the export pipeline threads explicitly.
func ExportDefaults() gridreport.Defaults {
	if DefaultEnvConfig == nil {
		return gridreport.StandardDefaults()
	}
	return gridreport.Defaults{
		BorderColour:   DefaultEnvConfig.BORDER_COLOUR,
		BorderStyle:    DefaultEnvConfig.BORDER_STYLE,
		DateFormat:     DefaultEnvConfig.DATE_FORMAT,
		DateTimeFormat: DefaultEnvConfig.DATETIME_FORMAT,
		Overwrite:      DefaultEnvConfig.ALLOW_OVERWRITE,
	}
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
