package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string

	DatabasePath string

	// Salesforce (Record Source) connection settings. The analytics core
	// never reads these; only the salesforce client does.
	SalesforceLoginURL       string
	SalesforceClientID       string
	SalesforceUsername       string
	SalesforcePrivateKeyPath string
	SalesforceAPIVersion     string

	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	RateLimitBurst int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	httpTimeoutStr := getEnv("SF_HTTP_TIMEOUT", "30s")
	httpTimeout, err := time.ParseDuration(httpTimeoutStr)
	if err != nil {
		log.Printf("WARNING: Invalid SF_HTTP_TIMEOUT format '%s'. Using default 30s. Error: %v", httpTimeoutStr, err)
		httpTimeout = 30 * time.Second
	}

	shutdownTimeoutStr := getEnv("SHUTDOWN_TIMEOUT", "10s")
	shutdownTimeout, err := time.ParseDuration(shutdownTimeoutStr)
	if err != nil {
		log.Printf("WARNING: Invalid SHUTDOWN_TIMEOUT format '%s'. Using default 10s. Error: %v", shutdownTimeoutStr, err)
		shutdownTimeout = 10 * time.Second
	}

	Cfg = &AppConfig{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DatabasePath: getEnv("DATABASE_PATH", "./stonefolio.db"),

		SalesforceLoginURL:       getEnv("SF_LOGIN_URL", "https://login.salesforce.com"),
		SalesforceClientID:       getEnv("SF_CLIENT_ID", ""),
		SalesforceUsername:       getEnv("SF_USERNAME", ""),
		SalesforcePrivateKeyPath: getEnv("SF_PRIVATE_KEY_PATH", ""),
		SalesforceAPIVersion:     getEnv("SF_API_VERSION", "v59.0"),

		HTTPTimeout:     httpTimeout,
		ShutdownTimeout: shutdownTimeout,

		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	if Cfg.SalesforceClientID == "" {
		log.Fatalf("FATAL: SF_CLIENT_ID is required but not set in environment or .env file.")
	}
	if Cfg.SalesforceUsername == "" {
		log.Fatalf("FATAL: SF_USERNAME is required but not set in environment or .env file.")
	}
	if Cfg.SalesforcePrivateKeyPath == "" {
		log.Fatalf("FATAL: SF_PRIVATE_KEY_PATH is required but not set in environment or .env file.")
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, SFLoginURL=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.SalesforceLoginURL)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}
