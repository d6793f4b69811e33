package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds the runtime configuration for the todo service. Each field
// corresponds to an environment variable. Unset variables fall back to
// development defaults so the server starts against a local SQLite file
// with no external services.
type Config struct {
	Env    string // application environment ("development", "testing", "production")
	Port   string // HTTP port to listen on
	DBPath string // SQLite database file path, the default storage engine
	DBURL  string // MySQL DSN; when set it replaces the SQLite default
	Events bool   // publish todo lifecycle events to the message broker
}

// Load reads configuration values from environment variables and returns a
// Config. Production deployments must provide DATABASE_URL explicitly; the
// file-based default is only acceptable for single-node use.
func Load() Config {
	cfg := Config{
		Env:    getenv("APP_ENV", "development"),
		Port:   getenv("APP_PORT", "8080"),
		DBPath: getenv("DB_PATH", "app.db"),
		DBURL:  os.Getenv("DATABASE_URL"),
		Events: envBool("EVENTS_ENABLED", false),
	}
	if cfg.Env == "production" && cfg.DBURL == "" {
		log.Fatal("DATABASE_URL must be set for the production environment")
	}
	return cfg
}
