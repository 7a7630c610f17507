package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBSchema    string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the DB is reachable.
	ReadinessRequireDB bool

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("JOBDECK_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("JOBDECK_LOG_LEVEL", "info"),
		LogFormat: EnvString("JOBDECK_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("JOBDECK_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("JOBDECK_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("JOBDECK_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("JOBDECK_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("JOBDECK_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("JOBDECK_DATABASE_URL", ""),
		DBSchema:    EnvString("JOBDECK_DB_SCHEMA", "jobdeck"),
		DBMaxConns:  EnvInt32("JOBDECK_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("JOBDECK_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("JOBDECK_READINESS_REQUIRE_DB", true),

		CORSAllowedOrigins:   EnvCSV("JOBDECK_CORS_ALLOWED_ORIGINS", ""),
		CORSAllowCredentials: EnvBool("JOBDECK_CORS_ALLOW_CREDENTIALS", true),
		CORSMaxAgeSeconds:    EnvInt("JOBDECK_CORS_MAX_AGE_SECONDS", 600),
	}
}
