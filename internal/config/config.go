package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Review    ReviewConfig    `yaml:"review"`
	Retention RetentionConfig `yaml:"retention"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT settings for learner identity.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"linguadeck"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ReviewConfig holds review engine parameters. Mastery deltas are fixed by
// the outcome policy and deliberately not configurable.
type ReviewConfig struct {
	// RetryInterval is the reschedule delay after a non-positive outcome.
	RetryInterval time.Duration `yaml:"retry_interval" env:"REVIEW_RETRY_INTERVAL" env-default:"10m"`
	// CategoryIntervalsRaw lists the reschedule delay per mastery category
	// after a positive outcome, low to high: NEW,LEARNING,FAMILIAR,CONFIDENT,MASTERED.
	CategoryIntervalsRaw string        `yaml:"category_intervals" env:"REVIEW_CATEGORY_INTERVALS" env-default:"4h,8h,24h,72h,168h"`
	SessionTTL           time.Duration `yaml:"session_ttl"        env:"REVIEW_SESSION_TTL"        env-default:"2h"`
	ApplyMaxAttempts     int           `yaml:"apply_max_attempts" env:"REVIEW_APPLY_MAX_ATTEMPTS" env-default:"3"`
	PruneInterval        time.Duration `yaml:"prune_interval"     env:"REVIEW_PRUNE_INTERVAL"     env-default:"10m"`

	// CategoryIntervals is parsed from CategoryIntervalsRaw during validation.
	CategoryIntervals []time.Duration `yaml:"-" env:"-"`
}

// RetentionConfig holds the hard-delete policy for soft-deleted collections.
type RetentionConfig struct {
	HardDeleteRetentionDays int `yaml:"hard_delete_retention_days" env:"RETENTION_HARD_DELETE_DAYS" env-default:"30"`
}
