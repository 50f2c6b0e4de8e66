package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable read from the environment. It is passed into
// the server explicitly so tests can run with alternate domains and limits.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"require"`

	Port                string `envconfig:"PORT" default:"8080"`
	ReadTimeoutSeconds  int    `envconfig:"READ_TIMEOUT_SECONDS" default:"60"`
	WriteTimeoutSeconds int    `envconfig:"WRITE_TIMEOUT_SECONDS" default:"60"`
	IdleTimeoutSeconds  int    `envconfig:"IDLE_TIMEOUT_SECONDS" default:"120"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Institutional domain enforced on profile emails.
	EmailDomain string `envconfig:"EMAIL_DOMAIN" default:"mjcollege.ac.in"`

	// Fixed-window rate limit, keyed by client address.
	RateLimitRequests      int `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	RateLimitWindowSeconds int `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"900"`

	// HS256 secret for the admin bearer token. Leaving it empty disables
	// authentication on mutating routes (local development).
	AuthSecret string `envconfig:"AUTH_SECRET"`

	// Optional scheduled database backup to S3. Backups are disabled when
	// the cron expression is empty.
	BackupCronSchedule string `envconfig:"BACKUP_CRON_SCHEDULE"`
	BackupS3Bucket     string `envconfig:"BACKUP_S3_BUCKET"`
	BackupS3Endpoint   string `envconfig:"BACKUP_S3_ENDPOINT"`
	BackupS3AccessKey  string `envconfig:"BACKUP_S3_ACCESS_KEY"`
	BackupS3SecretKey  string `envconfig:"BACKUP_S3_SECRET_KEY"`
	BackupS3Region     string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	BackupKeep         int    `envconfig:"BACKUP_KEEP" default:"7"`
}

// DSN returns the Data Source Name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Load reads the configuration from the environment, honoring a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
