package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port      string        `env:"LISTMATE_PORT" envDefault:"8080"`
	DBPath    string        `env:"LISTMATE_DB_PATH" envDefault:"listmate.db"`
	LogLevel  string        `env:"LISTMATE_LOG_LEVEL" envDefault:"info"`
	JWTSecret string        `env:"LISTMATE_JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"LISTMATE_TOKEN_TTL" envDefault:"24h"`

	// Invite notifications are disabled when the token is empty.
	PostmarkToken string `env:"LISTMATE_POSTMARK_TOKEN"`
	EmailFrom     string `env:"LISTMATE_EMAIL_FROM" envDefault:"noreply@listmate.local"`

	// Scheduled backups stay disabled unless the bucket, both keys, and the
	// passphrase are all set.
	BackupS3Endpoint    string `env:"LISTMATE_BACKUP_S3_ENDPOINT"`
	BackupS3Bucket      string `env:"LISTMATE_BACKUP_S3_BUCKET"`
	BackupS3Region      string `env:"LISTMATE_BACKUP_S3_REGION" envDefault:"auto"`
	BackupS3AccessKey   string `env:"LISTMATE_BACKUP_S3_ACCESS_KEY"`
	BackupS3SecretKey   string `env:"LISTMATE_BACKUP_S3_SECRET_KEY"`
	BackupPassphrase    string `env:"LISTMATE_BACKUP_PASSPHRASE"`
	BackupHour          int    `env:"LISTMATE_BACKUP_HOUR" envDefault:"3"`
	BackupRetentionDays int    `env:"LISTMATE_BACKUP_RETENTION_DAYS" envDefault:"30"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
