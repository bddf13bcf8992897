package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Uploads
		UI
		Auth
		Subscriptions
		History
		Cleanup
		Global
	}

	HTTP struct {
		Host      string
		Port      int32 // public storefront server
		AdminPort int32 // admin panel server
	}
	Database struct {
		Path string
	}
	Uploads struct {
		Dir string // root of the content-typed upload directories
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Auth struct {
		TokenTTL   time.Duration // absolute session token lifetime
		BcryptCost int
	}
	Subscriptions struct {
		DurationDays int // access window granted per subscribe call
	}
	History struct {
		Limit int // max entries returned by the reading history endpoint
	}
	Cleanup struct {
		Enabled  bool
		Schedule string // cron format: "*/30 * * * *" = every 30 minutes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 8001)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("uploads_dir", DefaultUploadsDir)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Auth defaults
	v.SetDefault("auth_token_ttl", "60m") // matches the session expiry of the storefront
	v.SetDefault("auth_bcrypt_cost", 12)

	// Domain defaults
	v.SetDefault("subscription_duration_days", 30)
	v.SetDefault("history_limit", 10)

	// Expired-token cleanup defaults
	v.SetDefault("cleanup_enabled", true)
	v.SetDefault("cleanup_schedule", "*/30 * * * *")

	return &Config{
		HTTP: HTTP{
			Host:      v.GetString("HOST"),
			Port:      v.GetInt32("PORT"),
			AdminPort: v.GetInt32("ADMIN_PORT"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Uploads: Uploads{
			Dir: v.GetString("UPLOADS_DIR"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Auth: Auth{
			TokenTTL:   v.GetDuration("AUTH_TOKEN_TTL"),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Subscriptions: Subscriptions{
			DurationDays: v.GetInt("SUBSCRIPTION_DURATION_DAYS"),
		},
		History: History{
			Limit: v.GetInt("HISTORY_LIMIT"),
		},
		Cleanup: Cleanup{
			Enabled:  v.GetBool("CLEANUP_ENABLED"),
			Schedule: v.GetString("CLEANUP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
