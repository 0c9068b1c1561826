package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	// API locates the remote contacts API.
	API struct {
		Host         string `envconfig:"API_HOST" required:"true"`
		ContactsPath string `envconfig:"API_CONTACTS_PATH" default:"/api/contacts"`
		UploadPath   string `envconfig:"API_UPLOAD_PATH" default:"/api/contacts/upload"`
	}
	UI struct {
		PageSize         int           `envconfig:"UI_PAGE_SIZE" default:"5"`
		SearchDebounce   time.Duration `envconfig:"UI_SEARCH_DEBOUNCE" default:"250ms"`
		SearchResetsPage bool          `envconfig:"UI_SEARCH_RESETS_PAGE"`
		SessionTTL       time.Duration `envconfig:"UI_SESSION_TTL" default:"30m"`
		MaxSessions      int           `envconfig:"UI_MAX_SESSIONS" default:"1000"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
