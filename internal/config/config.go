package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type NotionConfig struct {
	APIKey     string
	DatabaseID string
	BaseURL    string
}

type EmailConfig struct {
	GatewayURL   string
	APIKey       string
	OwnerAddress string
}

type NotifyConfig struct {
	GatewayURL string
	APIKey     string
}

type QuotesConfig struct {
	RecentLimit       int
	MetricsPeriodDays int
}

type RateLimitConfig struct {
	SubmitMax    int
	SubmitWindow time.Duration
}

type Config struct {
	Environment   string
	HTTP          HTTPConfig
	DB            DBConfig
	Auth          AuthConfig
	Notion        NotionConfig
	Email         EmailConfig
	Notify        NotifyConfig
	Quotes        QuotesConfig
	RateLimit     RateLimitConfig
	ClientTimeout time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("HTTP_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Notion: NotionConfig{
			APIKey:     v.GetString("NOTION_API_KEY"),
			DatabaseID: v.GetString("NOTION_DATABASE_ID"),
			BaseURL:    v.GetString("NOTION_BASE_URL"),
		},
		Email: EmailConfig{
			GatewayURL:   v.GetString("EMAIL_GATEWAY_URL"),
			APIKey:       v.GetString("EMAIL_GATEWAY_API_KEY"),
			OwnerAddress: v.GetString("OWNER_EMAIL"),
		},
		Notify: NotifyConfig{
			GatewayURL: v.GetString("NOTIFY_GATEWAY_URL"),
			APIKey:     v.GetString("NOTIFY_GATEWAY_API_KEY"),
		},
		Quotes: QuotesConfig{
			RecentLimit:       v.GetInt("QUOTES_RECENT_LIMIT"),
			MetricsPeriodDays: v.GetInt("QUOTES_METRICS_PERIOD_DAYS"),
		},
		RateLimit: RateLimitConfig{
			SubmitMax:    v.GetInt("RATE_LIMIT_SUBMIT_MAX"),
			SubmitWindow: v.GetDuration("RATE_LIMIT_SUBMIT_WINDOW"),
		},
		ClientTimeout: v.GetDuration("HTTP_CLIENT_TIMEOUT"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = "https://api.notion.com"
	}
	if cfg.Email.OwnerAddress == "" {
		cfg.Email.OwnerAddress = "hudpaivasouza@gmail.com"
	}
	if cfg.Quotes.RecentLimit == 0 {
		cfg.Quotes.RecentLimit = 10
	}
	if cfg.Quotes.MetricsPeriodDays == 0 {
		cfg.Quotes.MetricsPeriodDays = 30
	}
	if cfg.RateLimit.SubmitMax == 0 {
		cfg.RateLimit.SubmitMax = 5
	}
	if cfg.RateLimit.SubmitWindow == 0 {
		cfg.RateLimit.SubmitWindow = 15 * time.Minute
	}
	if cfg.ClientTimeout == 0 {
		cfg.ClientTimeout = 8 * time.Second
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
