package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	// Endpoint overrides the R2 endpoint, e.g. for a local S3-compatible server.
	Endpoint string
}

// Enabled reports whether roster exports can be uploaded.
func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		(c.AccountID != "" || c.Endpoint != "")
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

func (c EmailConfig) Enabled() bool {
	return c.ResendAPIKey != "" && c.FromAddress != ""
}

type Config struct {
	Port        string
	Environment string

	DBDriver    string
	DatabaseURL string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RedisURL string

	DefaultLocale string
	CORSOrigins   string
	RateLimitMax  int

	TicketBaseURL string

	Email EmailConfig
	R2    R2Config
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:          v.GetString("PORT"),
		Environment:   v.GetString("ENVIRONMENT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		RedisURL:      v.GetString("REDIS_URL"),
		DefaultLocale: v.GetString("DEFAULT_LOCALE"),
		CORSOrigins:   v.GetString("CORS_ORIGINS"),
		RateLimitMax:  v.GetInt("RATE_LIMIT_MAX"),
		TicketBaseURL: v.GetString("TICKET_BASE_URL"),
		Email: EmailConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			FromAddress:  v.GetString("EMAIL_FROM_ADDRESS"),
			FromName:     v.GetString("EMAIL_FROM_NAME"),
		},
		R2: R2Config{
			AccountID:       v.GetString("R2_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("R2_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("R2_SECRET_ACCESS_KEY"),
			Bucket:          v.GetString("R2_BUCKET"),
			PublicURL:       v.GetString("R2_PUBLIC_URL"),
			Endpoint:        v.GetString("R2_ENDPOINT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("JWT_ISSUER", "eventos")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("DEFAULT_LOCALE", "es")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("TICKET_BASE_URL", "http://localhost:8080/tickets")
	v.SetDefault("EMAIL_FROM_NAME", "Eventos")
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("config: DB_DRIVER must be postgres, mysql or sqlite, got %q", c.DBDriver)
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if !c.IsDevelopment() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("config: JWT_SECRET must be at least 32 bytes outside development")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}

	if c.RateLimitMax <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}

	return nil
}
