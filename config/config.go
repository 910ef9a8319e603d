package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL             = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel               = "gemini-2.5-flash"
	DefaultConnectivityTimeout = 5 * time.Second
	DefaultQuotaTimeout        = 10 * time.Second

	// CredentialEnv is the only variable the credential is read from.
	CredentialEnv = "GEMINI_API_KEY"
)

type Config struct {
	AppName string
	AppPort int `validate:"min=1,max=65535"`

	LogLevel string `validate:"omitempty,oneof=debug info warn warning error"`

	// Gemini API key; empty means the diagnostic cannot run.
	APIKey  string
	BaseURL string `validate:"required,url"`
	Model   string `validate:"required"`

	// Bare numbers parse as nanoseconds, so a unitless "5" fails the floor.
	ConnectivityTimeout time.Duration `validate:"gte=100ms"`
	QuotaTimeout        time.Duration `validate:"gte=100ms"`

	// Serve mode only. Empty disables CORS.
	CORSAllowedOrigins []string
}

func (c *Config) HasCredential() bool {
	return c != nil && c.APIKey != ""
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "gemini-keydoctor")
	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "warn")

	v.SetDefault("GEMINI_BASE_URL", DefaultBaseURL)
	v.SetDefault("GEMINI_MODEL", DefaultModel)
	v.SetDefault("CONNECTIVITY_TIMEOUT", DefaultConnectivityTimeout)
	v.SetDefault("QUOTA_TIMEOUT", DefaultQuotaTimeout)

	return v
}

func NewConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppName: v.GetString("APP_NAME"),
		AppPort: v.GetInt("APP_PORT"),

		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),

		APIKey:  v.GetString(CredentialEnv),
		BaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("GEMINI_BASE_URL")), "/"),
		Model:   strings.TrimSpace(v.GetString("GEMINI_MODEL")),

		ConnectivityTimeout: v.GetDuration("CONNECTIVITY_TIMEOUT"),
		QuotaTimeout:        v.GetDuration("QUOTA_TIMEOUT"),

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
