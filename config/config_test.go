package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(CredentialEnv, "")

	cfg, err := NewConfig(NewViper())
	require.NoError(t, err)

	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultModel, cfg.Model)
	require.Equal(t, 5*time.Second, cfg.ConnectivityTimeout)
	require.Equal(t, 10*time.Second, cfg.QuotaTimeout)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "gemini-keydoctor", cfg.AppName)
	require.False(t, cfg.HasCredential())
	require.Empty(t, cfg.CORSAllowedOrigins)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv(CredentialEnv, "AIzaSyExampleExampleExample")
	t.Setenv("GEMINI_BASE_URL", "http://127.0.0.1:9999/v1beta/")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("CONNECTIVITY_TIMEOUT", "750ms")
	t.Setenv("QUOTA_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ,https://example.com")

	cfg, err := NewConfig(NewViper())
	require.NoError(t, err)

	require.True(t, cfg.HasCredential())
	require.Equal(t, "http://127.0.0.1:9999/v1beta", cfg.BaseURL)
	require.Equal(t, "gemini-2.5-flash-lite", cfg.Model)
	require.Equal(t, 750*time.Millisecond, cfg.ConnectivityTimeout)
	require.Equal(t, 2*time.Second, cfg.QuotaTimeout)
	require.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.CORSAllowedOrigins)
}

func TestNewConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad base url":  {"GEMINI_BASE_URL", "not a url"},
		"empty model":   {"GEMINI_MODEL", " "},
		"zero timeout":  {"QUOTA_TIMEOUT", "0s"},
		"unitless":      {"CONNECTIVITY_TIMEOUT", "5"},
		"sub floor":     {"QUOTA_TIMEOUT", "50ms"},
		"bad log level": {"LOG_LEVEL", "verbose"},
		"bad port":      {"APP_PORT", "70000"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			_, err := NewConfig(NewViper())
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid config")
		})
	}
}
