package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doctorq.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.URL)
	assert.Equal(t, cfg.API.URL, cfg.AI.URL)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, 500, cfg.Cache.Size)
	assert.Equal(t, "2s", cfg.Cache.DedupingInterval)
	assert.Equal(t, "DoctorQ", cfg.App.Name)
	assert.NotEmpty(t, cfg.App.Tagline)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "standard", cfg.LogFormat)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level  = "debug"
log_format = "json"

api {
  url        = "https://api.doctorq.app/api/v1"
  local_url  = "http://localhost:3000"
  timeout    = "10s"
  tls_verify = false
}

ai {
  url = "https://ai.doctorq.app"
}

auth {
  api_key = "file-key"
}

cache {
  size              = 50
  deduping_interval = "5s"
}

app {
  name    = "DoctorQ Staging"
}
`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "https://api.doctorq.app/api/v1", cfg.API.URL)
	assert.Equal(t, "http://localhost:3000", cfg.API.LocalURL)
	require.NotNil(t, cfg.API.TLSVerify)
	assert.False(t, *cfg.API.TLSVerify)
	assert.Equal(t, "https://ai.doctorq.app", cfg.AI.URL)
	assert.Equal(t, "file-key", cfg.Auth.APIKey)
	assert.Equal(t, 50, cfg.Cache.Size)
	assert.Equal(t, "DoctorQ Staging", cfg.App.Name)
	assert.Equal(t, "debug", cfg.LogLevel)

	opts, err := cfg.ClientOptions(context.Background(), hclog.NewNullLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, opts.Timeout)
	assert.Equal(t, 5*time.Second, opts.DedupingInterval)
	assert.Equal(t, "https://ai.doctorq.app", opts.AIURL)
	assert.Equal(t, "file-key", opts.Credentials.Current(context.Background()))
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api {
  url = "https://api.doctorq.app/api/v1"
}
auth {
  api_key = "file-key"
}
`)

	cfg, err := load(path, env(map[string]string{
		EnvAPIURL:     "https://staging.doctorq.app/api/v1",
		EnvAPIKey:     "env-key",
		EnvAppName:    "DoctorQ Dev",
		EnvAppTagline: "  ",
		EnvLogLevel:   "warn",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://staging.doctorq.app/api/v1", cfg.API.URL)
	assert.Equal(t, cfg.API.URL, cfg.AI.URL)
	assert.Equal(t, "env-key", cfg.Auth.APIKey)
	assert.Equal(t, "DoctorQ Dev", cfg.App.Name)
	assert.Equal(t, defaultAppTagline, cfg.App.Tagline)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		env      map[string]string
		errorMsg string
	}{
		{
			name:     "bad url scheme",
			body:     `api { url = "ftp://api.doctorq.app" }`,
			errorMsg: "http or https",
		},
		{
			name:     "bad timeout",
			body:     `api { timeout = "soon" }`,
			errorMsg: "duration",
		},
		{
			name:     "bad log level",
			body:     `log_level = "loud"`,
			errorMsg: "LogLevel",
		},
		{
			name:     "negative cache size",
			body:     `cache { size = -1 }`,
			errorMsg: "cache",
		},
		{
			name:     "bad env url",
			env:      map[string]string{EnvAIURL: "not a url"},
			errorMsg: "ai",
		},
		{
			name:     "incomplete oauth2",
			body:     "auth {\n  oauth2 {\n    client_id = \"x\"\n    client_secret = \"\"\n    token_url = \"https://auth.doctorq.app/token\"\n  }\n}",
			errorMsg: "oauth2",
		},
		{
			name:     "unknown attribute",
			body:     `api { uri = "https://api.doctorq.app" }`,
			errorMsg: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			_, err := load(path, env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.hcl"), env(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCredentials(t *testing.T) {
	t.Run("static key", func(t *testing.T) {
		cfg, err := load("", env(map[string]string{EnvAPIKey: "static"}))
		require.NoError(t, err)

		resolver := cfg.Credentials(context.Background(), hclog.NewNullLogger())
		assert.Equal(t, "static", resolver.Current(context.Background()))

		resolver.Set("override")
		assert.Equal(t, "override", resolver.Current(context.Background()))
	})

	t.Run("oauth2 client credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"oauth-token","token_type":"bearer","expires_in":3600}`))
		}))
		defer server.Close()

		path := writeConfig(t, `
auth {
  api_key = "static"
  oauth2 {
    client_id     = "doctorq-cli"
    client_secret = "s3cret"
    token_url     = "`+server.URL+`/token"
  }
}
`)
		cfg, err := load(path, env(nil))
		require.NoError(t, err)

		resolver := cfg.Credentials(context.Background(), hclog.NewNullLogger())
		assert.Equal(t, "oauth-token", resolver.Current(context.Background()))
	})
}

func TestNewLogger(t *testing.T) {
	cfg, err := load("", env(map[string]string{EnvLogLevel: "debug"}))
	require.NoError(t, err)

	logger := cfg.NewLogger("doctorq")
	assert.True(t, logger.IsDebug())
	assert.Equal(t, "doctorq", logger.Name())
}
