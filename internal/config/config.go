package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/doctorq/doctorq-sdk/pkg/auth"
	"github.com/doctorq/doctorq-sdk/pkg/doctorq"
	"github.com/doctorq/doctorq-sdk/pkg/metrics"
)

// Config contains the DoctorQ client configuration.
type Config struct {
	// API configures the REST backend.
	API *API `hcl:"api,block"`

	// AI configures the AI service.
	AI *AI `hcl:"ai,block"`

	// Auth configures credentials.
	Auth *Auth `hcl:"auth,block"`

	// Cache configures the read cache.
	Cache *Cache `hcl:"cache,block"`

	// App holds display settings.
	App *App `hcl:"app,block"`

	// LogLevel is "trace", "debug", "info", "warn" or "error".
	LogLevel string `hcl:"log_level,optional"`

	// LogFormat is "standard" or "json".
	LogFormat string `hcl:"log_format,optional"`
}

// API configures the REST backend.
type API struct {
	URL       string `hcl:"url,optional"`
	LocalURL  string `hcl:"local_url,optional"`
	Timeout   string `hcl:"timeout,optional"`
	TLSVerify *bool  `hcl:"tls_verify,optional"`
	UserAgent string `hcl:"user_agent,optional"`
}

// AI configures the AI service. An empty URL falls back to the API URL.
type AI struct {
	URL string `hcl:"url,optional"`
}

// Auth configures credentials. Tokens resolve in order: a token set at
// runtime, then the session, then the static API key.
type Auth struct {
	// APIKey is the static fallback credential.
	APIKey string `hcl:"api_key,optional"`

	// SessionToken is a signed session JWT.
	SessionToken string `hcl:"session_token,optional"`

	// SessionSecret verifies SessionToken. Without it the token is only
	// checked for expiry.
	SessionSecret string `hcl:"session_secret,optional"`

	// OAuth2 fetches session tokens with the client credentials grant.
	OAuth2 *OAuth2 `hcl:"oauth2,block"`
}

// OAuth2 configures the client credentials grant.
type OAuth2 struct {
	ClientID     string   `hcl:"client_id"`
	ClientSecret string   `hcl:"client_secret"`
	TokenURL     string   `hcl:"token_url"`
	Scopes       []string `hcl:"scopes,optional"`
}

// Cache configures the read cache.
type Cache struct {
	Size             int    `hcl:"size,optional"`
	DedupingInterval string `hcl:"deduping_interval,optional"`
}

// App holds display settings.
type App struct {
	Name    string `hcl:"name,optional"`
	Tagline string `hcl:"tagline,optional"`
}

// Environment variables that override the file.
const (
	EnvAPIURL        = "DOCTORQ_API_URL"
	EnvAIURL         = "DOCTORQ_AI_URL"
	EnvLocalURL      = "DOCTORQ_LOCAL_URL"
	EnvAPIKey        = "DOCTORQ_API_KEY"
	EnvSessionToken  = "DOCTORQ_SESSION_TOKEN"
	EnvSessionSecret = "DOCTORQ_SESSION_SECRET"
	EnvAppName       = "DOCTORQ_APP_NAME"
	EnvAppTagline    = "DOCTORQ_APP_TAGLINE"
	EnvLogLevel      = "DOCTORQ_LOG_LEVEL"
)

const (
	defaultAPIURL           = "http://localhost:8080/api/v1"
	defaultTimeout          = "30s"
	defaultCacheSize        = 500
	defaultDedupingInterval = "2s"
	defaultAppName          = "DoctorQ"
	defaultAppTagline       = "Plataforma de gestão para clínicas de estética"
	defaultLogLevel         = "info"
	defaultLogFormat        = "standard"
)

// NewConfig parses the HCL file at filename, when given, then applies
// environment overrides and defaults and validates the result.
func NewConfig(filename string) (*Config, error) {
	return load(filename, os.Getenv)
}

func load(filename string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if filename != "" {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", filename)
		}
		if err := hclsimple.DecodeFile(filename, nil, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	}

	cfg.applyEnv(getenv)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	c.ensureBlocks()

	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.API.URL, EnvAPIURL)
	set(&c.AI.URL, EnvAIURL)
	set(&c.API.LocalURL, EnvLocalURL)
	set(&c.Auth.APIKey, EnvAPIKey)
	set(&c.Auth.SessionToken, EnvSessionToken)
	set(&c.Auth.SessionSecret, EnvSessionSecret)
	set(&c.App.Name, EnvAppName)
	set(&c.App.Tagline, EnvAppTagline)
	set(&c.LogLevel, EnvLogLevel)
}

func (c *Config) applyDefaults() {
	c.ensureBlocks()

	if c.API.URL == "" {
		c.API.URL = defaultAPIURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = defaultTimeout
	}
	if c.AI.URL == "" {
		c.AI.URL = c.API.URL
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = defaultCacheSize
	}
	if c.Cache.DedupingInterval == "" {
		c.Cache.DedupingInterval = defaultDedupingInterval
	}
	if c.App.Name == "" {
		c.App.Name = defaultAppName
	}
	if c.App.Tagline == "" {
		c.App.Tagline = defaultAppTagline
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}

func (c *Config) ensureBlocks() {
	if c.API == nil {
		c.API = &API{}
	}
	if c.AI == nil {
		c.AI = &AI{}
	}
	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.App == nil {
		c.App = &App{}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	c.ensureBlocks()

	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required,
			validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("standard", "json")),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.API.LocalURL, validation.By(httpURL)),
		validation.Field(&c.API.Timeout, validation.By(duration)),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := validation.ValidateStruct(c.AI,
		validation.Field(&c.AI.URL, validation.By(httpURL)),
	); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	if o := c.Auth.OAuth2; o != nil {
		if err := validation.ValidateStruct(o,
			validation.Field(&o.ClientID, validation.Required),
			validation.Field(&o.ClientSecret, validation.Required),
			validation.Field(&o.TokenURL, validation.Required, validation.By(httpURL)),
		); err != nil {
			return fmt.Errorf("auth oauth2: %w", err)
		}
	}

	if err := validation.ValidateStruct(c.Cache,
		validation.Field(&c.Cache.Size, validation.Min(1)),
		validation.Field(&c.Cache.DedupingInterval, validation.By(duration)),
	); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func duration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 30s or 1m")
	}
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// Credentials builds the token resolver described by the auth block.
func (c *Config) Credentials(ctx context.Context, logger hclog.Logger) *auth.Resolver {
	c.ensureBlocks()

	var session auth.SessionSource
	switch {
	case c.Auth.OAuth2 != nil:
		cc := &clientcredentials.Config{
			ClientID:     c.Auth.OAuth2.ClientID,
			ClientSecret: c.Auth.OAuth2.ClientSecret,
			TokenURL:     c.Auth.OAuth2.TokenURL,
			Scopes:       c.Auth.OAuth2.Scopes,
		}
		session = auth.NewOAuth2Session(cc.TokenSource(ctx))
	case c.Auth.SessionToken != "":
		var secret []byte
		if c.Auth.SessionSecret != "" {
			secret = []byte(c.Auth.SessionSecret)
		}
		session = auth.NewJWTSession(c.Auth.SessionToken, secret)
	}

	return auth.NewResolver(auth.ResolverConfig{
		Session:   session,
		StaticKey: c.Auth.APIKey,
		Logger:    logger,
	})
}

// ClientOptions converts the configuration into doctorq client options.
func (c *Config) ClientOptions(ctx context.Context, logger hclog.Logger, m *metrics.Metrics) (doctorq.Options, error) {
	c.ensureBlocks()

	timeout, err := parseDuration(c.API.Timeout)
	if err != nil {
		return doctorq.Options{}, fmt.Errorf("api timeout: %w", err)
	}
	deduping, err := parseDuration(c.Cache.DedupingInterval)
	if err != nil {
		return doctorq.Options{}, fmt.Errorf("cache deduping_interval: %w", err)
	}

	return doctorq.Options{
		APIURL:           c.API.URL,
		AIURL:            c.AI.URL,
		LocalURL:         c.API.LocalURL,
		Credentials:      c.Credentials(ctx, logger),
		Timeout:          timeout,
		TLSVerify:        c.API.TLSVerify,
		UserAgent:        c.API.UserAgent,
		CacheSize:        c.Cache.Size,
		DedupingInterval: deduping,
		Logger:           logger,
		Metrics:          m,
	}, nil
}

// NewLogger builds the root logger named name.
func (c *Config) NewLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(c.LogLevel),
		JSONFormat: c.LogFormat == "json",
	})
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
