package apiclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/doctorq/doctorq-sdk/pkg/auth"
	"github.com/doctorq/doctorq-sdk/pkg/metrics"
)

// DefaultLocalPrefix marks endpoints served by the local proxy.
const DefaultLocalPrefix = "/api/"

// Config contains configuration for a Client.
type Config struct {
	// Name identifies the client in logs and metrics ("api", "ai").
	Name string

	// BaseURL is the remote backend, including any path prefix.
	// Example: "https://api.doctorq.app/api/v1"
	BaseURL string

	// LocalBaseURL is the base URL of the local proxy routes (optional).
	LocalBaseURL string

	// LocalPrefix marks endpoints routed to LocalBaseURL.
	// Default: "/api/"
	LocalPrefix string

	// Timeout for requests. Streams are not bound by it.
	// Default: 30 seconds
	Timeout time.Duration

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development with self-signed certs.
	TLSVerify *bool

	// UserAgent sent with every request.
	UserAgent string

	// Credentials resolves the bearer token per request (optional).
	Credentials auth.Provider

	Logger     hclog.Logger
	Metrics    *metrics.Metrics
	HTTPClient *http.Client
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		Name:        "api",
		LocalPrefix: DefaultLocalPrefix,
		Timeout:     30 * time.Second,
		TLSVerify:   &tlsVerify,
		UserAgent:   "doctorq-sdk",
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Name == "" {
		c.Name = defaults.Name
	}
	if c.LocalPrefix == "" {
		c.LocalPrefix = defaults.LocalPrefix
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	c.LocalBaseURL = strings.TrimSuffix(c.LocalBaseURL, "/")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.BaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("base_url is required"))
	} else if err := validateHTTPURL(c.BaseURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid base_url: %w", err))
	}

	if c.LocalBaseURL != "" {
		if err := validateHTTPURL(c.LocalBaseURL); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid local_base_url: %w", err))
		}
	}

	if c.LocalPrefix != "" && !strings.HasPrefix(c.LocalPrefix, "/") {
		result = multierror.Append(result,
			fmt.Errorf("local_prefix must start with \"/\", got: %s", c.LocalPrefix))
	}

	if c.Timeout < 0 {
		result = multierror.Append(result,
			fmt.Errorf("timeout must be non-negative, got: %v", c.Timeout))
	}

	return result.ErrorOrNil()
}

func validateHTTPURL(raw string) error {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// NewHTTPClient creates the HTTP client used when Config.HTTPClient is nil.
// It carries no overall timeout so streams can outlive Config.Timeout;
// regular requests are bounded per call.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Transport: transport,
	}
}
