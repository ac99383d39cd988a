package doctorq

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/auth"
	"github.com/doctorq/doctorq-sdk/pkg/metrics"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

// Options configures a Client.
type Options struct {
	// APIURL is the REST backend base URL.
	APIURL string

	// AIURL is the AI service base URL. Defaults to APIURL.
	AIURL string

	// LocalURL serves the local proxy routes (optional).
	LocalURL string

	// Credentials resolves the bearer token for both services.
	Credentials auth.Provider

	Timeout   time.Duration
	TLSVerify *bool
	UserAgent string

	// CacheSize bounds the read cache. Default: 500 entries.
	CacheSize int

	// DedupingInterval is how long reads are served from cache without a
	// request. Default: 2 seconds.
	DedupingInterval time.Duration

	Logger     hclog.Logger
	Metrics    *metrics.Metrics
	HTTPClient *http.Client
}

// Client groups the DoctorQ services.
type Client struct {
	API   *apiclient.Client
	AI    *apiclient.Client
	Cache *swr.Cache

	logger hclog.Logger
}

// New creates a new Client.
func New(opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	logger := opts.Logger.Named("doctorq")

	aiURL := opts.AIURL
	if aiURL == "" {
		aiURL = opts.APIURL
	}

	api, err := apiclient.New(opts.clientConfig("api", opts.APIURL, logger))
	if err != nil {
		return nil, err
	}
	ai, err := apiclient.New(opts.clientConfig("ai", aiURL, logger))
	if err != nil {
		return nil, err
	}

	cache, err := swr.NewCache(swr.CacheConfig{
		Size:             opts.CacheSize,
		DedupingInterval: opts.DedupingInterval,
		Logger:           logger,
		Metrics:          opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	logger.Debug("client created", "api_url", api.BaseURL(), "ai_url", ai.BaseURL())

	return &Client{
		API:    api,
		AI:     ai,
		Cache:  cache,
		logger: logger,
	}, nil
}

func (o Options) clientConfig(name, baseURL string, logger hclog.Logger) *apiclient.Config {
	return &apiclient.Config{
		Name:         name,
		BaseURL:      baseURL,
		LocalBaseURL: o.LocalURL,
		Timeout:      o.Timeout,
		TLSVerify:    o.TLSVerify,
		UserAgent:    o.UserAgent,
		Credentials:  o.Credentials,
		Logger:       logger,
		Metrics:      o.Metrics,
		HTTPClient:   o.HTTPClient,
	}
}
