package swr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/metrics"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(CacheConfig{
		Logger:  hclog.NewNullLogger(),
		Metrics: metrics.New(nil),
	})
	require.NoError(t, err)
	return cache
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(&apiclient.Config{
		BaseURL: server.URL,
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	return client
}
