package swr

import (
	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
)

// Key identifies a cached read.
type Key struct {
	Endpoint string
	Query    string // canonical query string: sorted keys, empty values dropped
}

// NewKey builds the key for endpoint and params.
func NewKey(endpoint string, params apiclient.Params) Key {
	return Key{
		Endpoint: endpoint,
		Query:    params.Encode(),
	}
}

// String returns the cache key string.
func (k Key) String() string {
	if k.Query == "" {
		return k.Endpoint
	}
	return k.Endpoint + "?" + k.Query
}
