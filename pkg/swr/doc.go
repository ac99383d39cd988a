// Package swr is a stale-while-revalidate cache for API reads, with list and
// single-item queries and one-shot mutations on top of it.
//
// Reads are keyed by endpoint plus the canonical query string, so two
// queries with the same parameters share one cache entry and one in-flight
// request regardless of the order the parameters were supplied in.
// Mutations are never cached. Invalidating a read after a related write is
// the caller's job: call the query's Mutate from the mutation's OnSuccess.
//
// Lifecycle of a query:
//
//	idle -> loading -> success | error
//	     -> revalidating -> success | error
//
// A failed fetch keeps the last good data and records the error. Nothing is
// retried automatically.
package swr
