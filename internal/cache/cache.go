// Package cache provides a request-scoped memo and ETag helpers.
//
// Upstream data must not outlive the report-build call that fetched it, so
// there is no TTL cache here: a Memo is created per call, shared by the
// components of that call (a season log fetched for the overall form is reused
// by the head-to-head scan), and dropped with it.
package cache

import (
	"crypto/md5"
	"fmt"
	"sync"
)

type entry[V any] struct {
	value V
	err   error
}

// Memo remembers the outcome of a keyed computation, errors included, for the
// lifetime of one request.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	hits    int
	misses  int
}

// NewMemo creates an empty memo.
func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{entries: make(map[K]entry[V])}
}

// Do returns the remembered outcome for key, or runs fn and remembers it.
// A failed fetch is remembered too so that a unit already skipped is not
// retried within the same request.
func (m *Memo[K, V]) Do(key K, fn func() (V, error)) (V, error) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok {
		m.hits++
		m.mu.Unlock()
		return e.value, e.err
	}
	m.misses++
	m.mu.Unlock()

	v, err := fn()

	m.mu.Lock()
	m.entries[key] = entry[V]{value: v, err: err}
	m.mu.Unlock()
	return v, err
}

// Stats returns memo statistics.
func (m *Memo[K, V]) Stats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]interface{}{
		"keys":   len(m.entries),
		"hits":   m.hits,
		"misses": m.misses,
	}
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	// Single-etag comparison only.
	return ifNoneMatch == etag
}
