package checker

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
	"github.com/abiiranathan/go-component-lsp/analyzer/template"
)

// Fingerprint returns the content fingerprint used as part of cache keys. A
// changed fingerprint is the only thing that invalidates derived analysis.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

// cacheKey identifies one memoized computation. file is the identity of the
// text the computation ran over (host file for inline templates, template
// file for external ones); class disambiguates resolver results for
// different host classes sharing a template.
type cacheKey struct {
	kind        string // "parse" or "resolve"
	file        string
	fingerprint string
	class       string
}

// parseResult is a memoized template.Parse output.
type parseResult struct {
	doc   *template.Document
	diags []diag.Diagnostic
}

// queryCache memoizes parser and resolver outputs per (file, fingerprint).
//
// Reads take the read lock; a miss computes outside any lock and publishes
// with the write lock. Concurrent requests may duplicate a computation for
// the same key, which is harmless: the pipeline is pure, so every computed
// value for a key is identical. Entries for unrelated keys are never
// disturbed.
type queryCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]any
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[cacheKey]any, 64)}
}

func (c *queryCache) get(k cacheKey) (any, bool) {
	c.mu.RLock()
	v, ok := c.entries[k]
	c.mu.RUnlock()
	return v, ok
}

func (c *queryCache) set(k cacheKey, v any) {
	c.mu.Lock()
	c.entries[k] = v
	c.mu.Unlock()
}

// invalidate drops every entry keyed by file, leaving other files' entries
// untouched. Stale fingerprints for the same file are dropped with it; they
// could never be read again anyway.
func (c *queryCache) invalidate(file string) {
	c.mu.Lock()
	for k := range c.entries {
		if k.file == file {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// size reports the number of live entries (test hook).
func (c *queryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
