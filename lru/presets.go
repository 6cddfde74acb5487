// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import "time"

// Preset capacities and TTLs tuned for the workloads this library was
// extracted from. Query results churn quickly; templates are stable and
// worth holding for an hour; fingerprints and tokenizer output sit between.
const (
	queryCacheSize = 512
	queryCacheTTL  = 5 * time.Minute

	templateCacheSize = 1024
	templateCacheTTL  = time.Hour

	fingerprintCacheSize = 512
	fingerprintCacheTTL  = 30 * time.Minute

	tokenizerCacheSize = 256
	tokenizerCacheTTL  = 15 * time.Minute
)

// NewQueryCache creates a cache sized for memoizing query results.
func NewQueryCache[V any]() *Cache[string, V] {
	c, _ := New[string, V](queryCacheSize, queryCacheTTL)
	return c
}

// NewTemplateCache creates a cache sized for frequently accessed templates.
// Invalidate individual templates with Evict, or all of them with Flush.
func NewTemplateCache[V any]() *Cache[string, V] {
	c, _ := New[string, V](templateCacheSize, templateCacheTTL)
	return c
}

// NewFingerprintCache creates a cache sized for computed fingerprints.
func NewFingerprintCache[V any]() *Cache[string, V] {
	c, _ := New[string, V](fingerprintCacheSize, fingerprintCacheTTL)
	return c
}

// NewTokenizerCache creates a cache sized for tokenization results.
func NewTokenizerCache[V any]() *Cache[string, V] {
	c, _ := New[string, V](tokenizerCacheSize, tokenizerCacheTTL)
	return c
}
