// Package cache provides translation cache implementations for the resolver.
// Values are the resolver's JSON-encoded results; keys come from
// medlai.CacheKey and medlai.BatchCacheKey.
package cache

import "github.com/ZaguanLabs/medlai"

// TranslationCache is an alias to the main package interface.
type TranslationCache = medlai.TranslationCache

// Clearable is a cache an operator can empty.
type Clearable interface {
	Clear() error
}

// Enumerable is a cache whose live entries can be listed for export.
type Enumerable interface {
	TranslationCache
	Entries() (map[string]string, error)
}
