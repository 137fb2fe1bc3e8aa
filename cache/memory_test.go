package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ZaguanLabs/medlai"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	c := NewInMemoryCache(time.Hour)

	err := c.Set("key1", "value1")
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get("key1")
	if !ok {
		t.Error("Get should return true for existing key")
	}
	if val != "value1" {
		t.Errorf("Get returned %q, want %q", val, "value1")
	}

	val, ok = c.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing key")
	}
	if val != "" {
		t.Errorf("Get should return empty string for missing key, got %q", val)
	}
}

func TestInMemoryCache_TTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewInMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("key1", "value1")

	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Error("Value should be available immediately after set")
	}

	now = now.Add(2 * time.Minute)

	val, ok := c.Get("key1")
	if ok {
		t.Error("Value should be expired after TTL")
	}
	if val != "" {
		t.Errorf("Expired value should return empty string, got %q", val)
	}
	if c.Len() != 0 {
		t.Errorf("Expired entry should be removed on read, len %d", c.Len())
	}
}

func TestInMemoryCache_NoTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewInMemoryCache(0)
	c.now = func() time.Time { return now }

	c.Set("key1", "value1")
	now = now.Add(365 * 24 * time.Hour)

	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Error("Value should be available with no TTL")
	}
}

func TestInMemoryCache_Overwrite(t *testing.T) {
	c := NewInMemoryCache(0)

	c.Set("key1", "value1")
	c.Set("key1", "value2")

	val, ok := c.Get("key1")
	if !ok {
		t.Error("Key should exist")
	}
	if val != "value2" {
		t.Errorf("Value should be overwritten, got %q, want %q", val, "value2")
	}
}

func TestInMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewInMemoryCache(0)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Delete("key1")
	if c.Len() != 2 {
		t.Errorf("Cache should have length 2, got %d", c.Len())
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Cleared cache should have length 0, got %d", c.Len())
	}
	if _, ok := c.Get("key2"); ok {
		t.Error("Cleared cache should not contain any keys")
	}
}

func TestInMemoryCache_Entries(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewInMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("old", "1")
	now = now.Add(45 * time.Second)
	c.Set("new", "2")
	now = now.Add(30 * time.Second)

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 || entries["new"] != "2" {
		t.Errorf("Expected only the live entry, got %v", entries)
	}
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	c := NewInMemoryCache(time.Hour)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.Set(fmt.Sprintf("k%d", i%26), "value")
		}(i)
		go func(i int) {
			defer wg.Done()
			c.Get(fmt.Sprintf("k%d", i%26))
		}(i)
	}

	wg.Wait()
}

func TestInMemoryCache_WithResolver(t *testing.T) {
	c := NewInMemoryCache(0)
	p := &countingProvider{}
	r := medlai.NewResolver([]medlai.Provider{p}, medlai.WithCache(c), medlai.WithRateLimit(0))

	ctx := context.Background()
	first, err := r.Translate(ctx, "Rest at home", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	second, err := r.Translate(ctx, "Rest at home", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if p.calls != 1 {
		t.Errorf("Expected the second call to be served from cache, got %d calls", p.calls)
	}
	if first.TranslatedText != second.TranslatedText {
		t.Errorf("Cached result differs: %q vs %q", first.TranslatedText, second.TranslatedText)
	}

	if err := r.ClearCache(); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("ClearCache should empty the cache, len %d", c.Len())
	}
}

type countingProvider struct {
	calls int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Translate(_ context.Context, req medlai.TranslateRequest) (*medlai.TranslationResult, error) {
	p.calls++
	return &medlai.TranslationResult{TranslatedText: "<" + req.Text + ">", Confidence: 0.9}, nil
}
