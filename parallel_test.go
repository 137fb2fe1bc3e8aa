package medlai

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// slowCache simulates a slow cache for testing parallel lookups
type slowCache struct {
	data    map[string]string
	mu      sync.RWMutex
	delay   time.Duration
	lookups int64
}

func newSlowCache(delay time.Duration) *slowCache {
	return &slowCache{
		data:  make(map[string]string),
		delay: delay,
	}
}

func (c *slowCache) Get(key string) (string, bool) {
	atomic.AddInt64(&c.lookups, 1)
	time.Sleep(c.delay)
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.data[key]
	return val, ok
}

func (c *slowCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func TestTranslateBatch_PreservesOrder(t *testing.T) {
	provider := newMockProvider("google")
	provider.delay = 5 * time.Millisecond
	r := newTestResolver([]Provider{provider}, WithConcurrency(3))

	texts := []string{"Hello", "World", "Rest at home", "Take medication twice daily"}
	res, err := r.TranslateBatch(context.Background(), texts, "es")
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}

	want := []string{"Hola", "Mundo", "Descanse en casa", "Tome el medicamento dos veces al día"}
	for i := range want {
		if res.TranslatedTexts[i] != want[i] {
			t.Errorf("Item %d: expected %q, got %q", i, want[i], res.TranslatedTexts[i])
		}
		if res.OriginalTexts[i] != texts[i] {
			t.Errorf("Item %d: original text not preserved", i)
		}
	}
}

func TestTranslateBatch_MeanConfidence(t *testing.T) {
	results := []TranslationResult{
		{TranslatedText: "a", Confidence: 0.9, ServiceUsed: "google"},
		{TranslatedText: "b", Confidence: 0.6, ServiceUsed: "dictionary"},
		{TranslatedText: "c", Confidence: 0.3, ServiceUsed: "suffix"},
	}

	batch := combineResults([]string{"x", "y", "z"}, results)

	if diff := batch.Confidence - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected mean confidence 0.6, got %v", batch.Confidence)
	}
	if batch.ServiceUsed != "google" {
		t.Errorf("Expected service of first element, got %q", batch.ServiceUsed)
	}
}

func TestTranslateBatch_Empty(t *testing.T) {
	r := newTestResolver([]Provider{newMockProvider("google")})

	res, err := r.TranslateBatch(context.Background(), nil, "es")
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}
	if len(res.TranslatedTexts) != 0 || res.Confidence != 1.0 {
		t.Errorf("Unexpected result for empty batch: %+v", res)
	}
}

func TestTranslateBatch_SameLanguage(t *testing.T) {
	provider := newMockProvider("google")
	r := newTestResolver([]Provider{provider})

	res, err := r.TranslateBatch(context.Background(), []string{"Hello", "World"}, "en_GB")
	if err != nil {
		t.Fatal(err)
	}
	if res.TranslatedTexts[1] != "World" || res.ServiceUsed != ServiceNone {
		t.Errorf("Expected passthrough, got %+v", res)
	}
	if provider.calls.Load() != 0 {
		t.Error("Provider should not be called")
	}
}

func TestTranslateBatch_UsesBatchCache(t *testing.T) {
	provider := newMockProvider("google")
	cache := newSlowCache(0)
	r := newTestResolver([]Provider{provider}, WithCache(cache))

	texts := []string{"Hello", "World"}
	if _, err := r.TranslateBatch(context.Background(), texts, "es"); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(BatchCacheKey(texts, "en", "es")); !ok {
		t.Fatal("Expected batch result to be cached")
	}

	if _, err := r.TranslateBatch(context.Background(), texts, "es"); err != nil {
		t.Fatal(err)
	}
	if provider.calls.Load() != 2 {
		t.Errorf("Expected 2 provider calls in total, got %d", provider.calls.Load())
	}
}

func TestTranslateBatch_ElementFailureFailsBatch(t *testing.T) {
	provider := newMockProvider("google")
	provider.err = &ProviderError{Provider: "google", Message: "unavailable"}
	r := newTestResolver([]Provider{provider})

	if _, err := r.TranslateBatch(context.Background(), []string{"Hello", "World"}, "es"); err == nil {
		t.Error("Expected error when every provider fails")
	}
}

func TestCachedBatch_FasterThanSequential(t *testing.T) {
	delay := 10 * time.Millisecond
	cache := newSlowCache(delay)
	r := newTestResolver(nil, WithCache(cache))

	batches := make([][]string, 10)
	for i := range batches {
		batches[i] = []string{string(rune('a' + i))}
		cache.Set(BatchCacheKey(batches[i], "en", "es"), "{}")
	}

	start := time.Now()
	if !r.cachedBatch(batches, "en", "es") {
		t.Fatal("Expected every batch to be cached")
	}
	elapsed := time.Since(start)

	// Sequential would take 10 * 10ms = 100ms
	maxExpected := 50 * time.Millisecond
	if elapsed > maxExpected {
		t.Errorf("Parallel lookup took %v, expected < %v", elapsed, maxExpected)
	}
}

func TestCachedBatch_Miss(t *testing.T) {
	cache := newSlowCache(0)
	r := newTestResolver(nil, WithCache(cache))

	cache.Set(BatchCacheKey([]string{"a"}, "en", "es"), "{}")

	if r.cachedBatch([][]string{{"a"}, {"b"}}, "en", "es") {
		t.Error("Expected a miss when one batch is not cached")
	}
	if newTestResolver(nil).cachedBatch([][]string{{"a"}}, "en", "es") {
		t.Error("Expected a miss without a cache")
	}
}

func BenchmarkTranslateBatch_Cached(b *testing.B) {
	r := newTestResolver([]Provider{newMockProvider("google")}, WithCache(newSlowCache(0)))
	texts := []string{"Hello", "World", "Rest at home"}
	_, _ = r.TranslateBatch(context.Background(), texts, "es")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.TranslateBatch(context.Background(), texts, "es")
	}
}
