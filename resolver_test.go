package medlai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockProvider is a simple mock for testing
type mockProvider struct {
	name         string
	translations map[string]string
	confidence   float64
	err          error
	delay        time.Duration
	ignoreCtx    bool
	calls        atomic.Int32
}

func newMockProvider(name string) *mockProvider {
	return &mockProvider{
		name:       name,
		confidence: 0.9,
		translations: map[string]string{
			"Hello":                       "Hola",
			"World":                       "Mundo",
			"Take medication twice daily": "Tome el medicamento dos veces al día",
			"Rest at home":                "Descanse en casa",
		},
	}
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error) {
	m.calls.Add(1)

	if m.delay > 0 {
		if m.ignoreCtx {
			time.Sleep(m.delay)
		} else {
			select {
			case <-time.After(m.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if m.err != nil {
		return nil, m.err
	}

	text, ok := m.translations[req.Text]
	if !ok {
		text = "[" + req.Text + "]"
	}
	return &TranslationResult{TranslatedText: text, Confidence: m.confidence, ServiceUsed: m.name}, nil
}

// mockCache is a simple mock cache for testing
type mockCache struct {
	mu   sync.Mutex
	data map[string]string
	gets atomic.Int32
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (c *mockCache) Get(key string) (string, bool) {
	c.gets.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.data[key]
	return val, ok
}

func (c *mockCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mockCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]string)
}

func (c *mockCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func newTestResolver(providers []Provider, opts ...ResolverOption) *Resolver {
	opts = append([]ResolverOption{WithRateLimit(0)}, opts...)
	return NewResolver(providers, opts...)
}

func TestResolver_BasicTranslation(t *testing.T) {
	provider := newMockProvider("google")
	r := newTestResolver([]Provider{provider})

	res, err := r.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if res.TranslatedText != "Hola" {
		t.Errorf("Expected 'Hola', got %q", res.TranslatedText)
	}
	if res.OriginalText != "Hello" {
		t.Errorf("Expected original text to be kept, got %q", res.OriginalText)
	}
	if res.ServiceUsed != "google" {
		t.Errorf("Expected service 'google', got %q", res.ServiceUsed)
	}
}

func TestResolver_SourceEqualsTarget(t *testing.T) {
	provider := newMockProvider("google")
	r := newTestResolver([]Provider{provider})

	for _, lang := range []string{"en", "en_US", "EN-gb"} {
		res, err := r.Translate(context.Background(), "Hello", lang)
		if err != nil {
			t.Fatalf("Translate(%q) failed: %v", lang, err)
		}
		if res.TranslatedText != "Hello" || res.Confidence != 1.0 || res.ServiceUsed != ServiceNone {
			t.Errorf("Translate(%q) = %+v, want unchanged text with confidence 1", lang, res)
		}
	}

	if provider.calls.Load() != 0 {
		t.Errorf("Provider should not be called for same-language requests, got %d calls", provider.calls.Load())
	}
}

func TestResolver_EmptyText(t *testing.T) {
	provider := newMockProvider("google")
	r := newTestResolver([]Provider{provider})

	res, err := r.Translate(context.Background(), "   ", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.TranslatedText != "   " || res.ServiceUsed != ServiceNone {
		t.Errorf("Expected blank text to pass through, got %+v", res)
	}
	if provider.calls.Load() != 0 {
		t.Error("Provider should not be called for blank text")
	}
}

func TestResolver_CacheHit(t *testing.T) {
	provider := newMockProvider("google")
	cache := newMockCache()
	r := newTestResolver([]Provider{provider}, WithCache(cache))

	first, err := r.Translate(context.Background(), "Take medication twice daily", "es")
	if err != nil {
		t.Fatalf("First Translate failed: %v", err)
	}

	second, err := r.Translate(context.Background(), "Take medication twice daily", "es")
	if err != nil {
		t.Fatalf("Second Translate failed: %v", err)
	}

	if provider.calls.Load() != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls.Load())
	}
	if *first != *second {
		t.Errorf("Cached result differs: %+v vs %+v", first, second)
	}
	if r.Stats().CacheHits != 1 {
		t.Errorf("Expected 1 cache hit, got %d", r.Stats().CacheHits)
	}
}

func TestResolver_CacheIsPerLanguagePair(t *testing.T) {
	provider := newMockProvider("google")
	cache := newMockCache()
	r := newTestResolver([]Provider{provider}, WithCache(cache))

	if _, err := r.Translate(context.Background(), "Hello", "es"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Translate(context.Background(), "Hello", "fr"); err != nil {
		t.Fatal(err)
	}

	if provider.calls.Load() != 2 {
		t.Errorf("Expected separate provider calls per language, got %d", provider.calls.Load())
	}
}

func TestResolver_FallsThroughChain(t *testing.T) {
	failing := newMockProvider("google")
	failing.err = &ProviderError{Provider: "google", Message: "quota exceeded", StatusCode: 403}
	backup := newMockProvider("libretranslate")

	r := newTestResolver([]Provider{failing, backup})

	res, err := r.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.ServiceUsed != "libretranslate" {
		t.Errorf("Expected backup provider to win, got %q", res.ServiceUsed)
	}
	if failing.calls.Load() != 1 || backup.calls.Load() != 1 {
		t.Errorf("Expected one call each, got %d and %d", failing.calls.Load(), backup.calls.Load())
	}
}

func TestResolver_ProviderTimeout(t *testing.T) {
	hanging := newMockProvider("google")
	hanging.delay = time.Second
	hanging.ignoreCtx = true
	backup := newMockProvider("libretranslate")

	r := newTestResolver([]Provider{hanging, backup}, WithProviderTimeout(30*time.Millisecond))

	start := time.Now()
	res, err := r.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Hanging provider was not abandoned, took %v", elapsed)
	}
	if res.ServiceUsed != "libretranslate" || res.TranslatedText != "Hola" {
		t.Errorf("Expected backup translation, got %+v", res)
	}
}

func TestResolver_AllProvidersFailed(t *testing.T) {
	a := newMockProvider("google")
	a.err = errors.New("boom")
	b := newMockProvider("libretranslate")
	b.err = errors.New("mirror down")

	r := newTestResolver([]Provider{a, b})

	_, err := r.Translate(context.Background(), "Hello", "es")

	var allErr *AllProvidersFailedError
	if !errors.As(err, &allErr) {
		t.Fatalf("Expected AllProvidersFailedError, got %v", err)
	}
	if len(allErr.Attempts) != 2 {
		t.Errorf("Expected 2 attempts, got %d", len(allErr.Attempts))
	}
	if !strings.Contains(err.Error(), "mirror down") {
		t.Errorf("Expected attempt errors in message, got %q", err.Error())
	}
}

func TestResolver_NoProviders(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Translate(context.Background(), "Hello", "es")
	if !errors.Is(err, ErrNoProviders) {
		t.Errorf("Expected ErrNoProviders, got %v", err)
	}
}

func TestResolver_ConfidenceClamped(t *testing.T) {
	provider := newMockProvider("openai")
	provider.confidence = 1.7
	r := newTestResolver([]Provider{provider})

	res, err := r.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatal(err)
	}
	if res.Confidence != 1.0 {
		t.Errorf("Expected confidence clamped to 1, got %v", res.Confidence)
	}
}

func TestResolver_RateLimit(t *testing.T) {
	provider := newMockProvider("google")
	r := NewResolver([]Provider{provider}, WithRateLimit(time.Hour))

	if _, err := r.Translate(context.Background(), "Hello", "es"); err != nil {
		t.Fatalf("First request should pass: %v", err)
	}

	_, err := r.Translate(context.Background(), "World", "es_MX")
	if !IsRateLimited(err) {
		t.Fatalf("Expected rate limit error, got %v", err)
	}

	var rlErr *RateLimitError
	if errors.As(err, &rlErr) && rlErr.RetryAfter <= 0 {
		t.Errorf("Expected positive RetryAfter, got %v", rlErr.RetryAfter)
	}

	if _, err := r.Translate(context.Background(), "World", "fr"); err != nil {
		t.Errorf("Other languages should not be limited: %v", err)
	}

	if r.Stats().RateLimited != 1 {
		t.Errorf("Expected 1 rate-limited request, got %d", r.Stats().RateLimited)
	}
}

func TestResolver_CachedRequestsBypassRateLimit(t *testing.T) {
	provider := newMockProvider("google")
	r := NewResolver([]Provider{provider}, WithRateLimit(time.Hour), WithCache(newMockCache()))

	for i := 0; i < 3; i++ {
		if _, err := r.Translate(context.Background(), "Hello", "es"); err != nil {
			t.Fatalf("Request %d failed: %v", i, err)
		}
	}
}

func TestResolver_ClearCache(t *testing.T) {
	cache := newMockCache()
	r := newTestResolver([]Provider{newMockProvider("google")}, WithCache(cache))

	if _, err := r.Translate(context.Background(), "Hello", "es"); err != nil {
		t.Fatal(err)
	}
	if cache.Len() == 0 {
		t.Fatal("Expected cache to be populated")
	}

	if err := r.ClearCache(); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", cache.Len())
	}
}

func TestResolver_Options(t *testing.T) {
	r := NewResolver([]Provider{newMockProvider("google"), newMockProvider("libretranslate")},
		WithSourceLang("de"),
		WithConcurrency(0),
		WithProviderTimeout(time.Second),
	)

	if r.SourceLang() != "de" {
		t.Errorf("Expected source lang 'de', got %q", r.SourceLang())
	}
	if r.concurrency != 1 {
		t.Errorf("Expected concurrency floor of 1, got %d", r.concurrency)
	}

	names := r.Providers()
	if len(names) != 2 || names[0] != "google" {
		t.Errorf("Unexpected provider order: %v", names)
	}
}
