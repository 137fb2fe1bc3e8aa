package medlai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultProviderTimeout bounds a single provider attempt.
const DefaultProviderTimeout = 15 * time.Second

// Provider is one translation method in the resolver chain.
// Translate returns an error when it cannot produce a translation; the
// resolver then moves on to the next provider.
type Provider interface {
	Name() string
	Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error)
}

// TranslateRequest contains the parameters for translating one text.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Resolver translates text through an ordered chain of providers. The first
// provider that succeeds wins. Cache and rate-limit state belong to the
// Resolver instance.
type Resolver struct {
	sourceLang  string
	providers   []Provider
	cache       TranslationCache
	limiter     *RateLimiter
	timeout     time.Duration
	concurrency int
	logger      zerolog.Logger
	stats       resolverCounters
}

type resolverCounters struct {
	requests      atomic.Int64
	cacheHits     atomic.Int64
	providerCalls atomic.Int64
	rateLimited   atomic.Int64
}

// ResolverStats is a snapshot of resolver activity counters.
type ResolverStats struct {
	Requests      int64 `json:"requests"`
	CacheHits     int64 `json:"cacheHits"`
	ProviderCalls int64 `json:"providerCalls"`
	RateLimited   int64 `json:"rateLimited"`
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithSourceLang sets the source language (default "en").
func WithSourceLang(lang string) ResolverOption {
	return func(r *Resolver) {
		r.sourceLang = lang
	}
}

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithRateLimit sets the minimum interval between requests per target
// language. Zero disables rate limiting.
func WithRateLimit(interval time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.limiter = NewRateLimiter(interval)
	}
}

// WithProviderTimeout sets the timeout applied to each provider attempt.
func WithProviderTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithConcurrency sets how many batch elements are translated at once.
func WithConcurrency(n int) ResolverOption {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

// WithLogger sets the logger used for provider failures and cache activity.
func WithLogger(logger zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver that tries providers in the given order.
func NewResolver(providers []Provider, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		sourceLang:  "en",
		providers:   append([]Provider(nil), providers...),
		limiter:     NewRateLimiter(DefaultRateLimitInterval),
		timeout:     DefaultProviderTimeout,
		concurrency: 4,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.concurrency <= 0 {
		r.concurrency = 1
	}

	return r
}

// Translate translates text from the resolver's source language.
func (r *Resolver) Translate(ctx context.Context, text, targetLang string) (*TranslationResult, error) {
	return r.TranslateFrom(ctx, text, r.sourceLang, targetLang)
}

// TranslateFrom translates text between an explicit language pair.
func (r *Resolver) TranslateFrom(ctx context.Context, text, sourceLang, targetLang string) (*TranslationResult, error) {
	r.stats.requests.Add(1)

	if SameLanguage(sourceLang, targetLang) {
		return noopResult(text), nil
	}

	key := CacheKey(HashText(text), sourceLang, targetLang)
	var cached TranslationResult
	if r.cacheGet(key, &cached) {
		return &cached, nil
	}

	if err := r.allow(targetLang); err != nil {
		return nil, err
	}

	return r.translateOne(ctx, text, sourceLang, targetLang)
}

// TranslateBatch translates an ordered list of texts from the resolver's
// source language.
func (r *Resolver) TranslateBatch(ctx context.Context, texts []string, targetLang string) (*BatchTranslationResult, error) {
	return r.TranslateBatchFrom(ctx, texts, r.sourceLang, targetLang)
}

// TranslateBatchFrom translates each element independently. The aggregate
// confidence is the arithmetic mean of element confidences and ServiceUsed is
// taken from the first element.
func (r *Resolver) TranslateBatchFrom(ctx context.Context, texts []string, sourceLang, targetLang string) (*BatchTranslationResult, error) {
	r.stats.requests.Add(1)

	if SameLanguage(sourceLang, targetLang) {
		return noopBatch(texts), nil
	}

	var cached BatchTranslationResult
	if r.cacheGet(BatchCacheKey(texts, sourceLang, targetLang), &cached) {
		return &cached, nil
	}

	if err := r.allow(targetLang); err != nil {
		return nil, err
	}

	return r.translateBatch(ctx, texts, sourceLang, targetLang)
}

// ClearCache removes every cached translation when the cache supports it.
func (r *Resolver) ClearCache() error {
	switch c := r.cache.(type) {
	case nil:
		return nil
	case interface{ Clear() error }:
		if err := c.Clear(); err != nil {
			return &CacheError{Message: "clear failed", Cause: err}
		}
	case interface{ Clear() }:
		c.Clear()
	default:
		return &CacheError{Message: "cache does not support clearing"}
	}
	r.logger.Info().Msg("translation cache cleared")
	return nil
}

// Stats returns a snapshot of the activity counters.
func (r *Resolver) Stats() ResolverStats {
	return ResolverStats{
		Requests:      r.stats.requests.Load(),
		CacheHits:     r.stats.cacheHits.Load(),
		ProviderCalls: r.stats.providerCalls.Load(),
		RateLimited:   r.stats.rateLimited.Load(),
	}
}

// SourceLang returns the default source language.
func (r *Resolver) SourceLang() string {
	return r.sourceLang
}

// Providers returns the provider names in chain order.
func (r *Resolver) Providers() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// translateOne resolves a single text through the element cache and the chain.
func (r *Resolver) translateOne(ctx context.Context, text, sourceLang, targetLang string) (*TranslationResult, error) {
	if strings.TrimSpace(text) == "" {
		return noopResult(text), nil
	}

	key := CacheKey(HashText(text), sourceLang, targetLang)
	var cached TranslationResult
	if r.cacheGet(key, &cached) {
		return &cached, nil
	}

	result, err := r.resolve(ctx, TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		return nil, err
	}

	r.cacheSet(key, result)
	return result, nil
}

// resolve walks the provider chain. Each attempt runs under its own timeout;
// a provider that does not return in time is abandoned.
func (r *Resolver) resolve(ctx context.Context, req TranslateRequest) (*TranslationResult, error) {
	if len(r.providers) == 0 {
		return nil, ErrNoProviders
	}

	attempts := make([]error, 0, len(r.providers))
	for _, p := range r.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := r.attempt(ctx, p, req)
		if err == nil {
			return result, nil
		}

		r.logger.Warn().
			Str("provider", p.Name()).
			Str("target_lang", req.TargetLang).
			Err(err).
			Msg("translation provider failed")
		attempts = append(attempts, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &AllProvidersFailedError{Attempts: attempts}
}

type attemptOutcome struct {
	result *TranslationResult
	err    error
}

func (r *Resolver) attempt(ctx context.Context, p Provider, req TranslateRequest) (*TranslationResult, error) {
	r.stats.providerCalls.Add(1)

	attemptCtx := ctx
	cancel := func() {}
	if r.timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	done := make(chan attemptOutcome, 1)
	go func() {
		res, err := p.Translate(attemptCtx, req)
		done <- attemptOutcome{result: res, err: err}
	}()

	var out attemptOutcome
	select {
	case out = <-done:
	case <-attemptCtx.Done():
		out.err = attemptCtx.Err()
	}

	if out.err != nil {
		if errors.Is(out.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &ProviderError{Provider: p.Name(), Message: "timed out after " + r.timeout.String(), Cause: out.err}
		}
		return nil, out.err
	}
	if out.result == nil {
		return nil, &ProviderError{Provider: p.Name(), Message: "empty result"}
	}

	res := *out.result
	res.OriginalText = req.Text
	if res.ServiceUsed == "" {
		res.ServiceUsed = p.Name()
	}
	res.Confidence = clampConfidence(res.Confidence)
	return &res, nil
}

func (r *Resolver) allow(targetLang string) error {
	if err := r.limiter.Allow(targetLang); err != nil {
		r.stats.rateLimited.Add(1)
		r.logger.Info().Str("target_lang", targetLang).Err(err).Msg("translation request rate limited")
		return err
	}
	return nil
}

func (r *Resolver) cacheGet(key string, dst any) bool {
	if r.cache == nil {
		return false
	}
	raw, ok := r.cache.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.logger.Warn().Str("key", key).Err(err).Msg("discarding undecodable cache entry")
		return false
	}
	r.stats.cacheHits.Add(1)
	r.logger.Debug().Str("key", key).Msg("translation cache hit")
	return true
}

func (r *Resolver) cacheSet(key string, value any) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(key, string(data)); err != nil {
		r.logger.Warn().Str("key", key).Err(err).Msg("translation cache write failed")
	}
}

func noopResult(text string) *TranslationResult {
	return &TranslationResult{
		TranslatedText: text,
		Confidence:     1.0,
		ServiceUsed:    ServiceNone,
		OriginalText:   text,
	}
}

func noopBatch(texts []string) *BatchTranslationResult {
	out := &BatchTranslationResult{
		TranslatedTexts: append([]string{}, texts...),
		Confidence:      1.0,
		ServiceUsed:     ServiceNone,
		OriginalTexts:   append([]string{}, texts...),
		Results:         make([]TranslationResult, len(texts)),
	}
	for i, t := range texts {
		out.Results[i] = *noopResult(t)
	}
	return out
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
