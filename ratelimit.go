package medlai

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRateLimitInterval is the minimum gap between two translation
// requests for the same target language.
const DefaultRateLimitInterval = time.Second

// RateLimiter enforces a minimum interval between requests per target
// language. Requests inside the window are rejected instead of queued.
type RateLimiter struct {
	interval time.Duration
	limiters map[string]*rate.Limiter
	now      func() time.Time
	mu       sync.Mutex
}

// NewRateLimiter creates a limiter with the given minimum interval.
// A zero or negative interval disables limiting.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

// Allow records a request for lang. It returns a *RateLimitError when the
// previous request for the same language is less than one interval old.
func (r *RateLimiter) Allow(lang string) error {
	if r == nil || r.interval <= 0 {
		return nil
	}

	key := normalizeBaseLang(lang)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	lim, ok := r.limiters[key]
	if !ok {
		// One token per interval, no burst: back-to-back requests are rejected.
		lim = rate.NewLimiter(rate.Every(r.interval), 1)
		r.limiters[key] = lim
	}

	if lim.AllowN(now, 1) {
		return nil
	}

	missing := 1 - lim.TokensAt(now)
	return &RateLimitError{
		Lang:       key,
		RetryAfter: time.Duration(missing * float64(r.interval)),
	}
}

// Interval returns the configured minimum interval.
func (r *RateLimiter) Interval() time.Duration {
	return r.interval
}

// Reset forgets the request history of every language.
func (r *RateLimiter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiters = make(map[string]*rate.Limiter)
}
