package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZaguanLabs/medlai"
	"github.com/rs/zerolog"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Translation.validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0 (got %v)", c.Cache.TTL)
	}

	for name, color := range map[string]string{
		"primary_color":   c.Hospital.PrimaryColor,
		"secondary_color": c.Hospital.SecondaryColor,
	} {
		if color != "" && !hexColor.MatchString(color) {
			return fmt.Errorf("hospital.%s must be a hex color (got %q)", name, color)
		}
	}

	return nil
}

func (t *TranslationConfig) validate() error {
	if !medlai.IsSupported(t.SourceLang) {
		return fmt.Errorf("source_lang %q is not a supported language", t.SourceLang)
	}
	if t.ProviderTimeout <= 0 {
		return fmt.Errorf("provider_timeout must be > 0 (got %v)", t.ProviderTimeout)
	}
	if t.RateLimitInterval < 0 {
		return fmt.Errorf("rate_limit_interval must be >= 0 (got %v)", t.RateLimitInterval)
	}
	if t.RetryMax < 0 {
		return fmt.Errorf("retry_max must be >= 0 (got %d)", t.RetryMax)
	}
	if t.RetryBaseDelay <= 0 {
		return fmt.Errorf("retry_base_delay must be > 0 (got %v)", t.RetryBaseDelay)
	}
	if t.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", t.Concurrency)
	}
	return nil
}
