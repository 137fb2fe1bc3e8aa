package config

import (
	"strings"
	"time"

	"github.com/ZaguanLabs/medlai"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Translation TranslationConfig `yaml:"translation"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Cache       CacheConfig       `yaml:"cache"`
	Hospital    HospitalConfig    `yaml:"hospital"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	BodyLimit       string        `yaml:"body_limit"       env:"SERVER_BODY_LIMIT"       env-default:"1M"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// TranslationConfig holds resolver settings.
type TranslationConfig struct {
	SourceLang        string        `yaml:"source_lang"         env:"TRANSLATION_SOURCE_LANG"         env-default:"en"`
	ProviderTimeout   time.Duration `yaml:"provider_timeout"    env:"TRANSLATION_PROVIDER_TIMEOUT"    env-default:"15s"`
	RateLimitInterval time.Duration `yaml:"rate_limit_interval" env:"TRANSLATION_RATE_LIMIT_INTERVAL" env-default:"1s"`
	RetryMax          int           `yaml:"retry_max"           env:"TRANSLATION_RETRY_MAX"           env-default:"3"`
	RetryBaseDelay    time.Duration `yaml:"retry_base_delay"    env:"TRANSLATION_RETRY_BASE_DELAY"    env-default:"500ms"`
	Concurrency       int           `yaml:"concurrency"         env:"TRANSLATION_CONCURRENCY"         env-default:"4"`
}

// ProvidersConfig holds credentials for the translation providers. A paid
// provider joins the chain only when its key is set.
type ProvidersConfig struct {
	GoogleAPIKey    string `yaml:"google_api_key"          env:"GOOGLE_TRANSLATE_API_KEY"`
	DeepLAPIKey     string `yaml:"deepl_api_key"           env:"DEEPL_API_KEY"`
	DeepLURL        string `yaml:"deepl_url"               env:"DEEPL_API_URL"`
	OpenAIAPIKey    string `yaml:"openai_api_key"          env:"OPENAI_API_KEY"`
	OpenAIModel     string `yaml:"openai_model"            env:"OPENAI_MODEL"             env-default:"gpt-4o-mini"`
	OpenAIBaseURL   string `yaml:"openai_base_url"         env:"OPENAI_BASE_URL"`
	LibreMirrorsRaw string `yaml:"libretranslate_mirrors"  env:"LIBRETRANSLATE_MIRRORS"`
	LibreAPIKey     string `yaml:"libretranslate_api_key"  env:"LIBRETRANSLATE_API_KEY"`
	LibreDisabled   bool   `yaml:"libretranslate_disabled" env:"LIBRETRANSLATE_DISABLED"  env-default:"false"`
}

// LibreMirrors splits the comma-separated mirror list. Empty means the
// provider defaults.
func (p ProvidersConfig) LibreMirrors() []string {
	var out []string
	for _, m := range strings.Split(p.LibreMirrorsRaw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// PaidProviders lists the paid providers that have credentials, in chain order.
func (p ProvidersConfig) PaidProviders() []string {
	var names []string
	if p.GoogleAPIKey != "" {
		names = append(names, medlai.ServiceGoogle)
	}
	if p.DeepLAPIKey != "" {
		names = append(names, medlai.ServiceDeepL)
	}
	if p.OpenAIAPIKey != "" {
		names = append(names, medlai.ServiceOpenAI)
	}
	return names
}

// CacheConfig holds translation cache settings. Without a Redis URL the
// cache lives in process memory.
type CacheConfig struct {
	RedisURL  string        `yaml:"redis_url"  env:"CACHE_REDIS_URL"`
	TTL       time.Duration `yaml:"ttl"        env:"CACHE_TTL"        env-default:"0s"`
	KeyPrefix string        `yaml:"key_prefix" env:"CACHE_KEY_PREFIX" env-default:"medlai:"`
}

// HospitalConfig is the branding handed to the presentation layer.
type HospitalConfig struct {
	Name           string `yaml:"name"            env:"HOSPITAL_NAME"            env-default:"General Hospital"`
	Address        string `yaml:"address"         env:"HOSPITAL_ADDRESS"`
	Phone          string `yaml:"phone"           env:"HOSPITAL_PHONE"`
	PrimaryColor   string `yaml:"primary_color"   env:"HOSPITAL_PRIMARY_COLOR"   env-default:"#1f6feb"`
	SecondaryColor string `yaml:"secondary_color" env:"HOSPITAL_SECONDARY_COLOR" env-default:"#f0f6ff"`
}

// Branding converts the config section to the domain type.
func (h HospitalConfig) Branding() medlai.HospitalBranding {
	return medlai.HospitalBranding{
		Name:           h.Name,
		Address:        h.Address,
		Phone:          h.Phone,
		PrimaryColor:   h.PrimaryColor,
		SecondaryColor: h.SecondaryColor,
	}
}

// RetryConfig converts the retry settings to the resolver's policy.
func (t TranslationConfig) RetryConfig() medlai.RetryConfig {
	cfg := medlai.DefaultRetryConfig()
	cfg.MaxRetries = t.RetryMax
	cfg.BaseDelay = t.RetryBaseDelay
	return cfg
}
