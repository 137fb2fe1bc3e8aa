package provider

import (
	"net/http"

	"github.com/ZaguanLabs/medlai"
	"github.com/rs/zerolog"
)

// ChainConfig selects which providers NewChain builds. Paid providers are
// included only when their credentials are set.
type ChainConfig struct {
	GoogleAPIKey string
	GoogleURL    string

	DeepLAPIKey string
	DeepLURL    string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	LibreMirrors []string
	LibreAPIKey  string
	DisableLibre bool

	Dictionary *Dictionary // default: DefaultDictionary()

	HTTPClient *http.Client
	Retry      *medlai.RetryConfig
	Logger     zerolog.Logger
}

// NewChain builds the ordered provider chain: configured paid APIs (Google,
// DeepL, OpenAI), LibreTranslate mirrors, the phrase dictionary and finally
// the suffix terminal.
func NewChain(cfg ChainConfig) []medlai.Provider {
	var chain []medlai.Provider

	if cfg.GoogleAPIKey != "" {
		chain = append(chain, NewGoogleProvider(GoogleConfig{
			APIKey:     cfg.GoogleAPIKey,
			BaseURL:    cfg.GoogleURL,
			HTTPClient: cfg.HTTPClient,
			Retry:      cfg.Retry,
		}))
	}

	if cfg.DeepLAPIKey != "" {
		chain = append(chain, NewDeepLProvider(DeepLConfig{
			APIKey:     cfg.DeepLAPIKey,
			BaseURL:    cfg.DeepLURL,
			HTTPClient: cfg.HTTPClient,
			Retry:      cfg.Retry,
		}))
	}

	if cfg.OpenAIAPIKey != "" {
		retry := medlai.DefaultRetryConfig()
		if cfg.Retry != nil {
			retry = *cfg.Retry
		}
		chain = append(chain, medlai.NewRetryableProvider(NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}), retry))
	}

	if !cfg.DisableLibre {
		chain = append(chain, NewLibreProvider(LibreConfig{
			Mirrors:    cfg.LibreMirrors,
			APIKey:     cfg.LibreAPIKey,
			HTTPClient: cfg.HTTPClient,
			Retry:      cfg.Retry,
			Logger:     cfg.Logger,
		}))
	}

	dict := cfg.Dictionary
	if dict == nil {
		dict = DefaultDictionary()
	}
	chain = append(chain, dict, NewSuffixProvider())

	return chain
}

// Names returns the provider names of a chain in order.
func Names(chain []medlai.Provider) []string {
	names := make([]string, len(chain))
	for i, p := range chain {
		names[i] = p.Name()
	}
	return names
}
