package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/medlai"
)

const (
	defaultDeepLURL     = "https://api.deepl.com"
	defaultDeepLFreeURL = "https://api-free.deepl.com"
)

// deeplTargets maps base languages to DeepL target codes. Languages DeepL
// does not offer are rejected before any request is made.
var deeplTargets = map[string]string{
	"en": "EN-US",
	"es": "ES",
	"fr": "FR",
	"de": "DE",
	"it": "IT",
	"pt": "PT-PT",
	"ru": "RU",
	"zh": "ZH-HANS",
	"ja": "JA",
	"ko": "KO",
	"ar": "AR",
}

// DeepLProvider calls the DeepL v2 translate endpoint.
type DeepLProvider struct {
	apiKey    string
	baseURL   string
	transport *httpTransport
}

// DeepLConfig holds configuration for the DeepL provider.
type DeepLConfig struct {
	APIKey     string              // DeepL authentication key
	BaseURL    string              // API host (default picked from the key type)
	HTTPClient *http.Client        // Custom HTTP client (optional)
	Retry      *medlai.RetryConfig // Retry policy (default: medlai.DefaultRetryConfig)
}

type deeplRequest struct {
	Text       []string `json:"text"`
	SourceLang string   `json:"source_lang,omitempty"`
	TargetLang string   `json:"target_lang"`
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// NewDeepLProvider creates a new DeepL provider. Keys ending in ":fx" belong
// to the free API host.
func NewDeepLProvider(cfg DeepLConfig) *DeepLProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDeepLURL
		if strings.HasSuffix(cfg.APIKey, ":fx") {
			baseURL = defaultDeepLFreeURL
		}
	}
	return &DeepLProvider{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: newHTTPTransport(medlai.ServiceDeepL, cfg.HTTPClient, cfg.Retry),
	}
}

// Name implements Provider.
func (p *DeepLProvider) Name() string { return medlai.ServiceDeepL }

// Translate implements Provider.
func (p *DeepLProvider) Translate(ctx context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	target, ok := deeplTargets[medlai.BaseLanguage(req.TargetLang)]
	if !ok {
		return nil, &medlai.ProviderError{Provider: p.Name(), Message: "unsupported target language " + req.TargetLang}
	}

	header := http.Header{}
	header.Set("Authorization", "DeepL-Auth-Key "+p.apiKey)

	var resp deeplResponse
	err := p.transport.postJSON(ctx, p.baseURL+"/v2/translate", header, deeplRequest{
		Text:       []string{req.Text},
		SourceLang: strings.ToUpper(medlai.BaseLanguage(req.SourceLang)),
		TargetLang: target,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Translations) == 0 || strings.TrimSpace(resp.Translations[0].Text) == "" {
		return nil, &medlai.ProviderError{Provider: p.Name(), Message: "no translations in response"}
	}
	translated := strings.TrimSpace(resp.Translations[0].Text)

	return &medlai.TranslationResult{
		TranslatedText: translated,
		Confidence:     lengthConfidence(req.Text, translated, 0.95, 0.85),
		ServiceUsed:    p.Name(),
		OriginalText:   req.Text,
	}, nil
}

var _ Provider = (*DeepLProvider)(nil)
