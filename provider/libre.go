package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/medlai"
	"github.com/rs/zerolog"
)

// DefaultLibreMirrors are the public LibreTranslate hosts tried in order.
var DefaultLibreMirrors = []string{
	"https://libretranslate.com",
	"https://translate.argosopentech.com",
	"https://libretranslate.de",
}

// LibreProvider calls LibreTranslate, moving to the next mirror until one
// answers with a 2xx and a non-error payload.
type LibreProvider struct {
	mirrors   []string
	apiKey    string
	transport *httpTransport
	logger    zerolog.Logger
}

// LibreConfig holds configuration for the LibreTranslate provider.
type LibreConfig struct {
	Mirrors    []string            // Hosts to try in order (default: DefaultLibreMirrors)
	APIKey     string              // Optional key for hosts that require one
	HTTPClient *http.Client        // Custom HTTP client (optional)
	Retry      *medlai.RetryConfig // Retry policy per mirror
	Logger     zerolog.Logger
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// NewLibreProvider creates a new LibreTranslate provider.
func NewLibreProvider(cfg LibreConfig) *LibreProvider {
	mirrors := cfg.Mirrors
	if len(mirrors) == 0 {
		mirrors = DefaultLibreMirrors
	}
	cleaned := make([]string, 0, len(mirrors))
	for _, m := range mirrors {
		if m = strings.TrimRight(strings.TrimSpace(m), "/"); m != "" {
			cleaned = append(cleaned, m)
		}
	}
	return &LibreProvider{
		mirrors:   cleaned,
		apiKey:    cfg.APIKey,
		transport: newHTTPTransport(medlai.ServiceLibre, cfg.HTTPClient, cfg.Retry),
		logger:    cfg.Logger,
	}
}

// Name implements Provider.
func (p *LibreProvider) Name() string { return medlai.ServiceLibre }

// Mirrors returns the hosts in the order they are tried.
func (p *LibreProvider) Mirrors() []string {
	return append([]string(nil), p.mirrors...)
}

// Translate implements Provider.
func (p *LibreProvider) Translate(ctx context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	payload := libreRequest{
		Q:      req.Text,
		Source: medlai.BaseLanguage(req.SourceLang),
		Target: medlai.BaseLanguage(req.TargetLang),
		Format: "text",
		APIKey: p.apiKey,
	}

	var errs []error
	for _, mirror := range p.mirrors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		translated, err := p.translateAt(ctx, mirror, payload)
		if err == nil {
			return &medlai.TranslationResult{
				TranslatedText: translated,
				Confidence:     lengthConfidence(req.Text, translated, 0.8, 0.7),
				ServiceUsed:    p.Name(),
				OriginalText:   req.Text,
			}, nil
		}

		p.logger.Debug().Str("mirror", mirror).Err(err).Msg("libretranslate mirror failed")
		errs = append(errs, err)
	}

	return nil, &medlai.ProviderError{
		Provider: p.Name(),
		Message:  "all mirrors failed",
		Cause:    errors.Join(errs...),
	}
}

func (p *LibreProvider) translateAt(ctx context.Context, mirror string, payload libreRequest) (string, error) {
	var resp libreResponse
	if err := p.transport.postJSON(ctx, mirror+"/translate", nil, payload, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", &medlai.ProviderError{Provider: p.Name(), Message: mirror + ": " + resp.Error}
	}
	translated := strings.TrimSpace(resp.TranslatedText)
	if translated == "" {
		return "", &medlai.ProviderError{Provider: p.Name(), Message: mirror + ": empty translation"}
	}
	return translated, nil
}

var _ Provider = (*LibreProvider)(nil)
