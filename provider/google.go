package provider

import (
	"context"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZaguanLabs/medlai"
)

const defaultGoogleURL = "https://translation.googleapis.com/language/translate/v2"

// GoogleProvider calls the Google Cloud Translation v2 REST API.
type GoogleProvider struct {
	apiKey    string
	baseURL   string
	transport *httpTransport
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	APIKey     string              // Cloud Translation API key
	BaseURL    string              // Endpoint override (optional, used in tests)
	HTTPClient *http.Client        // Custom HTTP client (optional)
	Retry      *medlai.RetryConfig // Retry policy (default: medlai.DefaultRetryConfig)
}

type googleRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage,omitempty"`
		} `json:"translations"`
	} `json:"data"`
}

// NewGoogleProvider creates a new Google Cloud Translation provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleURL
	}
	return &GoogleProvider{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		transport: newHTTPTransport(medlai.ServiceGoogle, cfg.HTTPClient, cfg.Retry),
	}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return medlai.ServiceGoogle }

// Translate implements Provider.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	endpoint := p.baseURL + "?key=" + url.QueryEscape(p.apiKey)

	var resp googleResponse
	err := p.transport.postJSON(ctx, endpoint, nil, googleRequest{
		Q:      []string{req.Text},
		Source: medlai.BaseLanguage(req.SourceLang),
		Target: googleLanguage(req.TargetLang),
		Format: "text",
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Data.Translations) == 0 {
		return nil, &medlai.ProviderError{Provider: p.Name(), Message: "no translations in response"}
	}
	translated := strings.TrimSpace(html.UnescapeString(resp.Data.Translations[0].TranslatedText))
	if translated == "" {
		return nil, &medlai.ProviderError{Provider: p.Name(), Message: "empty translation"}
	}

	return &medlai.TranslationResult{
		TranslatedText: translated,
		Confidence:     lengthConfidence(req.Text, translated, 0.95, 0.85),
		ServiceUsed:    p.Name(),
		OriginalText:   req.Text,
	}, nil
}

// googleLanguage maps a locale to the code Google expects. Chinese needs the
// script suffix; everything else is the base language.
func googleLanguage(lang string) string {
	if medlai.BaseLanguage(lang) == "zh" {
		return "zh-CN"
	}
	return medlai.BaseLanguage(lang)
}

var _ Provider = (*GoogleProvider)(nil)
