package provider

import (
	"context"

	"github.com/ZaguanLabs/medlai"
)

// SuffixProvider is the terminal fallback. It never fails: the text is
// returned untranslated with the target language appended, so the patient
// can see that no translation was available.
type SuffixProvider struct{}

// NewSuffixProvider creates the terminal fallback provider.
func NewSuffixProvider() *SuffixProvider {
	return &SuffixProvider{}
}

// Name implements Provider.
func (p *SuffixProvider) Name() string { return medlai.ServiceSuffix }

// Translate implements Provider.
func (p *SuffixProvider) Translate(_ context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	confidence := 0.1
	if medlai.IsSupported(req.TargetLang) {
		confidence = 0.3
	}
	return &medlai.TranslationResult{
		TranslatedText: req.Text + " (in " + req.TargetLang + ")",
		Confidence:     confidence,
		ServiceUsed:    p.Name(),
		OriginalText:   req.Text,
		Unavailable:    true,
	}, nil
}

var _ Provider = (*SuffixProvider)(nil)
