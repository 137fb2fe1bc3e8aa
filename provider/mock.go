package provider

import (
	"context"
	"sync"
	"time"

	"github.com/ZaguanLabs/medlai"
)

// MockProvider is a mock translation provider for testing.
type MockProvider struct {
	ProviderName string            // Name reported to the resolver (default "mock")
	Translations map[string]string // Map of source text to translation
	Confidence   float64           // Confidence of every result (default 0.9)
	Err          error             // Returned instead of a translation when set
	Delay        time.Duration     // Wait before answering; honours ctx

	mu          sync.Mutex
	callCount   int
	lastRequest *TranslateRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		ProviderName: "mock",
		Confidence:   0.9,
		Translations: map[string]string{
			"Hello":                       "Hola",
			"World":                       "Mundo",
			"Take medication twice daily": "Tome el medicamento dos veces al día",
			"Rest at home":                "Descanse en casa",
		},
	}
}

// Name implements Provider.
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Translate returns mock translations. Unknown text comes back bracketed.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	m.mu.Lock()
	m.callCount++
	m.lastRequest = &req
	m.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}

	translated, ok := m.Translations[req.Text]
	if !ok {
		translated = "[" + req.Text + "]"
	}

	return &medlai.TranslationResult{
		TranslatedText: translated,
		Confidence:     m.Confidence,
		ServiceUsed:    m.Name(),
		OriginalText:   req.Text,
	}, nil
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
