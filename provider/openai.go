package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/medlai"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return medlai.ServiceOpenAI }

// Translate translates one discharge text using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	user, _ := json.Marshal(map[string]string{"text": req.Text})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: string(user)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &medlai.ProviderError{
			Provider:  p.Name(),
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &medlai.ProviderError{
			Provider: p.Name(),
			Message:  "no response from OpenAI",
		}
	}

	translated, err := p.parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &medlai.TranslationResult{
		TranslatedText: translated,
		Confidence:     lengthConfidence(req.Text, translated, 0.9, 0.85),
		ServiceUsed:    p.Name(),
		OriginalText:   req.Text,
	}, nil
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "en"
	}

	sourceName := medlai.GetLanguageName(sourceLang)
	targetName := medlai.GetLanguageName(req.TargetLang)

	return fmt.Sprintf(`# Role
You translate hospital discharge instructions from %s into %s for patients and their families.

# Rules
- Keep the meaning exact. Do not add, drop or soften any instruction, warning or number.
- Keep drug names, doses, units and times exactly as written (e.g. "500mg", "every 8 hours" keeps the 8).
- Use plain words a patient understands. Avoid clinical jargon when a common word exists.
- Do not give medical advice and do not answer questions found in the text.

# Format
Return a valid JSON object with a single key "translation" holding the translated string.
Example: { "translation": "..." }
Do NOT wrap it in Markdown code blocks.`, sourceName, targetName)
}

func (p *OpenAIProvider) parseResponse(content string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return "", &medlai.ProviderError{
			Provider: p.Name(),
			Message:  "invalid response format from OpenAI",
			Cause:    err,
		}
	}

	if s, ok := obj["translation"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), nil
	}

	// Fallback: single string value under any key
	if len(obj) == 1 {
		for _, v := range obj {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), nil
			}
		}
	}

	return "", &medlai.ProviderError{
		Provider: p.Name(),
		Message:  "no translation in OpenAI response",
	}
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"connection refused",
		"connection reset",
		"temporary",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

var _ Provider = (*OpenAIProvider)(nil)
