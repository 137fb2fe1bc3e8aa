package medlai

import (
	"encoding/json"
	"strings"
)

// EnvelopeType marks JSON payloads produced by the QR encoding step.
const EnvelopeType = "medical_discharge"

// Envelope is the JSON document carried in discharge QR codes.
type Envelope struct {
	Type     string            `json:"type"`
	Data     EnvelopeData      `json:"data"`
	Hospital *HospitalBranding `json:"hospital,omitempty"`
}

// EnvelopeData holds the original text and, optionally, its translation.
type EnvelopeData struct {
	Original   string          `json:"original"`
	Translated json.RawMessage `json:"translated,omitempty"`
	Language   string          `json:"language,omitempty"`
}

// EncodeEnvelope builds the QR payload for a processed submission.
// translated may be nil.
func EncodeEnvelope(original string, translated *TranslatedRecord, hospital *HospitalBranding) ([]byte, error) {
	env := Envelope{
		Type:     EnvelopeType,
		Data:     EnvelopeData{Original: original},
		Hospital: hospital,
	}

	if translated != nil {
		data, err := json.Marshal(translated.Categories)
		if err != nil {
			return nil, err
		}
		env.Data.Translated = data
		env.Data.Language = translated.Language
	}

	return json.Marshal(env)
}

// DecodeEnvelope parses raw as an Envelope. The boolean is false when raw is
// not a discharge envelope or carries no original text.
func DecodeEnvelope(raw string) (*Envelope, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var env Envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, false
	}
	if env.Type != EnvelopeType || strings.TrimSpace(env.Data.Original) == "" {
		return nil, false
	}
	return &env, true
}
