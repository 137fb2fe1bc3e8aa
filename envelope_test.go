package medlai

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	translated := &TranslatedRecord{
		Language:   "es",
		Categories: map[Category][]string{Medications: {"Tome el medicamento"}},
	}
	hospital := &HospitalBranding{Name: "General Hospital", Phone: "555-0100"}

	data, err := EncodeEnvelope("Medications: take medication", translated, hospital)
	if err != nil {
		t.Fatalf("EncodeEnvelope failed: %v", err)
	}

	env, ok := DecodeEnvelope(string(data))
	if !ok {
		t.Fatalf("DecodeEnvelope rejected %s", data)
	}
	if env.Data.Original != "Medications: take medication" {
		t.Errorf("Unexpected original: %q", env.Data.Original)
	}
	if env.Data.Language != "es" || env.Hospital == nil || env.Hospital.Name != "General Hospital" {
		t.Errorf("Unexpected envelope: %+v", env)
	}

	var cats map[Category][]string
	if err := json.Unmarshal(env.Data.Translated, &cats); err != nil {
		t.Fatal(err)
	}
	if cats[Medications][0] != "Tome el medicamento" {
		t.Errorf("Unexpected translated payload: %v", cats)
	}
}

func TestEnvelope_WithoutTranslation(t *testing.T) {
	data, err := EncodeEnvelope("Diagnosis: flu", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "translated") || strings.Contains(string(data), "hospital") {
		t.Errorf("Expected optional fields to be omitted, got %s", data)
	}
}

func TestDecodeEnvelope_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain text", "Diagnosis: flu"},
		{"invalid json", "{not json"},
		{"other type", `{"type":"invoice","data":{"original":"x"}}`},
		{"missing original", `{"type":"medical_discharge","data":{"original":"  "}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := DecodeEnvelope(tt.raw); ok {
				t.Errorf("DecodeEnvelope(%q) should be rejected", tt.raw)
			}
		})
	}
}
