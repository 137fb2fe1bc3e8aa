package medlai

import "testing"

func TestHashText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple text",
			input:    "Hello World",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:     "text with leading whitespace",
			input:    "  Hello World",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:     "text with trailing whitespace",
			input:    "Hello World  ",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:     "text with both whitespace",
			input:    "  Hello World  ",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:  "empty string",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HashText(tt.input)
			if tt.expected != "" && result != tt.expected {
				t.Errorf("HashText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			// Verify hash length (SHA-256 = 64 hex chars)
			if len(result) != 64 {
				t.Errorf("HashText(%q) length = %d, want 64", tt.input, len(result))
			}
		})
	}
}

func TestHashTexts_OrderMatters(t *testing.T) {
	a := HashTexts([]string{"Take aspirin", "Rest"})
	b := HashTexts([]string{"Rest", "Take aspirin"})
	c := HashTexts([]string{"Take aspirin", "Rest"})

	if a == b {
		t.Error("different order should give different hashes")
	}
	if a != c {
		t.Error("same list should give the same hash")
	}

	// Joining must not collide with a single element containing the separator.
	if HashTexts([]string{"a", "b"}) == HashTexts([]string{"a,b"}) {
		t.Error("element boundaries must be part of the hash")
	}
}

func TestCacheKey(t *testing.T) {
	hash := "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e"

	result := CacheKey(hash, "en", "es_ES")
	expected := "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e:en:es"

	if result != expected {
		t.Errorf("CacheKey() = %q, want %q", result, expected)
	}
}

func TestBatchCacheKey(t *testing.T) {
	texts := []string{"Rest", "Drink fluids"}

	result := BatchCacheKey(texts, "en", "fr")
	expected := "batch:" + HashTexts(texts) + ":en:fr"

	if result != expected {
		t.Errorf("BatchCacheKey() = %q, want %q", result, expected)
	}

	if result == CacheKey(HashTexts(texts), "en", "fr") {
		t.Error("batch keys must not collide with single-text keys")
	}
}
