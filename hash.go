package medlai

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// HashTexts computes the SHA-256 hash of the JSON serialization of texts.
// Order is significant.
func HashTexts(texts []string) string {
	data, _ := json.Marshal(texts)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and the language pair.
func CacheKey(hash, sourceLang, targetLang string) string {
	return hash + ":" + normalizeBaseLang(sourceLang) + ":" + normalizeBaseLang(targetLang)
}

// BatchCacheKey generates a cache key for an ordered list of texts.
func BatchCacheKey(texts []string, sourceLang, targetLang string) string {
	return "batch:" + CacheKey(HashTexts(texts), sourceLang, targetLang)
}
