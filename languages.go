package medlai

import "strings"

// SupportedLanguages lists the language codes patients can choose from,
// in presentation order.
var SupportedLanguages = []string{
	"en", "es", "fr", "de", "it", "pt", "ru",
	"zh", "ja", "ko", "ar", "hi", "th", "vi",
}

// LanguageNames maps supported codes to human-readable names.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"zh": "Chinese (Simplified)",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
	"th": "Thai",
	"vi": "Vietnamese",
}

// NativeLanguageNames maps supported codes to the language's own name, for
// language pickers.
var NativeLanguageNames = map[string]string{
	"en": "English",
	"es": "Español",
	"fr": "Français",
	"de": "Deutsch",
	"it": "Italiano",
	"pt": "Português",
	"ru": "Русский",
	"zh": "中文",
	"ja": "日本語",
	"ko": "한국어",
	"ar": "العربية",
	"hi": "हिन्दी",
	"th": "ไทย",
	"vi": "Tiếng Việt",
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[normalizeBaseLang(langCode)]; ok {
		return name
	}
	return langCode
}

// IsSupported reports whether the base language of langCode is in
// SupportedLanguages.
func IsSupported(langCode string) bool {
	_, ok := LanguageNames[normalizeBaseLang(langCode)]
	return ok
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	if RTLLanguages[normalizeBaseLang(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// NormalizeLocale converts a language code to the standard format (e.g., "es-ES" → "es_ES").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// BaseLanguage extracts the lower-case base language code
// (e.g., "es" from "es_MX" or "ES-mx").
func BaseLanguage(langCode string) string {
	return normalizeBaseLang(langCode)
}

// SameLanguage reports whether two codes share a base language.
func SameLanguage(a, b string) bool {
	return normalizeBaseLang(a) == normalizeBaseLang(b)
}

func normalizeBaseLang(lang string) string {
	lang = strings.TrimSpace(NormalizeLocale(lang))
	if idx := strings.Index(lang, "_"); idx >= 0 {
		lang = lang[:idx]
	}
	return strings.ToLower(lang)
}
