// Package provider implements the translation methods the resolver chains
// together: paid remote APIs, free LibreTranslate mirrors, a static phrase
// dictionary and the language-tag suffix terminal.
package provider

import (
	"unicode/utf8"

	"github.com/ZaguanLabs/medlai"
)

// Provider is an alias to the main package interface for convenience.
type Provider = medlai.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = medlai.TranslateRequest

// lengthConfidence scores a remote translation by comparing its length with
// the source. Output more than twice as long or less than half as long as the
// input gets the low score.
func lengthConfidence(source, translated string, high, low float64) float64 {
	src := utf8.RuneCountInString(source)
	dst := utf8.RuneCountInString(translated)
	if src == 0 || dst == 0 {
		return low
	}
	ratio := float64(dst) / float64(src)
	if ratio > 2 || ratio < 0.5 {
		return low
	}
	return high
}
