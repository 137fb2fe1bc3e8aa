package provider

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/ZaguanLabs/medlai"
)

// Dictionary translates English text with a static phrase table. Phrases are
// matched case-insensitively on word boundaries in a single left-to-right pass
// over the source, and at each position the longest phrase wins. Text that
// matches nothing is an error so the chain can move on.
type Dictionary struct {
	tables map[string]*phraseTable
}

type phraseTable struct {
	phrases map[string]string
	pattern *regexp.Regexp
}

var (
	defaultDictionaryOnce sync.Once
	defaultDictionary     *Dictionary
)

// DefaultDictionary returns the built-in medical phrase dictionary.
func DefaultDictionary() *Dictionary {
	defaultDictionaryOnce.Do(func() {
		defaultDictionary = NewDictionary(defaultPhrases)
	})
	return defaultDictionary
}

// NewDictionary builds a dictionary from English phrase tables keyed by
// target language.
func NewDictionary(tables map[string]map[string]string) *Dictionary {
	d := &Dictionary{tables: make(map[string]*phraseTable, len(tables))}
	for lang, entries := range tables {
		if t := newPhraseTable(entries); t != nil {
			d.tables[medlai.BaseLanguage(lang)] = t
		}
	}
	return d
}

func newPhraseTable(entries map[string]string) *phraseTable {
	phrases := make(map[string]string, len(entries))
	for src, dst := range entries {
		key := phraseKey(src)
		if key == "" || strings.TrimSpace(dst) == "" {
			continue
		}
		phrases[key] = dst
	}
	if len(phrases) == 0 {
		return nil
	}

	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	alts := make([]string, len(keys))
	for i, k := range keys {
		words := strings.Fields(k)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}

	return &phraseTable{
		phrases: phrases,
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`),
	}
}

// Name implements Provider.
func (d *Dictionary) Name() string { return medlai.ServiceDictionary }

// Languages returns the target languages the dictionary covers, sorted.
func (d *Dictionary) Languages() []string {
	langs := make([]string, 0, len(d.tables))
	for l := range d.tables {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Covers reports whether the dictionary has a table for the target language.
func (d *Dictionary) Covers(lang string) bool {
	_, ok := d.tables[medlai.BaseLanguage(lang)]
	return ok
}

// Translate implements Provider.
func (d *Dictionary) Translate(ctx context.Context, req TranslateRequest) (*medlai.TranslationResult, error) {
	if src := medlai.BaseLanguage(req.SourceLang); src != "" && src != "en" {
		return nil, &medlai.ProviderError{Provider: d.Name(), Message: "dictionary source language must be English, got " + req.SourceLang}
	}

	table, ok := d.tables[medlai.BaseLanguage(req.TargetLang)]
	if !ok {
		return nil, &medlai.ProviderError{Provider: d.Name(), Message: "no dictionary for " + req.TargetLang}
	}

	translated, covered := table.replace(req.Text)
	if covered == 0 {
		return nil, &medlai.ProviderError{Provider: d.Name(), Message: "no dictionary entries matched"}
	}

	coverage := float64(covered) / float64(letterCount(req.Text))
	if coverage > 1 {
		coverage = 1
	}

	return &medlai.TranslationResult{
		TranslatedText: translated,
		Confidence:     0.6 + 0.15*coverage,
		ServiceUsed:    d.Name(),
		OriginalText:   req.Text,
	}, nil
}

// replace substitutes every matched phrase and returns how many non-space
// runes of the source were covered.
func (t *phraseTable) replace(text string) (string, int) {
	covered := 0
	out := t.pattern.ReplaceAllStringFunc(text, func(match string) string {
		dst, ok := t.phrases[phraseKey(match)]
		if !ok {
			return match
		}
		covered += letterCount(match)
		if r, _ := utf8.DecodeRuneInString(match); unicode.IsUpper(r) {
			dst = upperFirst(dst)
		}
		return dst
	})
	return out, covered
}

func phraseKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var _ Provider = (*Dictionary)(nil)
