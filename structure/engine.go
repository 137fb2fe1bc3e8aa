// Package structure turns raw discharge text, JSON or markup into a
// medlai.DischargeRecord.
package structure

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/ZaguanLabs/medlai"
)

// Input formats reported in DischargeRecord.InputFormat.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatXML      = "xml"
	FormatHTML     = "html"
	FormatEnvelope = "envelope"
)

// DefaultMaxFallbackSentences caps the sentences kept when no section could
// be recognised.
const DefaultMaxFallbackSentences = 10

var _ medlai.Structurer = (*Engine)(nil)

// Engine structures discharge input. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	logger       zerolog.Logger
	now          func() time.Time
	maxSentences int
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report recovered input errors.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the clock used for DischargeRecord.ParsedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMaxFallbackSentences sets how many sentences the fallback keeps.
func WithMaxFallbackSentences(n int) Option {
	return func(e *Engine) {
		e.maxSentences = n
	}
}

// NewEngine creates a structuring engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:       zerolog.Nop(),
		now:          time.Now,
		maxSentences: DefaultMaxFallbackSentences,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxSentences <= 0 {
		e.maxSentences = DefaultMaxFallbackSentences
	}
	return e
}

// Structure parses raw input. It never fails: malformed JSON or markup is
// parsed as plain text. Parsing the same input twice yields identical
// records apart from ParsedAt.
func (e *Engine) Structure(raw string) *medlai.DischargeRecord {
	return e.structure(raw, true)
}

// StructureObject structures an already decoded JSON object.
func (e *Engine) StructureObject(obj map[string]any) *medlai.DischargeRecord {
	rec := medlai.NewDischargeRecord("")
	rec.ParsedAt = e.now().UTC()
	rec.InputFormat = FormatJSON

	leaves := e.fromObject(rec, obj)
	rec.Source = leaves.values()
	e.finish(rec, leaves.lines(), leaves.values())
	return rec
}

func (e *Engine) structure(raw string, allowEnvelope bool) *medlai.DischargeRecord {
	text := strings.TrimSpace(norm.NFKC.String(raw))

	if allowEnvelope {
		if env, ok := medlai.DecodeEnvelope(text); ok {
			rec := e.structure(env.Data.Original, false)
			rec.InputFormat = FormatEnvelope
			return rec
		}
	}

	rec := medlai.NewDischargeRecord(text)
	rec.ParsedAt = e.now().UTC()
	rec.InputFormat = FormatText

	if text == "" {
		return rec
	}

	sweep, fallback, parsed := text, text, false
	switch {
	case looksLikeJSON(text):
		var leaves jsonLeaves
		if leaves, parsed = e.parseJSON(rec, text); parsed {
			sweep, fallback = leaves.lines(), leaves.values()
		}
	case looksLikeMarkup(text):
		var plain string
		if plain, parsed = e.parseMarkup(rec, text); parsed {
			sweep, fallback = plain, plain
		}
	}

	if !parsed {
		rec.InputFormat = FormatText
		e.parseText(rec, text)
	}

	e.finish(rec, sweep, fallback)
	return rec
}

// finish applies the sentence fallback, the extraction sweeps and the
// completeness score.
func (e *Engine) finish(rec *medlai.DischargeRecord, sweep, fallback string) {
	if rec.Empty() {
		e.fallback(rec, fallback)
	}
	enrich(rec, sweep)
	rec.Completeness = completeness(rec)
}

func (e *Engine) fallback(rec *medlai.DischargeRecord, text string) {
	kept := 0
	for _, line := range strings.Split(text, "\n") {
		for _, s := range splitSentences(line) {
			if kept >= e.maxSentences {
				return
			}
			if utf8.RuneCountInString(s) <= 10 || !hasWord(s) {
				continue
			}
			before := len(rec.Sections[medlai.Instructions])
			rec.Sections[medlai.Instructions] = addItem(rec.Sections[medlai.Instructions], capitalize(s))
			if len(rec.Sections[medlai.Instructions]) != before {
				kept++
			}
		}
	}
	if kept > 0 {
		e.logger.Debug().Int("sentences", kept).Msg("no sections recognised, using sentence fallback")
	}
}

// completeness is the share of primary categories holding at least one item.
func completeness(rec *medlai.DischargeRecord) float64 {
	filled := 0
	for _, c := range medlai.PrimaryCategories {
		if len(rec.Sections[c]) > 0 {
			filled++
		}
	}
	return float64(filled) / float64(len(medlai.PrimaryCategories))
}

func looksLikeJSON(text string) bool {
	return strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[")
}

func looksLikeMarkup(text string) bool {
	return strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">")
}
