package structure

import (
	"strings"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/patterns"
)

// parseText runs the section cursor over unstructured text. Lines before the
// first header are classified sentence by sentence; after a header, lines
// are buffered and flushed into the current category when the next header
// or the end of input is reached. Metadata sections and label lines are left
// to the extraction sweeps.
func (e *Engine) parseText(rec *medlai.DischargeRecord, text string) {
	var (
		cursor    = medlai.Instructions
		buf       []string
		sawHeader bool
		skipping  bool
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		body := strings.Join(buf, "\n")
		buf = buf[:0]

		switch {
		case skipping:
		case !sawHeader:
			classifySentences(rec, body)
		default:
			addSection(rec, cursor, body)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rule, rest, ok := patterns.MatchSection(line); ok {
			flush()
			sawHeader = true
			skipping = rule.Metadata
			if !rule.Metadata {
				cursor = rule.Category
			}
			if rest != "" {
				buf = append(buf, rest)
			}
			continue
		}

		if patterns.MetadataLine.MatchString(line) {
			continue
		}

		buf = append(buf, line)
	}

	flush()
}

// classifySentences assigns each header-less sentence to a category through
// the content rules.
func classifySentences(rec *medlai.DischargeRecord, body string) {
	for _, sentence := range splitLines(body) {
		addSection(rec, patterns.ClassifySentence(sentence), sentence)
	}
}
