package structure

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/patterns"
)

// minItemLength is the shortest generic item kept by segmentation.
const minItemLength = 4

// duplicateSimilarity is the word-overlap ratio at which two items are
// considered the same.
const duplicateSimilarity = 0.8

// addSection segments body for category c and merges the items into rec.
func addSection(rec *medlai.DischargeRecord, c medlai.Category, body string) {
	var items []string
	if c == medlai.Medications {
		items = segmentMedications(body)
	} else {
		items = segmentItems(body)
	}
	for _, item := range items {
		rec.Sections[c] = addItem(rec.Sections[c], item)
	}
}

// segmentItems splits a non-medication section of free text into items.
// Fragments shorter than minItemLength are noise there and are dropped.
func segmentItems(body string) []string {
	return splitItems(body, minItemLength)
}

// segmentFieldItems splits a structured field value. Every fragment is kept
// so abbreviations like "CHF" survive.
func segmentFieldItems(value string) []string {
	return splitItems(value, 1)
}

func splitItems(body string, minLen int) []string {
	var items []string
	for _, sentence := range splitLines(body) {
		for _, frag := range patterns.ItemSplit.Split(sentence, -1) {
			frag = cleanFragment(frag)
			if utf8.RuneCountInString(frag) < minLen {
				continue
			}
			items = append(items, capitalize(frag))
		}
	}
	return items
}

// segmentMedications splits a medication section into normalised entries.
// Fragments that match no template are kept only when they carry a
// medication indicator. A bare schedule such as "twice daily" is joined to
// the entry before it only when a comma on the same line separates them and
// that entry has no schedule yet; otherwise it is dropped.
func segmentMedications(body string) []string {
	var items []string
	for _, sentence := range splitLines(body) {
		for _, entry := range patterns.MedicationSplit.Split(sentence, -1) {
			// joinable is the index of the item produced by the previous
			// clause of this entry, or -1.
			joinable := -1
			for _, frag := range patterns.ClauseSplit.Split(entry, -1) {
				frag = cleanFragment(frag)
				if frag == "" {
					continue
				}

				if item, ok := matchMedication(frag); ok {
					items = append(items, item)
					joinable = len(items) - 1
					continue
				}

				if patterns.HasMedicationIndicator(frag) {
					items = append(items, capitalize(frag))
					joinable = len(items) - 1
					continue
				}

				if joinable >= 0 && isSchedule(frag) && !patterns.FrequencyPattern.MatchString(items[joinable]) {
					items[joinable] += " " + frag
				}
				joinable = -1
			}
		}
	}
	return items
}

// isSchedule reports whether frag starts with a dosing schedule.
func isSchedule(frag string) bool {
	loc := patterns.FrequencyPattern.FindStringIndex(frag)
	return loc != nil && loc[0] == 0
}

type medPart struct {
	group int
	text  string
}

// matchMedication applies the medication templates in order and joins the
// captured parts into one normalised string.
func matchMedication(frag string) (string, bool) {
	for _, tpl := range patterns.MedicationTemplates {
		m := tpl.Pattern.FindStringSubmatch(frag)
		if m == nil {
			continue
		}

		var parts []medPart
		add := func(group int, text string) {
			if group > 0 && strings.TrimSpace(text) != "" {
				parts = append(parts, medPart{group: group, text: collapseSpaces(text)})
			}
		}

		add(tpl.Verb, groupAt(m, tpl.Verb))
		add(tpl.Drug, groupAt(m, tpl.Drug))
		if dose := groupAt(m, tpl.Dose); dose != "" {
			unit := groupAt(m, tpl.Unit)
			if patterns.MeasureUnits[strings.ToLower(unit)] {
				add(tpl.Dose, strings.ReplaceAll(dose, " ", "")+strings.ToLower(unit))
			} else {
				add(tpl.Dose, dose+" "+unit)
			}
		}
		add(tpl.Rest, trimPunctuation(groupAt(m, tpl.Rest)))

		sort.Slice(parts, func(i, j int) bool { return parts[i].group < parts[j].group })

		texts := make([]string, len(parts))
		for i, p := range parts {
			texts[i] = p.text
		}
		return capitalize(strings.Join(texts, " ")), true
	}
	return "", false
}

func groupAt(m []string, i int) string {
	if i <= 0 || i >= len(m) {
		return ""
	}
	return m[i]
}

// addItem appends item unless it duplicates an existing one. An existing item
// that is a substring of the new one is replaced in place.
func addItem(items []string, item string) []string {
	item = strings.TrimSpace(item)
	if item == "" {
		return items
	}

	lowered := strings.ToLower(item)
	for _, existing := range items {
		le := strings.ToLower(existing)
		if strings.Contains(le, lowered) || similarity(le, lowered) >= duplicateSimilarity {
			return items
		}
	}

	out := make([]string, 0, len(items)+1)
	placed := false
	for _, existing := range items {
		if strings.Contains(lowered, strings.ToLower(existing)) {
			if !placed {
				out = append(out, item)
				placed = true
			}
			continue
		}
		out = append(out, existing)
	}
	if !placed {
		out = append(out, item)
	}
	return out
}

// similarity is the number of shared words divided by the word count of the
// longer item.
func similarity(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	shared := 0
	for w := range wa {
		if wb[w] {
			shared++
		}
	}
	return float64(shared) / float64(max(len(wa), len(wb)))
}

func wordSet(s string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// splitLines splits body into lines and each line into sentences. List
// markers are removed first so "1." is not read as a sentence.
func splitLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		out = append(out, splitSentences(stripListMarker(line))...)
	}
	return out
}

func stripListMarker(s string) string {
	for {
		stripped := patterns.EnumerationPrefix.ReplaceAllString(patterns.BulletPrefix.ReplaceAllString(s, ""), "")
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// splitSentences splits text on terminal punctuation, keeping abbreviations
// attached to the following words. Terminators are dropped.
func splitSentences(text string) []string {
	var out []string
	var pending strings.Builder
	last := 0

	for _, loc := range patterns.SentenceSplit.FindAllStringIndex(text, -1) {
		piece := text[last:loc[0]]
		term := strings.TrimSpace(text[loc[0]:loc[1]])
		last = loc[1]

		if term == "." && loc[1] < len(text) && isAbbreviation(piece) {
			pending.WriteString(piece)
			pending.WriteString(". ")
			continue
		}

		if s := strings.TrimSpace(pending.String() + piece); s != "" {
			out = append(out, s)
		}
		pending.Reset()
	}

	if s := strings.TrimSpace(pending.String() + text[last:]); s != "" {
		out = append(out, s)
	}
	return out
}

func isAbbreviation(piece string) bool {
	fields := strings.Fields(piece)
	if len(fields) == 0 {
		return false
	}
	return patterns.Abbreviations[strings.ToLower(fields[len(fields)-1])]
}

// cleanFragment strips list markers, numbering and edge punctuation.
func cleanFragment(s string) string {
	return collapseSpaces(trimPunctuation(stripListMarker(strings.TrimSpace(s))))
}

func trimPunctuation(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ".,;:"))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func hasWord(s string) bool {
	return patterns.WordPattern.MatchString(s)
}
