package structure

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/patterns"
)

// ignoredTags never contribute visible text.
var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
	"svg":      true,
}

// inlineTags continue the current line in the visible-text rendering; every
// other element, including unknown XML elements, ends it.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "em": true, "font": true, "i": true,
	"label": true, "mark": true, "small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "u": true,
}

// parseMarkup parses XML or HTML. Documents with category elements are
// mapped by element name; anything else is reduced to its visible text and
// parsed as unstructured text.
func (e *Engine) parseMarkup(rec *medlai.DischargeRecord, text string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		e.logger.Debug().
			Err(&medlai.InputFormatError{Format: FormatXML, Cause: err}).
			Msg("falling back to text parsing")
		return "", false
	}

	plain := visibleText(doc)

	if mapCategoryTags(rec, doc) {
		rec.InputFormat = FormatXML
		mapDetailTags(rec, doc)
		return plain, true
	}

	rec.InputFormat = FormatHTML
	e.parseText(rec, plain)
	return plain, true
}

// mapCategoryTags fills categories from item and container elements and
// reports whether any category element was present.
func mapCategoryTags(rec *medlai.DischargeRecord, doc *goquery.Document) bool {
	found := false

	for _, c := range medlai.Categories {
		itemSelector := strings.Join(patterns.CategoryTags[c], ", ")
		items := doc.Find(itemSelector)

		items.Each(func(_ int, sel *goquery.Selection) {
			found = true
			if c == medlai.Medications {
				if med := composeMedicationTag(sel); med != "" {
					rec.Sections[c] = addItem(rec.Sections[c], med)
					return
				}
			}
			text := cleanFragment(sel.Text())
			if text != "" {
				rec.Sections[c] = addItem(rec.Sections[c], capitalize(text))
			}
		})

		doc.Find(strings.Join(patterns.ContainerTags[c], ", ")).Each(func(_ int, sel *goquery.Selection) {
			found = true
			if sel.Find(itemSelector).Length() > 0 {
				return
			}
			addSection(rec, c, blockText(sel))
		})
	}

	return found
}

// composeMedicationTag joins the child elements of a medication element.
func composeMedicationTag(sel *goquery.Selection) string {
	var parts []string
	for _, tag := range patterns.MedicationChildTags {
		if s := collapseSpaces(sel.ChildrenFiltered(tag).First().Text()); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return capitalize(strings.Join(parts, " "))
}

func mapDetailTags(rec *medlai.DischargeRecord, doc *goquery.Document) {
	first := func(tag string) string {
		return collapseSpaces(doc.Find(tag).First().Text())
	}

	for _, tag := range sortedTagKeys(patterns.PatientTags) {
		s := first(tag)
		if s == "" {
			continue
		}
		switch patterns.PatientTags[tag] {
		case "name":
			rec.Patient.Name = firstNonEmpty(rec.Patient.Name, s)
		case "dob":
			rec.Patient.DOB = firstNonEmpty(rec.Patient.DOB, s)
		case "mrn":
			rec.Patient.MRN = firstNonEmpty(rec.Patient.MRN, s)
		case "age":
			rec.Patient.Age = firstNonEmpty(rec.Patient.Age, s)
		case "gender":
			rec.Patient.Gender = firstNonEmpty(rec.Patient.Gender, normalizeGender(s))
		}
	}

	for _, tag := range sortedTagKeys(patterns.FacilityTags) {
		s := first(tag)
		if s == "" {
			continue
		}
		switch patterns.FacilityTags[tag] {
		case "name":
			rec.Facility.Name = firstNonEmpty(rec.Facility.Name, s)
		case "address":
			rec.Facility.Address = firstNonEmpty(rec.Facility.Address, s)
		case "phone":
			rec.Facility.Phone = firstNonEmpty(rec.Facility.Phone, s)
		}
	}

	for _, tag := range sortedTagKeys(patterns.DateTags) {
		s := first(tag)
		if s == "" {
			continue
		}
		if patterns.DateTags[tag] == "discharge" {
			rec.DischargeDate = firstNonEmpty(rec.DischargeDate, s)
		} else {
			rec.AdmissionDate = firstNonEmpty(rec.AdmissionDate, s)
		}
	}

	doc.Find(strings.Join(patterns.AllergyKeys, ", ")).Each(func(_ int, sel *goquery.Selection) {
		for _, a := range splitAllergies(sel.Text()) {
			rec.Allergies = appendUnique(rec.Allergies, a)
		}
	})
}

// visibleText renders the document as text, one line per block element,
// skipping non-visible elements.
func visibleText(doc *goquery.Document) string {
	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}
	return normalizeLines(b.String())
}

func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return normalizeLines(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && ignoredTags[strings.ToLower(n.Data)] {
		return
	}

	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == html.ElementNode && !inlineTags[strings.ToLower(n.Data)] {
		b.WriteString("\n")
	}
}

func normalizeLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapseSpaces(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func sortedTagKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
