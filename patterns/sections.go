// Package patterns holds the declarative rule tables used to recognise the
// parts of a discharge summary. Tables are ordered; where more than one rule
// can match, the first one wins.
package patterns

import (
	"regexp"
	"strings"

	"github.com/ZaguanLabs/medlai"
)

// SectionRule maps a header line to a category. Metadata rules mark sections
// whose body is handled by the extraction sweeps instead of a category.
type SectionRule struct {
	Category medlai.Category
	Metadata bool
	Pattern  *regexp.Regexp
}

// ContentRule assigns a header-less sentence to a category.
type ContentRule struct {
	Category medlai.Category
	Pattern  *regexp.Regexp
}

// header builds a header regexp. Group 1 holds any same-line content after
// the separator.
func header(alternatives ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*)?(?:\*\*|__)?(?:\d{1,2}[.)]\s*)?` +
		`(?:(?:discharge|primary|secondary|final|principal|admitting|admission|current|home|new|active|patient|post[- ]?operative)\s+)*` +
		`(?:` + strings.Join(alternatives, "|") + `)` +
		`(?:\s*\(s\))?(?:\*\*|__)?\s*(?:[:\-–—]\s*(?:\*\*|__)?\s*(.*))?$`)
}

// SectionHeaders is evaluated top to bottom against every line.
var SectionHeaders = []SectionRule{
	{Category: medlai.FollowUp, Pattern: header(
		`follow[- ]?up(?:\s+(?:appointments?|care|instructions|plan|visits?))?`,
		`appointments?`, `next (?:visit|appointment)s?`, `scheduled visits?`,
	)},
	{Category: medlai.ReturnReasons, Pattern: header(
		`return(?:\s+to\s+(?:the\s+)?(?:er|ed|emergency(?:\s+(?:room|department))?|hospital))?\s+(?:if|precautions|reasons?|when)`,
		`reasons? to return`, `warning signs?(?:\s+and\s+symptoms)?`, `when to (?:call(?:\s+(?:your\s+)?doctor)?|seek (?:help|care)|return)`,
		`red flags?`, `danger signs?`, `emergency signs?`, `call (?:your doctor|911)(?:\s+if)?`,
		`seek (?:immediate\s+)?(?:medical\s+)?(?:attention|care|help)(?:\s+if)?`,
	)},
	{Category: medlai.Medications, Pattern: header(
		`medications?(?:\s+(?:list|changes|reconciliation))?`, `meds`, `prescriptions?`, `drugs`, `rx`,
		`medicines?`,
	)},
	{Category: medlai.Procedures, Pattern: header(
		`procedures?(?:\s+performed)?`, `surger(?:y|ies)(?:\s+performed)?`, `operations?(?:\s+performed)?`,
		`interventions?`, `treatments?\s+(?:given|received|performed)`,
	)},
	{Category: medlai.Diagnoses, Pattern: header(
		`diagnos(?:is|es)`, `dx`, `conditions?`, `problems?(?:\s+list)?`, `assessment(?:\s+and\s+plan)?`,
		`impressions?`, `reason for (?:admission|hospitalization|visit)`, `chief complaint`,
	)},
	{Category: medlai.Instructions, Pattern: header(
		`instructions?`, `(?:home|self|wound|patient)[- ]?care(?:\s+instructions)?`, `care instructions`,
		`activity(?:\s+(?:level|restrictions))?(?:\s+and\s+diet)?`, `diet(?:\s+and\s+activity)?`,
		`restrictions?`, `recommendations?`, `plan`, `what to do at home`, `at home`,
	)},
	{Metadata: true, Pattern: header(
		`(?:drug\s+|known\s+)?allerg(?:y|ies)`, `vital signs?`, `vitals`,
		`(?:information|info|details|demographics)`, `demographics`,
		`lab(?:oratory)?(?:\s+results)?`, `labs`, `history(?:\s+of\s+present\s+illness)?`,
	)},
}

// ContentRules classify sentences that appear before any header.
// Unmatched sentences belong to instructions.
var ContentRules = []ContentRule{
	{Category: medlai.FollowUp, Pattern: regexp.MustCompile(
		`(?i)\b(?:follow[- ]?up|check[- ]?up|schedule(?:d)?\s+(?:an?\s+)?(?:appointment|visit)|appointment|` +
			`see\s+(?:your|the|a|an|dr\.?)\b|return\s+(?:to\s+(?:the\s+)?clinic|for\s+(?:a\s+)?(?:visit|recheck|check))|` +
			`in\s+\d+\s+(?:days?|weeks?|months?)\s+(?:with|at)\b)`)},
	{Category: medlai.Medications, Pattern: regexp.MustCompile(
		`(?i)(?:^(?:take|continue(?:\s+taking)?|resume|start(?:\s+taking)?|stop\s+taking|apply|inject|inhale)\b|` +
			`\b\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|units?|iu|tablets?|capsules?|pills?|puffs?)\b|` +
			`\b(?:by mouth|orally|p\.o\.|(?:once|twice|three times|four times) (?:a )?da(?:y|ily)|every \d+ hours)\b)`)},
	{Category: medlai.ReturnReasons, Pattern: regexp.MustCompile(
		`(?i)\b(?:return\s+to\s+(?:the\s+)?(?:er|ed|emergency|hospital)|go\s+to\s+(?:the\s+)?(?:er|ed|emergency)|` +
			`call\s+(?:your\s+(?:doctor|physician|provider)|911|the\s+clinic|us)|` +
			`seek\s+(?:immediate\s+)?(?:medical\s+)?(?:attention|care|help)|warning\s+signs?|` +
			`if\s+you\s+(?:have|experience|develop|notice)|worsening|chest\s+pain|shortness\s+of\s+breath|` +
			`difficulty\s+breathing)\b`)},
	{Category: medlai.Procedures, Pattern: regexp.MustCompile(
		`(?i)\b(?:underwent|procedure|surgery|surgical|operation|biopsy|catheteri[sz]ation|stent|transfusion|` +
			`intubat\w*|\w+(?:ectomy|otomy|ostomy|plasty|scopy)|x-?ray|ct\s+scan|mri)\b`)},
	{Category: medlai.Diagnoses, Pattern: regexp.MustCompile(
		`(?i)\b(?:diagnosed\s+with|diagnosis|(?:were|was|have\s+been)\s+(?:treated|admitted|hospitalized)\s+for|` +
			`admitted\s+(?:for|with)|found\s+to\s+have)\b`)},
}

// MetadataLine matches "label: value" lines that carry demographics or
// facility details rather than clinical content.
var MetadataLine = regexp.MustCompile(`(?i)^\s*(?:patient(?:\s+name)?|name|dob|d\.o\.b\.?|date\s+of\s+birth|mrn|` +
	`medical\s+record(?:\s+(?:number|no\.?|#))?|age|sex|gender|admission\s+date|admit\s+date|admitted|` +
	`discharge\s+date|discharged|date\s+of\s+(?:admission|discharge)|attending(?:\s+physician)?|physician|` +
	`provider|hospital|facility|phone|tel(?:ephone)?|address|room|bed|account(?:\s+(?:number|no\.?))?)\s*[:#]`)

// MatchSection returns the first header rule matching line, and the content
// that follows the header on the same line.
func MatchSection(line string) (SectionRule, string, bool) {
	for _, rule := range SectionHeaders {
		if m := rule.Pattern.FindStringSubmatch(line); m != nil {
			return rule, strings.TrimSpace(m[1]), true
		}
	}
	return SectionRule{}, "", false
}

// ClassifySentence returns the category for a header-less sentence.
func ClassifySentence(sentence string) medlai.Category {
	for _, rule := range ContentRules {
		if rule.Pattern.MatchString(sentence) {
			return rule.Category
		}
	}
	return medlai.Instructions
}
