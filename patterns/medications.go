package patterns

import (
	"regexp"
	"strings"
)

// MedicationTemplate captures the parts of a medication instruction. Group
// indices are 1-based; zero means the template has no such group. Rest holds
// whatever follows the dose or route, including frequency and free-text
// instructions.
type MedicationTemplate struct {
	Name    string
	Pattern *regexp.Regexp
	Verb    int
	Drug    int
	Dose    int
	Unit    int
	Rest    int
}

const (
	doseNumber = `(\d+(?:\.\d+)?(?:\s*-\s*\d+(?:\.\d+)?)?)`
	doseUnit   = `(mg|mcg|µg|g|ml|units?|iu|meq)`
	drugWords  = `([a-z][a-z0-9\-]*(?:\s+[a-z][a-z0-9\-]*){0,3}?)`
	leadVerb   = `(?:(take|continue(?:\s+taking)?|resume|start(?:\s+taking)?|give|use)\s+)?`
)

// MedicationTemplates are tried in order against each medication fragment.
var MedicationTemplates = []MedicationTemplate{
	{
		// "Lisinopril 10 mg once daily", "take metformin 500mg twice daily with food"
		Name:    "drug-dose",
		Pattern: regexp.MustCompile(`(?i)^` + leadVerb + drugWords + `\s+` + doseNumber + `\s*` + doseUnit + `\b[\s,]*(.*)$`),
		Verb:    1, Drug: 2, Dose: 3, Unit: 4, Rest: 5,
	},
	{
		// "Take 2 tablets of ibuprofen every 6 hours"
		Name: "count-of-drug",
		Pattern: regexp.MustCompile(`(?i)^` + leadVerb + `(\d+|one|two|three|four|half(?:\s+a)?)\s+` +
			`(tablets?|tabs?|capsules?|caps?|pills?|puffs?|drops?|sprays?|patch(?:es)?)\s+` +
			`((?:of\s+)?[a-z][a-z0-9\-]*)\b[\s,]*(.*)$`),
		Verb: 1, Dose: 2, Unit: 3, Drug: 4, Rest: 5,
	},
	{
		// "Take tylenol by mouth three times daily for pain"
		Name: "drug-route",
		Pattern: regexp.MustCompile(`(?i)^` + leadVerb + drugWords +
			`\s+((?:by mouth|orally|p\.o\.|topically|under the tongue|sublingually|subcutaneously|inhaled)\b.*)$`),
		Verb: 1, Drug: 2, Rest: 3,
	},
}

// MeasureUnits are written directly after the dose number ("10mg").
var MeasureUnits = map[string]bool{
	"mg": true, "mcg": true, "µg": true, "g": true, "ml": true, "iu": true, "meq": true,
}

// FrequencyPattern recognises dosing schedules.
var FrequencyPattern = regexp.MustCompile(`(?i)\b(?:` +
	`(?:once|twice|three times|four times|[1-4]\s*x|1-2 times)\s*(?:(?:a|per|each)\s+)?(?:day|daily|week|weekly|night|nightly)?|` +
	`every\s+(?:\d+(?:\s*(?:-|to)\s*\d+)?\s+)?(?:hours?|hrs?|days?|morning|evening|night|other day)|` +
	`q\d+h|qhs|qid|tid|bid|qd|prn|` +
	`daily|nightly|weekly|at bedtime|in the (?:morning|evening)|with (?:meals|food)|as needed(?: for [a-z ]+)?)\b`)

// DosePattern matches a numeric dose with its unit.
var DosePattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:mg|mcg|µg|g|ml|units?|iu|meq)\b`)

// MedicationVerbs indicate an instruction about taking a medicine.
var MedicationVerbs = regexp.MustCompile(`(?i)\b(?:take|taking|apply|inject|inhale|swallow|chew|dissolve|prescribed|refill|dose|tablets?|capsules?)\b`)

// DrugNames is a keyword list of common discharge medications.
var DrugNames = []string{
	"acetaminophen", "tylenol", "ibuprofen", "advil", "motrin", "naproxen", "aleve", "aspirin",
	"amoxicillin", "augmentin", "azithromycin", "cephalexin", "keflex", "ciprofloxacin", "levofloxacin",
	"doxycycline", "nitrofurantoin", "metronidazole", "clindamycin", "bactrim",
	"lisinopril", "losartan", "amlodipine", "metoprolol", "atenolol", "carvedilol", "hydrochlorothiazide",
	"furosemide", "lasix", "spironolactone", "digoxin", "nitroglycerin",
	"metformin", "insulin", "glipizide", "januvia",
	"atorvastatin", "lipitor", "simvastatin", "rosuvastatin", "pravastatin",
	"warfarin", "coumadin", "apixaban", "eliquis", "rivaroxaban", "xarelto", "clopidogrel", "plavix",
	"heparin", "enoxaparin", "lovenox",
	"prednisone", "methylprednisolone", "dexamethasone", "albuterol", "fluticasone", "montelukast",
	"omeprazole", "pantoprazole", "famotidine", "ondansetron", "zofran", "docusate", "colace", "senna",
	"oxycodone", "hydrocodone", "tramadol", "morphine", "gabapentin",
	"sertraline", "levothyroxine", "potassium", "vitamin", "iron", "melatonin",
}

// DrugNamePattern matches any name in DrugNames as a whole word.
var DrugNamePattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(DrugNames, "|") + `)\b`)

// MedicationSplit separates medication entries.
var MedicationSplit = regexp.MustCompile(`\s*[;\n]\s*`)

// ClauseSplit separates comma clauses inside one medication entry. A clause
// after the first may be the schedule of the clause before it.
var ClauseSplit = regexp.MustCompile(`\s*,\s*`)

// ItemSplit separates items of the other categories.
var ItemSplit = regexp.MustCompile(`\s*(?:[;,\n]|\s[•·▪◦‣]\s|\s\d{1,2}[.)]\s)\s*`)

// BulletPrefix strips list markers at the start of a line or item.
var BulletPrefix = regexp.MustCompile(`^\s*(?:[-*•·▪◦‣>]+|\+)\s*`)

// EnumerationPrefix strips "1.", "2)", "(3)" and "a)" style numbering.
var EnumerationPrefix = regexp.MustCompile(`^\s*(?:\(?\d{1,2}[.)]|[a-z]\))\s+`)

// SentenceSplit separates sentences on terminal punctuation followed by
// whitespace or end of text.
var SentenceSplit = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// Abbreviations end in a period but do not end a sentence.
var Abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "st": true, "vs": true,
	"e.g": true, "i.e": true, "approx": true, "p.o": true,
}

// WordPattern matches a word of at least three letters.
var WordPattern = regexp.MustCompile(`\pL{3,}`)

// HasMedicationIndicator reports whether text looks like it mentions a
// medicine even though no template matched.
func HasMedicationIndicator(text string) bool {
	return DosePattern.MatchString(text) || MedicationVerbs.MatchString(text) || DrugNamePattern.MatchString(text)
}
