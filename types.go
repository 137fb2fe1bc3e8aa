package medlai

import "time"

// Category names one of the clinical sections of a discharge record.
type Category string

const (
	Diagnoses     Category = "diagnoses"
	Medications   Category = "medications"
	Instructions  Category = "instructions"
	ReturnReasons Category = "returnReasons"
	FollowUp      Category = "followUp"
	Procedures    Category = "procedures"
)

// Categories lists every clinical category in presentation order.
var Categories = []Category{
	Diagnoses,
	Medications,
	Instructions,
	ReturnReasons,
	FollowUp,
	Procedures,
}

// PrimaryCategories are the categories counted by the completeness score.
var PrimaryCategories = []Category{
	Diagnoses,
	Medications,
	Instructions,
	ReturnReasons,
	FollowUp,
}

// PatientInfo holds demographics found in the source text.
type PatientInfo struct {
	Name   string `json:"name,omitempty"`
	DOB    string `json:"dob,omitempty"`
	MRN    string `json:"mrn,omitempty"`
	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// IsZero reports whether no demographic field was found.
func (p PatientInfo) IsZero() bool {
	return p == PatientInfo{}
}

// FacilityInfo describes the discharging hospital.
type FacilityInfo struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// IsZero reports whether no facility field was found.
func (f FacilityInfo) IsZero() bool {
	return f == FacilityInfo{}
}

// VitalSigns holds the last recorded vitals mentioned in the text.
type VitalSigns struct {
	BloodPressure    string `json:"bloodPressure,omitempty"`
	HeartRate        string `json:"heartRate,omitempty"`
	Temperature      string `json:"temperature,omitempty"`
	RespiratoryRate  string `json:"respiratoryRate,omitempty"`
	OxygenSaturation string `json:"oxygenSaturation,omitempty"`
	Weight           string `json:"weight,omitempty"`
}

// IsZero reports whether no vital sign was found.
func (v VitalSigns) IsZero() bool {
	return v == VitalSigns{}
}

// DischargeRecord is the structured form of one discharge submission.
// Every category in Categories is always present in Sections, possibly empty.
type DischargeRecord struct {
	Sections      map[Category][]string `json:"sections"`
	Patient       PatientInfo           `json:"patientInfo"`
	Facility      FacilityInfo          `json:"facilityInfo"`
	Vitals        VitalSigns            `json:"vitalSigns"`
	Allergies     []string              `json:"allergies"`
	DischargeDate string                `json:"dischargeDate,omitempty"`
	AdmissionDate string                `json:"admissionDate,omitempty"`
	Completeness  float64               `json:"completeness"`
	InputFormat   string                `json:"inputFormat"` // "text", "json", "xml", "html" or "envelope"
	Source        string                `json:"source"`
	ParsedAt      time.Time             `json:"parsedAt"`
}

// NewDischargeRecord returns a record with every category initialised.
func NewDischargeRecord(source string) *DischargeRecord {
	r := &DischargeRecord{
		Sections:  make(map[Category][]string, len(Categories)),
		Allergies: []string{},
		Source:    source,
	}
	for _, c := range Categories {
		r.Sections[c] = []string{}
	}
	return r
}

// Items returns the entries of a category.
func (r *DischargeRecord) Items(c Category) []string {
	return r.Sections[c]
}

// Empty reports whether no category holds an item.
func (r *DischargeRecord) Empty() bool {
	for _, c := range Categories {
		if len(r.Sections[c]) > 0 {
			return false
		}
	}
	return true
}

// Service tags identify which provider produced a translation.
const (
	ServiceNone       = "none"
	ServiceCache      = "cache"
	ServiceGoogle     = "google"
	ServiceDeepL      = "deepl"
	ServiceOpenAI     = "openai"
	ServiceLibre      = "libretranslate"
	ServiceDictionary = "dictionary"
	ServiceSuffix     = "suffix"
)

// TranslationResult is the outcome of translating a single text.
type TranslationResult struct {
	TranslatedText string  `json:"translatedText"`
	Confidence     float64 `json:"confidence"`
	ServiceUsed    string  `json:"serviceUsed"`
	OriginalText   string  `json:"originalText"`
	Unavailable    bool    `json:"unavailable,omitempty"` // No real translation was possible
}

// BatchTranslationResult is the outcome of translating an ordered list of texts.
type BatchTranslationResult struct {
	TranslatedTexts []string            `json:"translatedText"`
	Confidence      float64             `json:"confidence"` // Arithmetic mean of element confidences
	ServiceUsed     string              `json:"serviceUsed"`
	OriginalTexts   []string            `json:"originalText"`
	Results         []TranslationResult `json:"results,omitempty"`
}

// CategoryError records a category that could not be translated.
type CategoryError struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

func (e CategoryError) Error() string {
	return string(e.Category) + ": " + e.Message
}

// TranslatedRecord is a DischargeRecord rendered into a target language.
type TranslatedRecord struct {
	Language   string                `json:"language"`
	Direction  string                `json:"direction"` // "ltr" or "rtl"
	Categories map[Category][]string `json:"categories"`
	Confidence map[Category]float64  `json:"categoryConfidence"`
	Services   map[Category]string   `json:"categoryServices"`
	Overall    float64               `json:"confidence"`
	Patient    PatientInfo           `json:"patientInfo"`
	Facility   FacilityInfo          `json:"facilityInfo"`
	Vitals     VitalSigns            `json:"vitalSigns"`
	Allergies  []string              `json:"allergies"`

	DischargeDate string `json:"dischargeDate,omitempty"`
	AdmissionDate string `json:"admissionDate,omitempty"`
}

// HospitalBranding is the presentation layer's branding configuration.
type HospitalBranding struct {
	Name           string `json:"name" yaml:"name"`
	Address        string `json:"address" yaml:"address"`
	Phone          string `json:"phone" yaml:"phone"`
	PrimaryColor   string `json:"primaryColor" yaml:"primary_color"`
	SecondaryColor string `json:"secondaryColor" yaml:"secondary_color"`
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
}
