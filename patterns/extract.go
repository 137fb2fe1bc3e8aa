package patterns

import "regexp"

// VitalRule extracts one vital sign. Group 1 holds the value.
type VitalRule struct {
	Field   string
	Pattern *regexp.Regexp
}

// Vital sign field names, matching medlai.VitalSigns.
const (
	VitalBloodPressure    = "bloodPressure"
	VitalHeartRate        = "heartRate"
	VitalTemperature      = "temperature"
	VitalRespiratoryRate  = "respiratoryRate"
	VitalOxygenSaturation = "oxygenSaturation"
	VitalWeight           = "weight"
)

// VitalRules are applied to the whole text; the first match per field wins.
var VitalRules = []VitalRule{
	{VitalBloodPressure, regexp.MustCompile(`(?i)\b(?:bp|blood\s+pressure)\s*[:=]?\s*(\d{2,3}\s*/\s*\d{2,3}(?:\s*mm\s*hg)?)`)},
	{VitalHeartRate, regexp.MustCompile(`(?i)\b(?:hr|heart\s+rate|pulse)\s*[:=]?\s*(\d{2,3}(?:\s*bpm)?)\b`)},
	{VitalTemperature, regexp.MustCompile(`(?i)\b(?:temp(?:erature)?)\s*[:=]?\s*(\d{2,3}(?:\.\d+)?\s*°?\s*[fc]?)\b`)},
	{VitalRespiratoryRate, regexp.MustCompile(`(?i)\b(?:rr|resp(?:iratory)?\s+rate|respirations?)\s*[:=]?\s*(\d{1,2})\b`)},
	{VitalOxygenSaturation, regexp.MustCompile(`(?i)\b(?:spo2|o2\s*sat(?:uration)?|oxygen\s+saturation|sat)\s*[:=]?\s*(\d{2,3}\s*%?)`)},
	{VitalWeight, regexp.MustCompile(`(?i)\b(?:weight|wt)\s*[:=]?\s*(\d{2,3}(?:\.\d+)?\s*(?:kg|lbs?|pounds))\b`)},
}

// AllergyLine captures the list after an allergy label.
var AllergyLine = regexp.MustCompile(`(?im)^\s*(?:drug\s+|known\s+)?allerg(?:y|ies)\s*[:\-–]\s*(.+)$`)

// NoKnownAllergies matches the NKDA shorthand and its spelled-out forms.
var NoKnownAllergies = regexp.MustCompile(`(?i)\b(?:nkda|nka|no\s+known\s+(?:drug\s+)?allergies)\b`)

// AllergySplit separates allergens in an allergy list.
var AllergySplit = regexp.MustCompile(`\s*(?:[,;/]|\band\b)\s*`)

const datePattern = `(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{4}-\d{2}-\d{2}|` +
	`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4})`

// Demographic and date sweeps. Group 1 holds the value unless noted.
var (
	PatientName   = regexp.MustCompile(`(?im)^\s*(?:patient(?:\s+name)?|name)\s*:\s*([a-z][a-z.'\-]*(?:\s+[a-z][a-z.'\-]*){0,4})\s*$`)
	DateOfBirth   = regexp.MustCompile(`(?i)\b(?:dob|d\.o\.b\.?|date\s+of\s+birth|birth\s*date)\s*[:\-]?\s*` + datePattern)
	MRN           = regexp.MustCompile(`(?i)\b(?:mrn|medical\s+record(?:\s+(?:number|no\.?|#))?)\s*[:#]?\s*([a-z0-9][a-z0-9\-]{3,})\b`)
	Age           = regexp.MustCompile(`(?i)\bage\s*[:\-]?\s*(\d{1,3})\b|\b(\d{1,3})[\s\-]*(?:y/?o|years?[\s\-]*old|yrs?[\s\-]*old)\b`)
	Gender        = regexp.MustCompile(`(?i)\b(?:sex|gender)\s*[:\-]?\s*(male|female|m|f|other|non-binary)\b|\b\d{1,3}[\s\-]*(?:y/?o|years?[\s\-]*old)\s+(male|female|man|woman|boy|girl)\b`)
	DischargeDate = regexp.MustCompile(`(?i)\b(?:discharge(?:d)?(?:\s+date)?|date\s+of\s+discharge)\s*[:\-]?\s*(?:on\s+)?` + datePattern)
	AdmissionDate = regexp.MustCompile(`(?i)\b(?:admission(?:\s+date)?|admit(?:ted)?(?:\s+date)?|date\s+of\s+admission)\s*[:\-]?\s*(?:on\s+)?` + datePattern)
)

// Facility sweeps, anchored to labelled lines.
var (
	FacilityName    = regexp.MustCompile(`(?im)^\s*(?:hospital|facility|medical\s+center|clinic)(?:\s+name)?\s*:\s*(.+?)\s*$`)
	FacilityAddress = regexp.MustCompile(`(?im)^\s*(?:facility\s+|hospital\s+)?address\s*:\s*(.+?)\s*$`)
	FacilityPhone   = regexp.MustCompile(`(?im)^\s*(?:facility\s+|hospital\s+)?(?:phone|tel(?:ephone)?|contact)(?:\s+number)?\s*:\s*(\+?[\d\s().\-]{7,}?)\s*$`)
)
