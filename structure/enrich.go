package structure

import (
	"regexp"
	"strings"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/patterns"
)

const noKnownAllergies = "No known allergies"

// enrich runs the extraction sweeps over the whole text. Sweeps only fill
// fields that are still empty.
func enrich(rec *medlai.DischargeRecord, text string) {
	for _, rule := range patterns.VitalRules {
		if vitalValue(rec.Vitals, rule.Field) != "" {
			continue
		}
		if m := rule.Pattern.FindStringSubmatch(text); m != nil {
			setVital(&rec.Vitals, rule.Field, m[1])
		}
	}

	if len(rec.Allergies) == 0 {
		rec.Allergies = extractAllergies(text)
	}

	p := &rec.Patient
	p.Name = firstNonEmpty(p.Name, submatch(patterns.PatientName, text))
	p.DOB = firstNonEmpty(p.DOB, submatch(patterns.DateOfBirth, text))
	p.MRN = firstNonEmpty(p.MRN, submatch(patterns.MRN, text))
	p.Age = firstNonEmpty(p.Age, submatch(patterns.Age, text))
	p.Gender = firstNonEmpty(p.Gender, normalizeGender(submatch(patterns.Gender, text)))

	rec.DischargeDate = firstNonEmpty(rec.DischargeDate, submatch(patterns.DischargeDate, text))
	rec.AdmissionDate = firstNonEmpty(rec.AdmissionDate, submatch(patterns.AdmissionDate, text))

	f := &rec.Facility
	f.Name = firstNonEmpty(f.Name, submatch(patterns.FacilityName, text))
	f.Address = firstNonEmpty(f.Address, submatch(patterns.FacilityAddress, text))
	f.Phone = firstNonEmpty(f.Phone, submatch(patterns.FacilityPhone, text))
}

func extractAllergies(text string) []string {
	out := []string{}
	for _, m := range patterns.AllergyLine.FindAllStringSubmatch(text, -1) {
		if patterns.NoKnownAllergies.MatchString(m[1]) {
			return []string{noKnownAllergies}
		}
		for _, a := range splitAllergies(m[1]) {
			out = appendUnique(out, a)
		}
	}
	if len(out) == 0 && patterns.NoKnownAllergies.MatchString(text) {
		return []string{noKnownAllergies}
	}
	return out
}

func splitAllergies(s string) []string {
	var out []string
	for _, a := range patterns.AllergySplit.Split(s, -1) {
		if a = cleanFragment(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// submatch returns the first non-empty capture group of the first match.
func submatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	for _, g := range m[min(1, len(m)):] {
		if g = strings.TrimSpace(g); g != "" {
			return g
		}
	}
	return ""
}

func normalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ""
	case "m", "male", "man", "boy":
		return "Male"
	case "f", "female", "woman", "girl":
		return "Female"
	default:
		return capitalize(strings.ToLower(strings.TrimSpace(s)))
	}
}

func vitalValue(v medlai.VitalSigns, field string) string {
	switch field {
	case patterns.VitalBloodPressure:
		return v.BloodPressure
	case patterns.VitalHeartRate:
		return v.HeartRate
	case patterns.VitalTemperature:
		return v.Temperature
	case patterns.VitalRespiratoryRate:
		return v.RespiratoryRate
	case patterns.VitalOxygenSaturation:
		return v.OxygenSaturation
	case patterns.VitalWeight:
		return v.Weight
	}
	return ""
}

func setVital(v *medlai.VitalSigns, field, value string) {
	value = collapseSpaces(value)
	if value == "" {
		return
	}
	switch field {
	case patterns.VitalBloodPressure:
		v.BloodPressure = strings.ReplaceAll(strings.ReplaceAll(value, " /", "/"), "/ ", "/")
	case patterns.VitalHeartRate:
		v.HeartRate = value
	case patterns.VitalTemperature:
		v.Temperature = value
	case patterns.VitalRespiratoryRate:
		v.RespiratoryRate = value
	case patterns.VitalOxygenSaturation:
		v.OxygenSaturation = value
	case patterns.VitalWeight:
		v.Weight = value
	}
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, s) {
			return list
		}
	}
	return append(list, s)
}
