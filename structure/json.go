package structure

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/medlai"
	"github.com/ZaguanLabs/medlai/patterns"
)

// jsonLeaf is one string or number found in a JSON document.
type jsonLeaf struct {
	key   string
	value string
}

type jsonLeaves []jsonLeaf

// lines renders the leaves as "key: value" lines for the extraction sweeps.
func (l jsonLeaves) lines() string {
	out := make([]string, len(l))
	for i, leaf := range l {
		out[i] = leaf.value
		if leaf.key != "" {
			out[i] = leaf.key + ": " + leaf.value
		}
	}
	return strings.Join(out, "\n")
}

// values renders the bare values, one per line.
func (l jsonLeaves) values() string {
	out := make([]string, len(l))
	for i, leaf := range l {
		out[i] = leaf.value
	}
	return strings.Join(out, "\n")
}

// parseJSON decodes text as a JSON object and maps it onto rec. It returns
// false when text is not a JSON object.
func (e *Engine) parseJSON(rec *medlai.DischargeRecord, text string) (jsonLeaves, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		e.logger.Debug().
			Err(&medlai.InputFormatError{Format: FormatJSON, Cause: err}).
			Msg("falling back to text parsing")
		return nil, false
	}

	rec.InputFormat = FormatJSON
	return e.fromObject(rec, obj), true
}

// object indexes a JSON object by normalised key.
type object map[string]any

func newObject(m map[string]any) object {
	o := make(object, len(m))
	keys := sortedKeys(m)
	for _, k := range keys {
		nk := normalizeKey(k)
		if _, exists := o[nk]; !exists {
			o[nk] = m[k]
		}
	}
	return o
}

func (o object) lookup(names []string) (any, bool) {
	for _, name := range names {
		if v, ok := o[normalizeKey(name)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (o object) child(names []string) (object, bool) {
	v, ok := o.lookup(names)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return newObject(m), true
}

func (o object) str(names []string) string {
	v, ok := o.lookup(names)
	if !ok {
		return ""
	}
	return scalar(v)
}

// fromObject maps a decoded JSON object onto rec and returns its leaves.
func (e *Engine) fromObject(rec *medlai.DischargeRecord, raw map[string]any) jsonLeaves {
	obj := newObject(raw)

	matched := false
	for _, c := range medlai.Categories {
		v, ok := obj.lookup(patterns.CategoryKeys[c])
		if !ok {
			continue
		}
		matched = true
		for _, item := range categoryItems(c, v) {
			rec.Sections[c] = addItem(rec.Sections[c], item)
		}
	}

	if !matched {
		if text := obj.str(patterns.TextKeys); text != "" {
			e.parseText(rec, text)
		}
	}

	mapPatient(rec, obj)
	mapFacility(rec, obj)
	rec.DischargeDate = obj.str(patterns.DateKeys["discharge"])
	rec.AdmissionDate = obj.str(patterns.DateKeys["admission"])

	if v, ok := obj.lookup(patterns.AllergyKeys); ok {
		rec.Allergies = allergyList(v)
	}
	if vitals, ok := obj.child(patterns.VitalContainers); ok {
		for field, keys := range patterns.VitalKeys {
			setVital(&rec.Vitals, field, vitals.str(keys))
		}
	}

	var leaves jsonLeaves
	collectLeaves("", raw, &leaves)
	return leaves
}

// categoryItems converts a JSON value into category items. Strings are
// segmented without a length floor; array elements are explicit items and are
// kept whole.
func categoryItems(c medlai.Category, v any) []string {
	switch val := v.(type) {
	case string:
		if c == medlai.Medications {
			return segmentMedications(val)
		}
		return segmentFieldItems(val)
	case []any:
		var items []string
		for _, el := range val {
			items = append(items, elementItem(c, el)...)
		}
		return items
	case map[string]any:
		return elementItem(c, val)
	default:
		if s := scalar(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

func elementItem(c medlai.Category, el any) []string {
	switch val := el.(type) {
	case string:
		text := cleanFragment(val)
		if text == "" {
			return nil
		}
		if c == medlai.Medications {
			if item, ok := matchMedication(text); ok {
				return []string{item}
			}
		}
		return []string{capitalize(text)}
	case map[string]any:
		obj := newObject(val)
		if c == medlai.Medications {
			if med := composeMedication(obj); med != "" {
				return []string{med}
			}
		}
		if text := obj.str(patterns.ItemTextFields); text != "" {
			return []string{capitalize(collapseSpaces(text))}
		}
		var items []string
		for _, k := range sortedKeys(val) {
			if s, ok := val[k].(string); ok && strings.TrimSpace(s) != "" {
				items = append(items, capitalize(collapseSpaces(s)))
			}
		}
		return items
	default:
		if s := scalar(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

// composeMedication joins name, dosage, route, frequency and instructions.
func composeMedication(obj object) string {
	name := obj.str(patterns.MedicationFields[0])
	if name == "" {
		return ""
	}
	parts := []string{name}
	for _, names := range patterns.MedicationFields[1:] {
		if s := obj.str(names); s != "" {
			parts = append(parts, s)
		}
	}
	return capitalize(collapseSpaces(strings.Join(parts, " ")))
}

func mapPatient(rec *medlai.DischargeRecord, obj object) {
	src, nested := obj.child(patterns.PatientKeys)
	get := func(field string) string {
		if nested {
			if s := src.str(patterns.PatientFields[field]); s != "" {
				return s
			}
		}
		// A bare "name" or "age" at the top level is ambiguous.
		var names []string
		for _, n := range patterns.PatientFields[field] {
			if n != "name" && n != "age" {
				names = append(names, n)
			}
		}
		return obj.str(names)
	}

	rec.Patient = medlai.PatientInfo{
		Name:   get("name"),
		DOB:    get("dob"),
		MRN:    get("mrn"),
		Age:    get("age"),
		Gender: normalizeGender(get("gender")),
	}
}

func mapFacility(rec *medlai.DischargeRecord, obj object) {
	src, ok := obj.child(patterns.FacilityKeys)
	if !ok {
		if v, found := obj.lookup(patterns.FacilityKeys); found {
			rec.Facility.Name = scalar(v)
		}
		return
	}
	rec.Facility = medlai.FacilityInfo{
		Name:    src.str(patterns.FacilityFields["name"]),
		Address: src.str(patterns.FacilityFields["address"]),
		Phone:   src.str(patterns.FacilityFields["phone"]),
	}
}

func allergyList(v any) []string {
	var raw []string
	switch val := v.(type) {
	case string:
		raw = splitAllergies(val)
	case []any:
		for _, el := range val {
			switch a := el.(type) {
			case string:
				raw = append(raw, a)
			case map[string]any:
				raw = append(raw, newObject(a).str([]string{"name", "substance", "allergen"}))
			}
		}
	}

	out := []string{}
	for _, a := range raw {
		if a = collapseSpaces(a); a != "" {
			out = appendUnique(out, a)
		}
	}
	return out
}

// collectLeaves flattens scalar leaves in sorted key order.
func collectLeaves(key string, v any, leaves *jsonLeaves) {
	switch val := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(val) {
			collectLeaves(k, val[k], leaves)
		}
	case []any:
		for _, el := range val {
			collectLeaves(key, el, leaves)
		}
	default:
		if s := scalar(val); s != "" {
			*leaves = append(*leaves, jsonLeaf{key: key, value: s})
		}
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(k))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
