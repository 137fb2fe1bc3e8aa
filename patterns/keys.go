package patterns

import "github.com/ZaguanLabs/medlai"

// CategoryKeys lists the JSON field names accepted for each category.
// Keys are compared after lowercasing and removing '_', '-' and spaces.
var CategoryKeys = map[medlai.Category][]string{
	medlai.Diagnoses: {
		"diagnoses", "diagnosis", "conditions", "condition", "problems", "problem_list",
		"dx", "assessment", "impression", "discharge_diagnosis", "discharge_diagnoses",
	},
	medlai.Medications: {
		"medications", "medication", "meds", "drugs", "prescriptions", "prescription",
		"discharge_medications", "home_medications", "rx",
	},
	medlai.Instructions: {
		"instructions", "instruction", "discharge_instructions", "care_instructions",
		"home_care", "self_care", "activity", "diet", "recommendations", "care_plan",
	},
	medlai.ReturnReasons: {
		"return_reasons", "return_reason", "warning_signs", "warnings", "red_flags",
		"when_to_return", "return_precautions", "danger_signs", "when_to_call",
	},
	medlai.FollowUp: {
		"follow_up", "followup", "follow_ups", "appointments", "appointment",
		"follow_up_appointments", "next_steps", "next_visit",
	},
	medlai.Procedures: {
		"procedures", "procedure", "surgeries", "surgery", "operations", "interventions",
		"procedures_performed",
	},
}

// PatientKeys are the container names for patient demographics.
var PatientKeys = []string{"patient", "patient_info", "patient_information", "demographics", "patient_details"}

// FacilityKeys are the container names for facility details.
var FacilityKeys = []string{"facility", "facility_info", "hospital", "organization", "clinic"}

// PatientFields maps each PatientInfo field to accepted JSON names.
var PatientFields = map[string][]string{
	"name":   {"name", "patient_name", "full_name"},
	"dob":    {"dob", "date_of_birth", "birth_date", "birthdate"},
	"mrn":    {"mrn", "medical_record_number", "record_number", "patient_id"},
	"age":    {"age"},
	"gender": {"gender", "sex"},
}

// FacilityFields maps each FacilityInfo field to accepted JSON names.
var FacilityFields = map[string][]string{
	"name":    {"name", "facility_name", "hospital_name"},
	"address": {"address", "location"},
	"phone":   {"phone", "telephone", "phone_number", "contact"},
}

// DateKeys maps the record's dates to accepted JSON names.
var DateKeys = map[string][]string{
	"discharge": {"discharge_date", "date_of_discharge", "discharged", "discharged_on"},
	"admission": {"admission_date", "date_of_admission", "admit_date", "admitted", "admitted_on"},
}

// TextKeys hold free text that is structured like unstructured input when no
// category key is present.
var TextKeys = []string{"text", "summary", "notes", "content", "discharge_summary", "narrative", "original"}

// MedicationFields are the parts of a medication object, in the order they
// are joined.
var MedicationFields = [][]string{
	{"name", "drug", "medication", "medicine"},
	{"dosage", "dose", "strength"},
	{"route"},
	{"frequency", "schedule", "sig", "timing"},
	{"instructions", "directions", "notes"},
}

// ItemTextFields are tried in order when a category array holds objects.
var ItemTextFields = []string{"text", "description", "name", "value", "title"}

// CategoryTags lists the markup element names holding one item of each
// category, and ContainerTags the elements wrapping a whole category.
// Names are lowercase; markup is matched case-insensitively.
var (
	CategoryTags = map[medlai.Category][]string{
		medlai.Diagnoses:     {"diagnosis", "condition", "problem"},
		medlai.Medications:   {"medication", "drug", "prescription"},
		medlai.Instructions:  {"instruction"},
		medlai.ReturnReasons: {"warning", "warningsign", "warning-sign", "returnreason", "return-reason"},
		medlai.FollowUp:      {"followup", "follow-up", "appointment"},
		medlai.Procedures:    {"procedure", "surgery"},
	}
	ContainerTags = map[medlai.Category][]string{
		medlai.Diagnoses:     {"diagnoses", "conditions", "problems"},
		medlai.Medications:   {"medications", "drugs", "prescriptions"},
		medlai.Instructions:  {"instructions"},
		medlai.ReturnReasons: {"warnings", "warningsigns", "warning-signs", "returnreasons", "return-reasons"},
		medlai.FollowUp:      {"followups", "follow-ups", "appointments"},
		medlai.Procedures:    {"procedures", "surgeries"},
	}
)

// MedicationChildTags are joined in order to build a composite medication.
var MedicationChildTags = []string{"name", "dosage", "dose", "route", "frequency", "instructions"}

// PatientTags and FacilityTags map markup selectors to record details.
var (
	PatientTags = map[string]string{
		"patientname": "name", "patient > name": "name", "dob": "dob", "dateofbirth": "dob",
		"mrn": "mrn", "age": "age", "gender": "gender", "sex": "gender",
	}
	FacilityTags = map[string]string{
		"facilityname": "name", "hospitalname": "name", "facility > name": "name", "hospital > name": "name",
		"address": "address", "phone": "phone",
	}
	DateTags = map[string]string{
		"dischargedate": "discharge", "admissiondate": "admission",
	}
)

// AllergyKeys are the JSON names and markup elements holding allergies.
var AllergyKeys = []string{"allergies", "allergy", "drug_allergies", "known_allergies"}

// VitalKeys maps each vital sign to accepted JSON names. Vital objects are
// looked up under VitalContainers.
var (
	VitalContainers = []string{"vitals", "vital_signs", "vitalsigns"}
	VitalKeys       = map[string][]string{
		VitalBloodPressure:    {"blood_pressure", "bp"},
		VitalHeartRate:        {"heart_rate", "hr", "pulse"},
		VitalTemperature:      {"temperature", "temp"},
		VitalRespiratoryRate:  {"respiratory_rate", "rr", "respirations"},
		VitalOxygenSaturation: {"oxygen_saturation", "spo2", "o2_sat"},
		VitalWeight:           {"weight", "wt"},
	}
)
