package models

import "strings"

// Intent is one of six fixed categories describing what kind of medical help
// a user message is seeking. The set is closed; values never change at runtime.
type Intent string

const (
	IntentSymptomReporting       Intent = "symptom_reporting"
	IntentMedicationQueries      Intent = "medication_queries"
	IntentInformationSeeking     Intent = "information_seeking"
	IntentChronicDisease         Intent = "chronic_disease_management"
	IntentDiagnosticResults      Intent = "diagnostic_result_interpretation"
	IntentPreventiveCareWellness Intent = "preventive_care_wellness"
)

// Intents returns all intents in declaration order. Order matters: the
// rule-based classifier breaks score ties in favor of the first-declared intent.
func Intents() []Intent {
	return []Intent{
		IntentSymptomReporting,
		IntentMedicationQueries,
		IntentInformationSeeking,
		IntentChronicDisease,
		IntentDiagnosticResults,
		IntentPreventiveCareWellness,
	}
}

// Valid reports whether i is one of the six closed intent values.
func (i Intent) Valid() bool {
	switch i {
	case IntentSymptomReporting, IntentMedicationQueries, IntentInformationSeeking,
		IntentChronicDisease, IntentDiagnosticResults, IntentPreventiveCareWellness:
		return true
	}
	return false
}

// DisplayName returns the user-facing category name in Persian.
func (i Intent) DisplayName() string {
	switch i {
	case IntentSymptomReporting:
		return "بررسی علائم"
	case IntentMedicationQueries:
		return "سوالات دارویی"
	case IntentInformationSeeking:
		return "کسب اطلاعات پزشکی"
	case IntentChronicDisease:
		return "مدیریت بیماری‌های مزمن"
	case IntentDiagnosticResults:
		return "تفسیر نتایج آزمایش"
	case IntentPreventiveCareWellness:
		return "پیشگیری و سلامت"
	}
	return string(i)
}

// ParseIntent normalizes s and maps it onto the closed intent set. It accepts
// both the canonical snake_case values and the upper-case names used in
// classifier instruction prompts.
func ParseIntent(s string) (Intent, bool) {
	normalized := Intent(strings.ToLower(strings.TrimSpace(s)))
	if normalized.Valid() {
		return normalized, true
	}
	return "", false
}
