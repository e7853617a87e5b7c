package models

import "strings"

// TriageCategory is one of five urgency levels assigned at the end of a
// triage interview, ordered by severity from EMERGENCY down to SELF_CARE.
type TriageCategory string

const (
	TriageEmergency  TriageCategory = "EMERGENCY"
	TriageUrgent     TriageCategory = "URGENT"
	TriageSemiUrgent TriageCategory = "SEMI_URGENT"
	TriageNonUrgent  TriageCategory = "NON_URGENT"
	TriageSelfCare   TriageCategory = "SELF_CARE"
)

// TriageCategories returns all categories in descending severity order.
func TriageCategories() []TriageCategory {
	return []TriageCategory{
		TriageEmergency,
		TriageUrgent,
		TriageSemiUrgent,
		TriageNonUrgent,
		TriageSelfCare,
	}
}

// Valid reports whether c is one of the five closed category values.
func (c TriageCategory) Valid() bool {
	switch c {
	case TriageEmergency, TriageUrgent, TriageSemiUrgent, TriageNonUrgent, TriageSelfCare:
		return true
	}
	return false
}

// ParseTriageCategory normalizes s and maps it onto the closed category set.
// Lower-case legacy values from older model prompts are accepted.
func ParseTriageCategory(s string) (TriageCategory, bool) {
	c := TriageCategory(strings.ToUpper(strings.TrimSpace(s)))
	if c.Valid() {
		return c, true
	}
	return "", false
}
