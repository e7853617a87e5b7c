// internal/categories/helpers.go
package categories

import (
	"regexp"
	"strings"

	"salamatbot/internal/models"
)

// MedicalDisclaimer is appended to generated medical guidance.
const MedicalDisclaimer = "\n\n⚕️ این راهنمایی جنبه آموزشی دارد و جایگزین مشاوره پزشک نیست. در مواقع ضروری با پزشک مشورت کنید."

// AppendDisclaimer adds the standard medical disclaimer to a response.
func AppendDisclaimer(response string) string {
	return response + MedicalDisclaimer
}

var emergencyKeywords = []string{
	"فوری", "اورژانس", "خطرناک", "شدید", "وخیم",
	"نفس نمی‌آید", "قلبم می‌ایستد", "بی هوش", "تشنج",
	"خونریزی شدید", "درد شدید", "حمله قلبی", "سکته",
}

// DetectEmergencyKeywords scans a Persian message for emergency phrases.
func DetectEmergencyKeywords(message string) bool {
	normalized := strings.ToLower(message)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

var excessBreaks = regexp.MustCompile(`\n{3,}`)

// FormatMedicalResponse trims and normalizes line breaks for Persian
// readability.
func FormatMedicalResponse(content string) string {
	out := strings.TrimSpace(content)
	out = excessBreaks.ReplaceAllString(out, "\n\n")
	return out
}

// CountKeywordMatches returns how many of the keywords occur in the message.
// Category modules use it for their ValidateMessage heuristics.
func CountKeywordMatches(message string, keywords []string) int {
	normalized := strings.ToLower(message)
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			count++
		}
	}
	return count
}

// NewSessionMetadata seeds the metadata map every category session starts with.
func NewSessionMetadata(intent models.Intent, extra map[string]interface{}) map[string]interface{} {
	meta := map[string]interface{}{
		"intent":             string(intent),
		"messageCount":       0,
		"lastClassification": string(intent),
		"emergencyDetected":  false,
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}
