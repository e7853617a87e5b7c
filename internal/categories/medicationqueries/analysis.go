// internal/categories/medicationqueries/analysis.go
package medicationqueries

import (
	"regexp"
	"strings"
)

// QueryType buckets a medication question for response tailoring.
type QueryType string

const (
	QueryGeneral      QueryType = "general"
	QuerySideEffects  QueryType = "side_effects"
	QueryInteractions QueryType = "interactions"
	QueryDosage       QueryType = "dosage"
	QueryTiming       QueryType = "timing"
)

// QueryAnalysis is the outcome of the pre-model message scan.
type QueryAnalysis struct {
	Type        QueryType
	Medications []string
	Complex     bool
}

var medicationNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`آسپرین|اسپیرین`),
	regexp.MustCompile(`آمپیسیلین`),
	regexp.MustCompile(`پنی‌سیلین`),
	regexp.MustCompile(`پاراستامول|استامینوفن`),
	regexp.MustCompile(`ایبوپروفن`),
	regexp.MustCompile(`دیکلوفناک`),
	regexp.MustCompile(`متفورمین`),
	regexp.MustCompile(`انسولین`),
	regexp.MustCompile(`لووتیروکسین`),
	regexp.MustCompile(`آتورواستاتین`),
	regexp.MustCompile(`امپرازول`),
	regexp.MustCompile(`سرترالین`),
}

// AnalyzeQuery buckets the question and extracts any recognized drug names.
func AnalyzeQuery(message string) QueryAnalysis {
	normalized := strings.ToLower(message)

	var medications []string
	for _, pattern := range medicationNamePatterns {
		medications = append(medications, pattern.FindAllString(message, -1)...)
	}

	queryType := QueryGeneral
	switch {
	case strings.Contains(normalized, "عوارض") || strings.Contains(normalized, "ضرر"):
		queryType = QuerySideEffects
	case strings.Contains(normalized, "تداخل") || strings.Contains(normalized, "با هم"):
		queryType = QueryInteractions
	case strings.Contains(normalized, "دوز") || strings.Contains(normalized, "مقدار"):
		queryType = QueryDosage
	case strings.Contains(normalized, "زمان") || strings.Contains(normalized, "کی"):
		queryType = QueryTiming
	}

	return QueryAnalysis{
		Type:        queryType,
		Medications: medications,
		Complex:     len(medications) > 1 || len(strings.Fields(normalized)) > 10,
	}
}

// SafetyCheck is the outcome of the danger-pattern scan.
type SafetyCheck struct {
	RequiresUrgentAttention bool
	Recommendation          string
}

var dangerPatterns = []string{
	"چند برابر", "دوز اضافی", "بیشتر بخورم",
	"با الکل", "حاملگی", "شیردهی",
	"آلرژی شدید", "واکنش بد", "مسمومیت",
}

// CheckSafety flags messages that must not be answered by the model, such as
// overdose intent or use during pregnancy.
func CheckSafety(message string) SafetyCheck {
	normalized := strings.ToLower(message)
	for _, pattern := range dangerPatterns {
		if strings.Contains(normalized, pattern) {
			return SafetyCheck{
				RequiresUrgentAttention: true,
				Recommendation:          "این موضوع نیاز به مشورت فوری با پزشک یا داروساز دارد.",
			}
		}
	}
	return SafetyCheck{
		Recommendation: "مصرف دارو طبق دستور پزشک انجام دهید.",
	}
}
