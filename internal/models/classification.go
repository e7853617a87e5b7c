package models

// ClassificationMethod identifies which pass produced a classification result.
type ClassificationMethod string

const (
	MethodRuleBased ClassificationMethod = "rule_based"
	MethodAIBased   ClassificationMethod = "ai_based"
	MethodFallback  ClassificationMethod = "fallback"
)

// ClassificationResult is the immutable outcome of one intent classification
// call. Confidence is always within [0, 1]. SecondaryIntents never contains
// the primary intent and never contains duplicates; it is ordered
// highest-scoring first and truncated to at most two entries.
type ClassificationResult struct {
	Intent           Intent               `json:"intent"`
	Confidence       float64              `json:"confidence"`
	Method           ClassificationMethod `json:"method"`
	SecondaryIntents []Intent             `json:"secondaryIntents,omitempty"`
	Reasoning        string               `json:"reasoning,omitempty"`
}
