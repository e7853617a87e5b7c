package models

// NextAction tells the caller what to do after a processed turn.
type NextAction string

const (
	ActionContinue NextAction = "continue"
	ActionEscalate NextAction = "escalate"
	ActionComplete NextAction = "complete"
	ActionRedirect NextAction = "redirect"
)

// QuickActionType classifies a quick action for presentation.
type QuickActionType string

const (
	QuickActionEmergency QuickActionType = "emergency"
	QuickActionInfo      QuickActionType = "info"
	QuickActionGeneric   QuickActionType = "action"
)

// QuickAction is a tappable shortcut surfaced with a response, such as an
// emergency phone call button.
type QuickAction struct {
	Label  string          `json:"label"`
	Action string          `json:"action"`
	Type   QuickActionType `json:"type"`
	Phone  string          `json:"phone,omitempty"`
}

// VisualElement is an optional styled callout rendered with a response.
type VisualElement struct {
	Type    string `json:"type"` // warning | info | success | medical
	Content string `json:"content"`
}

// SpecialFeatures bundles optional presentation extras for a response.
type SpecialFeatures struct {
	QuickActions        []QuickAction  `json:"quickActions,omitempty"`
	VisualElements      *VisualElement `json:"visualElements,omitempty"`
	FollowUpSuggestions []string       `json:"followUpSuggestions,omitempty"`
}

// Response is the outcome of processing one user turn in a category module.
type Response struct {
	Message         string                 `json:"message"`
	IsComplete      bool                   `json:"isComplete,omitempty"`
	Options         []string               `json:"options,omitempty"`
	NextAction      NextAction             `json:"nextAction,omitempty"`
	RedirectTo      Intent                 `json:"redirectTo,omitempty"`
	SpecialFeatures *SpecialFeatures       `json:"specialFeatures,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// ValidationResult is the outcome of a cheap pre-check estimating whether a
// message plausibly belongs to a category. Diagnostic only, never a hard gate.
type ValidationResult struct {
	IsValid     bool     `json:"isValid"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// CategoryInfo is static display metadata for a category module.
type CategoryInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	Specializations []string `json:"specializations"`
}

// EmergencyAssessment is the outcome of category-specific emergency detection.
type EmergencyAssessment struct {
	IsEmergency    bool   `json:"isEmergency"`
	Level          string `json:"level"` // low | medium | high | critical
	Recommendation string `json:"recommendation"`
}
