// Package categories defines the uniform contract every medical category
// module implements, and the registry that lets the dispatcher treat all six
// categories polymorphically.
package categories

import (
	"context"

	"salamatbot/internal/models"
)

// Module is implemented by each medical category. Modules are stateless:
// all conversation state lives in the session passed to ProcessMessage.
type Module interface {
	// Intent returns the closed intent value this module serves.
	Intent() models.Intent

	// InitializeSession seeds a conversation with the category system prompt.
	// When initialMessage is non-empty it is appended as the first user turn.
	InitializeSession(ctx context.Context, sessionID, initialMessage string) (*models.Session, error)

	// ProcessMessage advances the conversation one turn. Implementations must
	// not let internal failures escape as errors for recoverable conditions;
	// they degrade to a safe Persian response instead.
	ProcessMessage(ctx context.Context, session *models.Session, message string) (*models.Response, error)

	// ValidateMessage is a cheap keyword heuristic estimating whether a
	// message plausibly belongs to this category. Diagnostic only.
	ValidateMessage(message string) models.ValidationResult

	// CategoryInfo returns static display metadata.
	CategoryInfo() models.CategoryInfo
}

// SpecialActionHandler is implemented by modules that support quick-action
// callbacks (emergency calls, interaction checks, ...).
type SpecialActionHandler interface {
	HandleSpecialAction(ctx context.Context, session *models.Session, action string, data map[string]interface{}) (*models.Response, error)
}

// EmergencyDetector is implemented by modules that run category-specific
// emergency screening over a message and its conversation.
type EmergencyDetector interface {
	DetectEmergency(message string, conversation []models.Message) models.EmergencyAssessment
}
