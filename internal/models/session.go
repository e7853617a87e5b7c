package models

import "time"

// Stage is the lifecycle phase of a triage session.
type Stage string

const (
	StageAssessment Stage = "assessment"
	StageCompleted  Stage = "completed"
)

// Session holds one category conversation. The first conversation entry is
// always the category system prompt; it is never removed or reordered.
// QuestionsAsked only grows, and IsComplete is monotonic: once set, no
// further assessment processing happens for the session.
type Session struct {
	SessionID           string                 `json:"sessionId"`
	Intent              Intent                 `json:"intent"`
	Conversation        []Message              `json:"conversation"`
	Stage               Stage                  `json:"stage"`
	QuestionsAsked      int                    `json:"questionsAsked"`
	MaxQuestions        int                    `json:"maxQuestions"`
	IsComplete          bool                   `json:"isComplete"`
	FinalClassification *TriageCategory        `json:"finalClassification,omitempty"`
	Metadata            map[string]interface{} `json:"metadata,omitempty"`
	StartTime           time.Time              `json:"startTime"`
	LastActivity        time.Time              `json:"lastActivity"`
}

// NewSession seeds a session with the category system prompt as the first
// conversation entry.
func NewSession(sessionID string, intent Intent, systemPrompt string) *Session {
	now := time.Now().UTC()
	return &Session{
		SessionID:    sessionID,
		Intent:       intent,
		Conversation: []Message{{Role: RoleSystem, Content: systemPrompt}},
		Stage:        StageAssessment,
		Metadata:     map[string]interface{}{},
		StartTime:    now,
		LastActivity: now,
	}
}

// AppendUser appends a user turn and refreshes the activity timestamp.
func (s *Session) AppendUser(content string) {
	s.Conversation = append(s.Conversation, NewMessage(RoleUser, content))
	s.LastActivity = time.Now().UTC()
}

// AppendAssistant appends an assistant turn and refreshes the activity timestamp.
func (s *Session) AppendAssistant(content string) {
	s.Conversation = append(s.Conversation, NewMessage(RoleAssistant, content))
	s.LastActivity = time.Now().UTC()
}

// Complete transitions the session to its terminal stage. The transition
// happens at most once; later calls keep the first classification.
func (s *Session) Complete(category TriageCategory) {
	if s.IsComplete {
		return
	}
	s.IsComplete = true
	s.Stage = StageCompleted
	s.FinalClassification = &category
	s.LastActivity = time.Now().UTC()
}
