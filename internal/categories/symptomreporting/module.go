// Package symptomreporting implements the staged medical triage interview:
// the model asks follow-up questions one at a time until it is confident
// enough to classify the case into one of five urgency levels, then a second
// model pass fills a hardcoded presentation template with per-section content.
package symptomreporting

import (
	"context"
	"encoding/json"
	"strings"

	"salamatbot/internal/categories"
	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/llm"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/common/metrics"
	"salamatbot/internal/models"
)

const (
	defaultMaxQuestions     = 4
	defaultHardQuestionCeil = 8

	// retryMessage is shown when the upstream model call fails; the session
	// stays in assessment so the user can simply try again.
	retryMessage = "متأسفانه خطایی رخ داده است. لطفاً علائم خود را دوباره شرح دهید."
)

// Module runs symptom triage conversations.
type Module struct {
	ai               llm.Client
	logger           logger.Logger
	maxQuestions     int
	hardQuestionCeil int
}

// Option tunes a Module.
type Option func(*Module)

// WithQuestionLimits overrides the soft question target given to sessions and
// the hard ceiling past which a fail-safe classification is forced.
func WithQuestionLimits(maxQuestions, hardCeil int) Option {
	return func(m *Module) {
		if maxQuestions > 0 {
			m.maxQuestions = maxQuestions
		}
		if hardCeil > 0 {
			m.hardQuestionCeil = hardCeil
		}
	}
}

func New(ai llm.Client, log logger.Logger, opts ...Option) *Module {
	m := &Module{
		ai:               ai,
		logger:           log.WithFields(map[string]interface{}{"category": string(models.IntentSymptomReporting)}),
		maxQuestions:     defaultMaxQuestions,
		hardQuestionCeil: defaultHardQuestionCeil,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Module) Intent() models.Intent { return models.IntentSymptomReporting }

func (m *Module) InitializeSession(_ context.Context, sessionID, initialMessage string) (*models.Session, error) {
	session := models.NewSession(sessionID, models.IntentSymptomReporting, triageSystemPrompt)
	session.MaxQuestions = m.maxQuestions
	session.Metadata = categories.NewSessionMetadata(models.IntentSymptomReporting, map[string]interface{}{
		"triageStage":      string(models.StageAssessment),
		"symptomsReported": []string{},
		"emergencyChecked": false,
	})
	if initialMessage != "" {
		session.AppendUser(initialMessage)
	}
	return session, nil
}

// ProcessMessage advances the interview one turn. A completed session is
// rejected outright; the upstream should start a new one.
func (m *Module) ProcessMessage(ctx context.Context, session *models.Session, message string) (*models.Response, error) {
	if session.IsComplete {
		return nil, apperrors.New(apperrors.ErrCodeSessionComplete, "triage session is already complete")
	}

	if m.ai == nil {
		return &models.Response{Message: retryMessage, NextAction: models.ActionContinue}, nil
	}

	session.AppendUser(message)
	session.QuestionsAsked++

	// Fail-safe: an interview that ran past the hard ceiling without a
	// confident classification is closed as SEMI_URGENT so the user always
	// leaves with actionable guidance.
	if session.QuestionsAsked > m.hardQuestionCeil {
		m.logger.Warn("question ceiling reached, forcing classification", map[string]interface{}{
			"sessionId":      session.SessionID,
			"questionsAsked": session.QuestionsAsked,
		})
		session.Complete(models.TriageSemiUrgent)
		return m.finalResponse(ctx, session, models.TriageSemiUrgent)
	}

	content, err := m.ai.Chat(ctx, llm.Request{
		Messages:    toLLMMessages(session.Conversation),
		Temperature: 0.3,
		MaxTokens:   500,
		Purpose:     "triage_assessment",
	})
	if err != nil {
		m.logger.WithError(err).Error("triage assessment call failed", map[string]interface{}{
			"sessionId": session.SessionID,
		})
		metrics.MessagesProcessed.WithLabelValues(string(models.IntentSymptomReporting), "error").Inc()
		return &models.Response{Message: retryMessage, NextAction: models.ActionContinue}, nil
	}

	payload := ParseModelPayload(content)
	if payload.Kind == PayloadClassification {
		session.AppendAssistant(content)
		session.Complete(payload.Category)
		metrics.MessagesProcessed.WithLabelValues(string(models.IntentSymptomReporting), "classified").Inc()
		return m.finalResponse(ctx, session, payload.Category)
	}

	// Question or plain text: either way the interview continues and the raw
	// completion stays in the transcript for the next model call.
	session.AppendAssistant(content)
	metrics.MessagesProcessed.WithLabelValues(string(models.IntentSymptomReporting), "question").Inc()
	return &models.Response{
		Message:    payload.Message,
		Options:    payload.Options,
		NextAction: models.ActionContinue,
		Metadata: map[string]interface{}{
			"stage":          string(models.StageAssessment),
			"questionsAsked": session.QuestionsAsked,
			"maxQuestions":   session.MaxQuestions,
		},
	}, nil
}

// finalResponse fills the category template with model-generated section
// content. Content generation is best-effort: when the second model pass or
// its JSON parse fails, the template alone still carries the classification.
func (m *Module) finalResponse(ctx context.Context, session *models.Session, category models.TriageCategory) (*models.Response, error) {
	tpl, err := TemplateFor(category)
	if err != nil {
		return nil, err
	}

	metrics.TriageCompletionsTotal.WithLabelValues(string(category)).Inc()

	nextAction := models.ActionComplete
	if category == models.TriageEmergency {
		nextAction = models.ActionEscalate
	}

	response := &models.Response{
		IsComplete: true,
		NextAction: nextAction,
		Metadata: map[string]interface{}{
			"classification": string(category),
			"stage":          string(models.StageCompleted),
		},
		SpecialFeatures: specialFeatures(category),
	}

	content, genErr := m.generateFinalContent(ctx, session, category)
	if genErr != nil {
		m.logger.WithError(genErr).Warn("final content generation failed, using template only", map[string]interface{}{
			"sessionId": session.SessionID,
			"category":  string(category),
		})
		response.Message = RenderTemplateOnly(tpl)
		return response, nil
	}

	response.Message = RenderFinal(content, tpl)
	response.Metadata["finalResponse"] = content
	return response, nil
}

func (m *Module) generateFinalContent(ctx context.Context, session *models.Session, category models.TriageCategory) (map[string]string, error) {
	prompt, ok := finalPromptFor(category)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeTemplateNotFound, "no final content prompt for category")
	}
	if m.ai == nil {
		return nil, apperrors.New(apperrors.ErrCodeUpstreamFailed, "no model client configured")
	}

	messages := toLLMMessages(session.Conversation)
	messages = append(messages, llm.Message{Role: string(models.RoleUser), Content: prompt})

	content, err := m.ai.Chat(ctx, llm.Request{
		Messages:    messages,
		Temperature: 0.4,
		MaxTokens:   1200,
		Purpose:     "triage_final_content",
	})
	if err != nil {
		return nil, err
	}

	var sections map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &sections); err != nil {
		// Non-JSON content still renders as the overall assessment.
		return map[string]string{"comprehensive_assessment": strings.TrimSpace(content)}, nil
	}
	return sections, nil
}

func specialFeatures(category models.TriageCategory) *models.SpecialFeatures {
	features := &models.SpecialFeatures{
		FollowUpSuggestions: []string{
			"شروع گفتگوی جدید",
			"سوال دارویی",
			"اطلاعات پزشکی",
		},
	}

	switch category {
	case models.TriageEmergency:
		features.QuickActions = []models.QuickAction{
			{Label: "📞 تماس فوری با اورژانس (115)", Action: "call_emergency", Type: models.QuickActionEmergency, Phone: "115"},
			{Label: "🚨 تماس با آمبولانس", Action: "call_ambulance", Type: models.QuickActionEmergency, Phone: "115"},
			{Label: "🏥 یافتن نزدیک‌ترین بیمارستان", Action: "find_hospital", Type: models.QuickActionEmergency},
		}
	case models.TriageUrgent:
		features.QuickActions = []models.QuickAction{
			{Label: "🏥 یافتن پزشک", Action: "find_doctor", Type: models.QuickActionGeneric},
			{Label: "📋 نکات مراقبتی", Action: "care_tips", Type: models.QuickActionInfo},
		}
	}
	return features
}

// DetectEmergency runs a keyword screen over the incoming message.
func (m *Module) DetectEmergency(message string, _ []models.Message) models.EmergencyAssessment {
	if categories.DetectEmergencyKeywords(message) {
		return models.EmergencyAssessment{
			IsEmergency:    true,
			Level:          "high",
			Recommendation: "فوراً با اورژانس (115) تماس بگیرید.",
		}
	}
	return models.EmergencyAssessment{Level: "low"}
}

var symptomValidationKeywords = []string{
	"درد", "ناراحتی", "علامت", "احساس", "مشکل",
	"تب", "سردرد", "سرفه", "خستگی", "تهوع",
}

func (m *Module) ValidateMessage(message string) models.ValidationResult {
	matches := categories.CountKeywordMatches(message, symptomValidationKeywords)
	confidence := float64(matches) * 0.3
	if confidence > 0.9 {
		confidence = 0.9
	}
	result := models.ValidationResult{IsValid: matches > 0, Confidence: confidence}
	if matches == 0 {
		result.Suggestions = []string{
			"علائم خود را شرح دهید",
			"نوع درد یا ناراحتی را توضیح دهید",
			"زمان شروع مشکل را بیان کنید",
		}
	}
	return result
}

func (m *Module) CategoryInfo() models.CategoryInfo {
	return models.CategoryInfo{
		Name:        "بررسی علائم",
		Description: "سیستم تریاژ پزشکی برای بررسی و طبقه‌بندی علائم",
		Features: []string{
			"تشخیص اورژانس",
			"سوالات هدفمند",
			"طبقه‌بندی 5 سطحی",
			"راهنمایی تخصصی",
			"دکمه‌های عمل سریع",
		},
		Specializations: []string{
			"علائم عمومی",
			"درد و ناراحتی",
			"علائم اورژانسی",
			"مشکلات حاد",
		},
	}
}

func toLLMMessages(conversation []models.Message) []llm.Message {
	out := make([]llm.Message, 0, len(conversation))
	for _, msg := range conversation {
		out = append(out, llm.Message{Role: string(msg.Role), Content: msg.Content})
	}
	return out
}
