// Package medicationqueries answers pharmaceutical questions: dosage, side
// effects, interactions and timing. High-risk messages (overdose intent,
// alcohol, pregnancy) short-circuit to an escalation warning before any model
// call is made.
package medicationqueries

import (
	"context"

	"salamatbot/internal/categories"
	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/llm"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/common/metrics"
	"salamatbot/internal/models"
)

const systemPrompt = `شما یک داروساز متخصص هستید که به زبان فارسی مشاوره دارویی ارائه می‌دهید.

تخصص‌های شما:
- راهنمایی در مورد مصرف دارو و دوز مناسب
- توضیح عوارض جانبی و راه‌های کنترل آن‌ها
- بررسی تداخلات دارویی
- زمان‌بندی مصرف داروها
- نگهداری و انبارداری دارو
- جایگزین‌های دارویی

قوانین مهم:
- هرگز دارو تجویز نکنید، فقط راهنمایی دهید
- همیشه به مشورت با پزشک تأکید کنید
- در مورد تداخلات خطرناک هشدار جدی دهید
- اطلاعات دقیق و قابل اعتماد ارائه دهید
- در مواقع ضروری، مراجعه فوری به پزشک را توصیه کنید

پاسخ شما باید شامل:
1. توضیح مستقیم سوال
2. نکات ایمنی مهم
3. توصیه به مشورت پزشک
4. راهنمایی‌های عملی`

const retryMessage = "متأسفانه خطایی رخ داده است. لطفاً سوال دارویی خود را دوباره مطرح کنید یا با داروساز مشورت نمایید."

// Module handles one-shot medication guidance turns.
type Module struct {
	ai     llm.Client
	logger logger.Logger
}

func New(ai llm.Client, log logger.Logger) *Module {
	return &Module{
		ai:     ai,
		logger: log.WithFields(map[string]interface{}{"category": string(models.IntentMedicationQueries)}),
	}
}

func (m *Module) Intent() models.Intent { return models.IntentMedicationQueries }

func (m *Module) InitializeSession(_ context.Context, sessionID, initialMessage string) (*models.Session, error) {
	session := models.NewSession(sessionID, models.IntentMedicationQueries, systemPrompt)
	session.Metadata = categories.NewSessionMetadata(models.IntentMedicationQueries, map[string]interface{}{
		"queryType":            string(QueryGeneral),
		"medicationsDiscussed": []string{},
		"interactionsChecked":  false,
	})
	if initialMessage != "" {
		session.AppendUser(initialMessage)
	}
	return session, nil
}

func (m *Module) ProcessMessage(ctx context.Context, session *models.Session, message string) (*models.Response, error) {
	if session.IsComplete {
		return nil, apperrors.New(apperrors.ErrCodeSessionComplete, "medication session is already complete")
	}

	analysis := AnalyzeQuery(message)
	session.Metadata["queryType"] = string(analysis.Type)
	recordMedications(session, analysis.Medications)
	if analysis.Type == QueryInteractions {
		session.Metadata["interactionsChecked"] = true
	}

	// Safety gate runs before the message enters the transcript; a dangerous
	// query never reaches the model.
	if safety := CheckSafety(message); safety.RequiresUrgentAttention {
		m.logger.Warn("high-risk medication query escalated", map[string]interface{}{
			"sessionId": session.SessionID,
		})
		metrics.MessagesProcessed.WithLabelValues(string(models.IntentMedicationQueries), "escalated").Inc()
		return safetyWarningResponse(safety), nil
	}

	session.AppendUser(message)

	if m.ai == nil {
		return &models.Response{Message: retryMessage, NextAction: models.ActionContinue}, nil
	}

	content, err := m.ai.Chat(ctx, llm.Request{
		Messages:    toLLMMessages(session.Conversation),
		Temperature: 0.3,
		MaxTokens:   800,
		Purpose:     "medication_guidance",
	})
	if err != nil {
		m.logger.WithError(err).Error("medication guidance call failed", map[string]interface{}{
			"sessionId": session.SessionID,
		})
		metrics.MessagesProcessed.WithLabelValues(string(models.IntentMedicationQueries), "error").Inc()
		return &models.Response{
			Message:    retryMessage,
			NextAction: models.ActionContinue,
			SpecialFeatures: &models.SpecialFeatures{
				QuickActions: []models.QuickAction{
					{Label: "💊 مشاوره با داروساز", Action: "consult_pharmacist", Type: models.QuickActionGeneric},
				},
			},
		}, nil
	}

	reply := categories.AppendDisclaimer(categories.FormatMedicalResponse(content))
	session.AppendAssistant(reply)
	metrics.MessagesProcessed.WithLabelValues(string(models.IntentMedicationQueries), "answered").Inc()

	return &models.Response{
		Message:         reply,
		NextAction:      models.ActionContinue,
		SpecialFeatures: specialFeatures(analysis.Type),
	}, nil
}

func safetyWarningResponse(safety SafetyCheck) *models.Response {
	return &models.Response{
		Message: "⚠️ **هشدار مهم دارویی**\n\n" + safety.Recommendation +
			"\n\n**توصیه‌های فوری:**\n• فوراً با پزشک یا داروساز تماس بگیرید\n• از تغییر دوز یا قطع ناگهانی دارو خودداری کنید\n• در صورت بروز عوارض جانبی، مصرف را متوقف کنید",
		NextAction: models.ActionEscalate,
		SpecialFeatures: &models.SpecialFeatures{
			VisualElements: &models.VisualElement{
				Type:    "warning",
				Content: "این موضوع نیاز به توجه فوری دارد",
			},
			QuickActions: []models.QuickAction{
				{Label: "📞 تماس با مرکز سموم", Action: "poison_center", Type: models.QuickActionEmergency},
				{Label: "💊 مشاوره فوری داروساز", Action: "urgent_pharmacist", Type: models.QuickActionEmergency},
			},
		},
	}
}

func specialFeatures(queryType QueryType) *models.SpecialFeatures {
	features := &models.SpecialFeatures{
		FollowUpSuggestions: []string{
			"سوال دارویی دیگر",
			"بررسی تداخل دارویی",
			"عوارض جانبی دارو",
		},
	}

	switch queryType {
	case QueryInteractions:
		features.QuickActions = []models.QuickAction{
			{Label: "🔍 بررسی تداخل دارویی", Action: "check_interactions", Type: models.QuickActionGeneric},
			{Label: "📋 لیست داروهای من", Action: "medication_list", Type: models.QuickActionInfo},
		}
	case QuerySideEffects:
		features.QuickActions = []models.QuickAction{
			{Label: "⚕️ مدیریت عوارض", Action: "manage_side_effects", Type: models.QuickActionInfo},
			{Label: "📞 تماس با پزشک", Action: "contact_doctor", Type: models.QuickActionGeneric},
		}
	case QueryDosage:
		features.QuickActions = []models.QuickAction{
			{Label: "⏰ یادآوری دارو", Action: "medication_reminder", Type: models.QuickActionGeneric},
			{Label: "📊 محاسبه دوز", Action: "dose_calculator", Type: models.QuickActionGeneric},
		}
	}
	return features
}

func recordMedications(session *models.Session, found []string) {
	existing, _ := session.Metadata["medicationsDiscussed"].([]string)
	seen := make(map[string]bool, len(existing))
	for _, med := range existing {
		seen[med] = true
	}
	for _, med := range found {
		if !seen[med] {
			existing = append(existing, med)
			seen[med] = true
		}
	}
	session.Metadata["medicationsDiscussed"] = existing
}

var validationKeywords = []string{
	"دارو", "قرص", "کپسول", "شربت",
	"مسکن", "آنتی‌بیوتیک", "ویتامین", "مکمل",
	"دوز", "مصرف", "عوارض", "تداخل",
}

func (m *Module) ValidateMessage(message string) models.ValidationResult {
	matches := categories.CountKeywordMatches(message, validationKeywords)
	confidence := float64(matches) * 0.25
	if confidence > 0.9 {
		confidence = 0.9
	}
	result := models.ValidationResult{IsValid: matches > 0, Confidence: confidence}
	if matches == 0 {
		result.Suggestions = []string{
			"سوال خود را در مورد دارو مطرح کنید",
			"نام دارو و سوال مورد نظر را بیان کنید",
			"در مورد عوارض یا نحوه مصرف بپرسید",
		}
	}
	return result
}

func (m *Module) CategoryInfo() models.CategoryInfo {
	return models.CategoryInfo{
		Name:        "سوالات دارویی",
		Description: "مشاوره تخصصی دارویی و راهنمایی مصرف دارو",
		Features: []string{
			"راهنمایی دوز و مصرف",
			"بررسی تداخلات دارویی",
			"توضیح عوارض جانبی",
			"نکات ایمنی دارویی",
			"زمان‌بندی مصرف",
		},
		Specializations: []string{
			"داروهای بدون نسخه",
			"مکمل‌های غذایی",
			"تداخلات دارویی",
			"مدیریت عوارض جانبی",
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
