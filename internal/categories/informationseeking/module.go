// Package informationseeking serves educational medical content: condition
// explanations, treatment overviews and prevention guidance, each answered in
// a single model turn with an educational disclaimer appended.
package informationseeking

import (
	"context"
	"strings"

	"salamatbot/internal/categories"
	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/llm"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/common/metrics"
	"salamatbot/internal/models"
)

const systemPrompt = `شما یک پزشک آموزش‌دهنده هستید که اطلاعات پزشکی آموزشی به زبان فارسی ارائه می‌دهید.

وظایف شما:
- توضیح مفاهیم پزشکی به زبان ساده و قابل فهم
- ارائه اطلاعات علمی دقیق و به‌روز
- پاسخ به سوالات عمومی سلامت
- توضیح بیماری‌ها، علل و راه‌های درمان
- آموزش نکات بهداشتی و پیشگیری

اصول مهم:
- اطلاعات آموزشی ارائه دهید، نه تشخیص
- منابع معتبر و علمی استفاده کنید
- به زبان ساده و روان توضیح دهید
- مطالب را برای عموم مردم قابل فهم کنید
- همیشه به مشورت با پزشک تأکید کنید

ساختار پاسخ شما:
1. تعریف و توضیح مفهوم
2. علل و عوامل مؤثر
3. علائم و نشانه‌ها (در صورت نیاز)
4. راه‌های پیشگیری
5. زمان مراجعه به پزشک`

const educationalDisclaimer = "\n\n📚 این اطلاعات جنبه آموزشی دارد و جایگزین مشاوره پزشک نیست. برای تشخیص و درمان، حتماً با پزشک متخصص مشورت کنید."

const retryMessage = "متأسفانه خطایی رخ داده است. لطفاً سوال خود را دوباره مطرح کنید یا از منابع معتبر پزشکی استفاده نمایید."

// TopicType buckets an information request.
type TopicType string

const (
	TopicGeneral    TopicType = "general"
	TopicDisease    TopicType = "disease_information"
	TopicTreatment  TopicType = "treatment_information"
	TopicPrevention TopicType = "prevention_information"
	TopicAnatomy    TopicType = "anatomy_physiology"
)

// AnalyzeTopic buckets the request and names its main subject.
func AnalyzeTopic(message string) (TopicType, string) {
	normalized := strings.ToLower(message)

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(normalized, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("بیماری", "اختلال", "سندرم"):
		for _, topic := range []string{"دیابت", "فشار خون", "آسم", "آرتریت"} {
			if strings.Contains(normalized, topic) {
				return TopicDisease, topic
			}
		}
		return TopicDisease, "عمومی"
	case containsAny("درمان", "علاج", "طریقه"):
		return TopicTreatment, "روش‌های درمان"
	case containsAny("پیشگیری", "جلوگیری", "مراقبت"):
		return TopicPrevention, "پیشگیری"
	case containsAny("آناتومی", "بدن", "عضو"):
		return TopicAnatomy, "آناتومی و فیزیولوژی"
	}
	return TopicGeneral, "عمومی"
}

// Module handles educational single-turn exchanges.
type Module struct {
	ai     llm.Client
	logger logger.Logger
}

func New(ai llm.Client, log logger.Logger) *Module {
	return &Module{
		ai:     ai,
		logger: log.WithFields(map[string]interface{}{"category": string(models.IntentInformationSeeking)}),
	}
}

func (m *Module) Intent() models.Intent { return models.IntentInformationSeeking }

func (m *Module) InitializeSession(_ context.Context, sessionID, initialMessage string) (*models.Session, error) {
	session := models.NewSession(sessionID, models.IntentInformationSeeking, systemPrompt)
	session.Metadata = categories.NewSessionMetadata(models.IntentInformationSeeking, map[string]interface{}{
		"topicType":       string(TopicGeneral),
		"topicsDiscussed": []string{},
	})
	if initialMessage != "" {
		session.AppendUser(initialMessage)
	}
	return session, nil
}

func (m *Module) ProcessMessage(ctx context.Context, session *models.Session, message string) (*models.Response, error) {
	if session.IsComplete {
		return nil, apperrors.New(apperrors.ErrCodeSessionComplete, "information session is already complete")
	}

	topicType, mainTopic := AnalyzeTopic(message)
	session.Metadata["topicType"] = string(topicType)
	if topics, ok := session.Metadata["topicsDiscussed"].([]string); ok {
		session.Metadata["topicsDiscussed"] = append(topics, mainTopic)
	}

	session.AppendUser(message)

	if m.ai == nil {
		return errorResponse(), nil
	}

	content, err := m.ai.Chat(ctx, llm.Request{
		Messages:    toLLMMessages(session.Conversation),
		Temperature: 0.2,
		MaxTokens:   1000,
		Purpose:     "medical_education",
	})
	if err != nil {
		m.logger.WithError(err).Error("educational response call failed", map[string]interface{}{
			"sessionId": session.SessionID,
		})
		metrics.MessagesProcessed.WithLabelValues(string(models.IntentInformationSeeking), "error").Inc()
		return errorResponse(), nil
	}

	reply := categories.FormatMedicalResponse(content) + educationalDisclaimer
	session.AppendAssistant(reply)
	metrics.MessagesProcessed.WithLabelValues(string(models.IntentInformationSeeking), "answered").Inc()

	return &models.Response{
		Message:         reply,
		NextAction:      models.ActionContinue,
		SpecialFeatures: specialFeatures(topicType),
	}, nil
}

func errorResponse() *models.Response {
	return &models.Response{
		Message:    retryMessage,
		NextAction: models.ActionContinue,
		SpecialFeatures: &models.SpecialFeatures{
			FollowUpSuggestions: []string{"سوال جدید بپرسید", "اطلاعات تکمیلی", "منابع بیشتر"},
		},
	}
}

func specialFeatures(topicType TopicType) *models.SpecialFeatures {
	features := &models.SpecialFeatures{
		FollowUpSuggestions: []string{"سوال تکمیلی", "جزئیات بیشتر", "موضوع مرتبط"},
	}

	switch topicType {
	case TopicDisease:
		features.QuickActions = []models.QuickAction{
			{Label: "🔍 علائم این بیماری", Action: "symptoms_info", Type: models.QuickActionInfo},
			{Label: "💊 روش‌های درمان", Action: "treatment_info", Type: models.QuickActionInfo},
			{Label: "🛡️ راه‌های پیشگیری", Action: "prevention_info", Type: models.QuickActionInfo},
		}
	case TopicTreatment:
		features.QuickActions = []models.QuickAction{
			{Label: "⚕️ انواع درمان", Action: "treatment_types", Type: models.QuickActionInfo},
			{Label: "📊 موثرترین روش", Action: "best_treatment", Type: models.QuickActionInfo},
		}
	case TopicPrevention:
		features.QuickActions = []models.QuickAction{
			{Label: "🍎 تغذیه سالم", Action: "nutrition_info", Type: models.QuickActionInfo},
			{Label: "🏃 ورزش مناسب", Action: "exercise_info", Type: models.QuickActionInfo},
			{Label: "🧠 سلامت روان", Action: "mental_health_info", Type: models.QuickActionInfo},
		}
	}
	return features
}

var validationKeywords = []string{
	"چیست", "چی هست", "چگونه", "چطور", "چرا",
	"اطلاعات", "معلومات", "راجع به", "در مورد",
	"بگو", "توضیح", "تعریف", "یعنی چه",
}

func (m *Module) ValidateMessage(message string) models.ValidationResult {
	matches := categories.CountKeywordMatches(message, validationKeywords)
	confidence := float64(matches) * 0.3
	if confidence > 0.9 {
		confidence = 0.9
	}
	result := models.ValidationResult{IsValid: matches > 0, Confidence: confidence}
	if matches == 0 {
		result.Suggestions = []string{
			"سوال خود را با کلمات \"چیست\" یا \"چگونه\" مطرح کنید",
			"از عبارات \"در مورد\" یا \"راجع به\" استفاده کنید",
			"بپرسید که چه چیزی می‌خواهید بدانید",
		}
	}
	return result
}

func (m *Module) CategoryInfo() models.CategoryInfo {
	return models.CategoryInfo{
		Name:        "کسب اطلاعات پزشکی",
		Description: "ارائه اطلاعات آموزشی و علمی در زمینه پزشکی",
		Features: []string{
			"توضیح بیماری‌ها",
			"روش‌های درمان",
			"نکات پیشگیری",
			"آموزش آناتومی",
			"اطلاعات سلامت عمومی",
		},
		Specializations: []string{
			"بیماری‌های شایع",
			"سلامت عمومی",
			"پیشگیری از بیماری",
			"آموزش پزشکی",
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
