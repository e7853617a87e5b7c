// Package placeholder provides the three category modules that are not yet
// fully built out: chronic disease management, diagnostic result
// interpretation and preventive care. Each carries its real system prompt and
// validation heuristics but answers every turn with a fixed under-development
// notice redirecting the user to the active categories.
package placeholder

import (
	"context"

	"salamatbot/internal/categories"
	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/metrics"
	"salamatbot/internal/models"
)

// Module is a canned-response category. All its behavior comes from the
// static definition it is constructed with.
type Module struct {
	intent       models.Intent
	systemPrompt string
	reply        *models.Response
	keywords     []string
	suggestions  []string
	info         models.CategoryInfo
	metadata     map[string]interface{}
}

func (m *Module) Intent() models.Intent { return m.intent }

func (m *Module) InitializeSession(_ context.Context, sessionID, initialMessage string) (*models.Session, error) {
	session := models.NewSession(sessionID, m.intent, m.systemPrompt)
	session.Metadata = categories.NewSessionMetadata(m.intent, m.metadata)
	if initialMessage != "" {
		session.AppendUser(initialMessage)
	}
	return session, nil
}

func (m *Module) ProcessMessage(_ context.Context, session *models.Session, message string) (*models.Response, error) {
	if session.IsComplete {
		return nil, apperrors.New(apperrors.ErrCodeSessionComplete, "session is already complete")
	}
	session.AppendUser(message)
	metrics.MessagesProcessed.WithLabelValues(string(m.intent), "placeholder").Inc()

	reply := *m.reply
	return &reply, nil
}

func (m *Module) ValidateMessage(message string) models.ValidationResult {
	matches := categories.CountKeywordMatches(message, m.keywords)
	confidence := float64(matches) * 0.3
	if confidence > 0.9 {
		confidence = 0.9
	}
	result := models.ValidationResult{IsValid: matches > 0, Confidence: confidence}
	if matches == 0 {
		result.Suggestions = m.suggestions
	}
	return result
}

func (m *Module) CategoryInfo() models.CategoryInfo { return m.info }

// NewChronicDisease builds the chronic disease management placeholder.
func NewChronicDisease() *Module {
	return &Module{
		intent: models.IntentChronicDisease,
		systemPrompt: `شما یک پزشک متخصص در مدیریت بیماری‌های مزمن هستید که به زبان فارسی مشاوره می‌دهید.

تخصص‌های شما:
- مدیریت دیابت و کنترل قند خون
- پیگیری فشار خون و بیماری‌های قلبی عروقی
- مراقبت از بیماری‌های کلیوی و کبدی مزمن
- درمان آسم و بیماری‌های ریوی مزمن
- مدیریت آرتریت و بیماری‌های التهابی

رویکرد شما:
- ارائه راهنمایی‌های عملی برای زندگی با بیماری مزمن
- توصیه‌های تغذیه‌ای و سبک زندگی
- نظارت بر روند درمان و پیگیری منظم
- آموزش خودمراقبتی و خودنظارتی

هدف: کمک به بیماران برای بهبود کیفیت زندگی و کنترل موثر بیماری مزمن`,
		reply: &models.Response{
			Message:    "این بخش در حال توسعه است. لطفاً با پزشک متخصص خود مشورت کنید.",
			NextAction: models.ActionContinue,
			SpecialFeatures: &models.SpecialFeatures{
				FollowUpSuggestions: []string{"بررسی علائم", "سوال دارویی", "اطلاعات پزشکی"},
			},
		},
		keywords:    []string{"دیابت", "فشار خون", "مزمن", "کنترل", "پیگیری"},
		suggestions: []string{"بیماری مزمن خود را نام ببرید"},
		metadata: map[string]interface{}{
			"diseaseType":     "unknown",
			"managementStage": "initial",
		},
		info: models.CategoryInfo{
			Name:            "مدیریت بیماری‌های مزمن",
			Description:     "راهنمایی تخصصی برای مدیریت بیماری‌های طولانی مدت",
			Features:        []string{"مدیریت دیابت", "کنترل فشار خون", "پیگیری درمان", "سبک زندگی سالم"},
			Specializations: []string{"دیابت", "فشار خون", "بیماری‌های قلبی", "آسم"},
		},
	}
}

// NewDiagnostics builds the diagnostic result interpretation placeholder.
func NewDiagnostics() *Module {
	return &Module{
		intent: models.IntentDiagnosticResults,
		systemPrompt: `شما یک پزشک مختص آزمایشگاه هستید که نتایج آزمایش‌ها را به زبان فارسی تفسیر می‌کنید.

تخصص‌های شما:
- تفسیر آزمایش‌های خون و ادرار
- توضیح گزارش‌های رادیولوژی و تصویربرداری
- تحلیل نتایج بیوپسی و پاتولوژی
- ارزیابی تست‌های قلبی و ریوی

اصول مهم:
- هرگز تشخیص قطعی ندهید، فقط توضیح دهید
- اهمیت مشورت با پزشک را تأکید کنید
- نتایج را در زمینه بالینی قرار دهید
- از اصطلاحات ساده و قابل فهم استفاده کنید

هدف: کمک به درک بهتر نتایج آزمایش‌ها و اهمیت مراجعه به پزشک`,
		reply: &models.Response{
			Message:    "این بخش در حال توسعه است. برای تفسیر نتایج آزمایش، لطفاً با پزشک متخصص مشورت کنید.",
			NextAction: models.ActionContinue,
			SpecialFeatures: &models.SpecialFeatures{
				VisualElements: &models.VisualElement{
					Type:    "warning",
					Content: "تفسیر نتایج آزمایش نیاز به بررسی پزشک دارد",
				},
				FollowUpSuggestions: []string{"بررسی علائم", "اطلاعات پزشکی", "سوال دارویی"},
			},
		},
		keywords:    []string{"آزمایش", "نتیجه", "گزارش", "جواب", "تست", "نرمال", "غیرطبیعی"},
		suggestions: []string{"نتایج آزمایش خود را شرح دهید"},
		metadata: map[string]interface{}{
			"testType": "unknown",
		},
		info: models.CategoryInfo{
			Name:            "تفسیر نتایج آزمایش",
			Description:     "کمک به درک نتایج آزمایش‌های پزشکی",
			Features:        []string{"تفسیر آزمایش خون", "گزارش رادیولوژی", "نتایج بیوپسی", "تست‌های تخصصی"},
			Specializations: []string{"آزمایش‌های خون", "تصویربرداری", "پاتولوژی", "تست‌های عملکردی"},
		},
	}
}

// NewPreventiveCare builds the preventive care and wellness placeholder.
func NewPreventiveCare() *Module {
	return &Module{
		intent: models.IntentPreventiveCareWellness,
		systemPrompt: `شما یک مشاور سلامت هستید که در زمینه پیشگیری و تندرستی به زبان فارسی راهنمایی می‌دهید.

تخصص‌های شما:
- تغذیه سالم و رژیم‌های غذایی مناسب
- برنامه‌های ورزشی و فعالیت بدنی
- مدیریت استرس و سلامت روان
- عادات سالم و سبک زندگی
- پیشگیری از بیماری‌ها

رویکرد شما:
- ترویج سبک زندگی سالم
- آموزش عادات پیشگیرانه
- توصیه‌های عملی و قابل اجرا
- انگیزه‌دهی برای تغییرات مثبت

هدف: ارتقای سطح سلامت عمومی و پیشگیری از بیماری‌ها`,
		reply: &models.Response{
			Message:    "این بخش در حال توسعه است. برای راهنمایی‌های پیشگیری و سلامت، با متخصص تغذیه یا پزشک مشورت کنید.",
			NextAction: models.ActionContinue,
			SpecialFeatures: &models.SpecialFeatures{
				QuickActions: []models.QuickAction{
					{Label: "🍎 نکات تغذیه سالم", Action: "nutrition_tips", Type: models.QuickActionInfo},
					{Label: "🏃 برنامه ورزشی", Action: "exercise_plan", Type: models.QuickActionGeneric},
				},
				FollowUpSuggestions: []string{"اطلاعات پزشکی", "بررسی علائم", "سوال دارویی"},
			},
		},
		keywords:    []string{"پیشگیری", "سلامت", "ورزش", "غذا", "رژیم", "سبک زندگی", "تندرستی"},
		suggestions: []string{"سوال خود را در مورد سلامت و پیشگیری مطرح کنید"},
		metadata: map[string]interface{}{
			"wellnessGoals": []string{},
		},
		info: models.CategoryInfo{
			Name:            "پیشگیری و سلامت",
			Description:     "راهنمایی برای حفظ سلامت و پیشگیری از بیماری‌ها",
			Features:        []string{"تغذیه سالم", "برنامه ورزشی", "مدیریت استرس", "عادات سالم"},
			Specializations: []string{"تغذیه", "فعالیت بدنی", "سلامت روان", "پیشگیری"},
		},
	}
}
