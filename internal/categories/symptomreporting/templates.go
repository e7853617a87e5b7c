// internal/categories/symptomreporting/templates.go
package symptomreporting

import (
	"fmt"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/models"
)

// ActionButton is a hardcoded call-to-action rendered with a final triage
// result, such as the ambulance call button on the emergency template.
type ActionButton struct {
	Type  string
	Label string
	Phone string
	Style string
}

// TemplateSection names one content slot of a final triage response. The
// model fills slots by key; sections with no generated content are skipped
// entirely so no bare header is ever shown.
type TemplateSection struct {
	Key      string
	Title    string
	Icon     string
	CSSClass string
}

// Template is the fixed presentation frame for one triage category. Keeping
// the frame hardcoded and asking the model only for section content cuts
// token usage substantially.
type Template struct {
	Header        string
	CSSClass      string
	PrimaryAction string
	ActionButtons []ActionButton
	Sections      []TemplateSection
	Disclaimer    string
}

var classificationTemplates = map[models.TriageCategory]Template{
	models.TriageEmergency: {
		Header:   "طبقه‌بندی تریاژ: فوریت (قرمز)",
		CSSClass: "emergency",
		ActionButtons: []ActionButton{
			{Type: "call", Label: "تماس با آمبولانس", Phone: "115", Style: "emergency-call-btn"},
		},
		Sections: []TemplateSection{
			{Key: "comprehensive_assessment", Title: "ارزیابی کامل", Icon: "🏥"},
			{Key: "immediate_actions", Title: "اقدامات فوری - همین الان انجام دهید", Icon: "🚨", CSSClass: "immediate-actions-section"},
			{Key: "emergency_instructions", Title: "دستورالعمل اضطراری", Icon: "📞"},
		},
		Disclaimer: "این ارزیابی تشخیص پزشکی نیست. فوراً با اورژانس تماس بگیرید.",
	},
	models.TriageUrgent: {
		Header:        "طبقه‌بندی تریاژ: عاجل (نارنجی)",
		CSSClass:      "urgent",
		PrimaryAction: "ظرف چند ساعت به اورژانس مراجعه کنید",
		Sections: []TemplateSection{
			{Key: "comprehensive_assessment", Title: "ارزیابی کامل", Icon: "🏥"},
			{Key: "next_steps", Title: "مراحل بعدی", Icon: "➡️"},
			{Key: "timeframe_details", Title: "زمان‌بندی", Icon: "⏰"},
			{Key: "preparation_guidance", Title: "آماده‌سازی برای مراجعه", Icon: "🎒"},
		},
		Disclaimer: "این ارزیابی تشخیص پزشکی نیست. برای مراقبت فوری با متخصصان بهداشت مشورت کنید.",
	},
	models.TriageSemiUrgent: {
		Header:        "طبقه‌بندی تریاژ: نیمه عاجل (زرد)",
		CSSClass:      "semi-urgent",
		PrimaryAction: "ظرف ۲۴-۴۸ ساعت به پزشک مراجعه کنید",
		Sections: []TemplateSection{
			{Key: "comprehensive_assessment", Title: "ارزیابی کامل", Icon: "🏥"},
			{Key: "scheduling_advice", Title: "راهنمای زمان‌بندی", Icon: "📅"},
			{Key: "monitoring_instructions", Title: "علائم قابل نظارت", Icon: "👀"},
			{Key: "interim_management", Title: "مراقبت موقت", Icon: "🏠"},
		},
		Disclaimer: "این ارزیابی تشخیص پزشکی نیست. برای مراقبت مناسب با متخصصان بهداشت مشورت کنید.",
	},
	models.TriageNonUrgent: {
		Header:        "طبقه‌بندی تریاژ: غیرعاجل (سبز)",
		CSSClass:      "non-urgent",
		PrimaryAction: "مراقبت پزشکی معمولی را برنامه‌ریزی کنید",
		Sections: []TemplateSection{
			{Key: "comprehensive_assessment", Title: "ارزیابی کامل", Icon: "🏥"},
			{Key: "scheduling_recommendations", Title: "گزینه‌های زمان‌بندی", Icon: "📋"},
			{Key: "self_management", Title: "خودمراقبتی موقت", Icon: "💊"},
			{Key: "escalation_guidelines", Title: "معیارهای تشدید", Icon: "⚠️"},
		},
		Disclaimer: "این ارزیابی تشخیص پزشکی نیست. برای مراقبت مناسب با متخصصان بهداشت مشورت کنید.",
	},
	models.TriageSelfCare: {
		Header:        "طبقه‌بندی تریاژ: خودمراقبتی (آبی)",
		CSSClass:      "self-care",
		PrimaryAction: "احتمالاً قابل مدیریت در خانه است",
		Sections: []TemplateSection{
			{Key: "comprehensive_assessment", Title: "ارزیابی کامل", Icon: "🏥"},
			{Key: "home_treatment", Title: "درمان‌های خانگی", Icon: "🏡"},
			{Key: "monitoring_guidelines", Title: "برنامه نظارت", Icon: "📊"},
			{Key: "warning_indicators", Title: "علائم هشداردهنده", Icon: "🚨"},
			{Key: "prevention_advice", Title: "نکات پیشگیری", Icon: "🛡️"},
		},
		Disclaimer: "این ارزیابی تشخیص پزشکی نیست. در صورت تشدید علائم با متخصصان بهداشت مشورت کنید.",
	},
}

// TemplateFor returns the presentation frame for a triage category.
func TemplateFor(category models.TriageCategory) (Template, error) {
	tpl, ok := classificationTemplates[category]
	if !ok {
		return Template{}, apperrors.New(apperrors.ErrCodeTemplateNotFound,
			fmt.Sprintf("no triage template for category %q", category))
	}
	return tpl, nil
}
