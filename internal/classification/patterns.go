// internal/classification/patterns.go
package classification

import (
	"regexp"

	"salamatbot/internal/models"
)

// intentPattern binds one intent to its Persian keyword literals and regex
// patterns. Keywords score 1 per substring hit; patterns score 2 per match
// because they encode more context than a bare keyword.
type intentPattern struct {
	intent   models.Intent
	keywords []string
	patterns []*regexp.Regexp
}

// intentPatterns is evaluated in declaration order; the rule-based pass breaks
// score ties in favor of the earlier entry.
var intentPatterns = []intentPattern{
	{
		intent: models.IntentSymptomReporting,
		keywords: []string{
			// Symptoms
			"درد", "ناراحتی", "علامت", "علائم", "مشکل", "احساس",
			"تب", "سردرد", "دل درد", "معده درد", "شکم درد",
			"سرفه", "تنگی نفس", "خستگی", "ضعف", "گیجی",
			"تهوع", "استفراغ", "اسهال", "یبوست", "ورم",
			"خارش", "جوش", "بثورات", "خونریزی", "کبودی",
			// Feeling expressions
			"احساس می‌کنم", "حس می‌کنم", "به نظرم", "مثل اینکه",
			// Problem descriptions
			"مشکل دارم", "ناراحتم", "درد می‌کشم", "اذیتم می‌کنه",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`درد.*دارم`),
			regexp.MustCompile(`احساس.*می‌کنم`),
			regexp.MustCompile(`.*ناراحتم`),
			regexp.MustCompile(`علامت.*دارم`),
			regexp.MustCompile(`مشکل.*دارم`),
			regexp.MustCompile(`.*می‌سوزه`),
			regexp.MustCompile(`.*درد می‌کنه`),
		},
	},
	{
		intent: models.IntentMedicationQueries,
		keywords: []string{
			// Medications
			"دارو", "داروی", "قرص", "کپسول", "شربت", "آمپول", "تزریق",
			"آنتی بیوتیک", "مسکن", "ضد درد", "ویتامین", "مکمل",
			"انسولین", "فشار خون", "قلبی", "آرام بخش",
			// Medication actions
			"بخورم", "استفاده کنم", "مصرف کنم", "تجویز", "نسخه",
			"عوارض", "تداخل", "خطرناک", "مضر", "مفید",
			// Dosage
			"دوز", "مقدار", "چقدر", "کی", "زمان", "ساعت",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`دارو.*بخورم`),
			regexp.MustCompile(`قرص.*مصرف`),
			regexp.MustCompile(`.*تجویز.*`),
			regexp.MustCompile(`عوارض.*دارو`),
			regexp.MustCompile(`تداخل.*دارو`),
			regexp.MustCompile(`دوز.*چقدر`),
			regexp.MustCompile(`.*با.*دارو`),
		},
	},
	{
		intent: models.IntentInformationSeeking,
		keywords: []string{
			// Question words
			"چیست", "چی هست", "یعنی چی", "یعنی چه", "چطور", "چگونه",
			"چرا", "علت", "دلیل", "معنی", "تعریف", "توضیح",
			// Learning expressions
			"می‌خوام بدونم", "می‌خواهم بدانم", "اطلاع", "معلومات",
			"یاد بگیرم", "متوجه بشم", "بفهمم", "راجع به", "در مورد",
			// Medical topics
			"بیماری", "سندرم", "اختلال", "عارضه", "پیشگیری",
			"تشخیص", "درمان", "جراحی", "عمل", "روش",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`.*چیست\??`),
			regexp.MustCompile(`.*چی هست\??`),
			regexp.MustCompile(`چطور.*`),
			regexp.MustCompile(`چرا.*`),
			regexp.MustCompile(`می‌خوام بدونم.*`),
			regexp.MustCompile(`راجع به.*`),
			regexp.MustCompile(`در مورد.*`),
			regexp.MustCompile(`اطلاع.*می‌خوام`),
		},
	},
	{
		intent: models.IntentChronicDisease,
		keywords: []string{
			// Chronic conditions
			"دیابت", "قند خون", "فشار خون", "هایپرتنشن",
			"آسم", "آرتریت", "روماتیسم", "قلبی", "عروقی",
			"کلیوی", "کبدی", "تیروئید", "مزمن", "طولانی مدت",
			// Management terms
			"کنترل", "مدیریت", "مراقبت", "پیگیری", "نظارت",
			"رژیم", "ورزش", "سبک زندگی", "عادات", "روزانه",
			"قند", "انسولین", "تست", "اندازه گیری", "چک",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`دیابت.*دارم`),
			regexp.MustCompile(`فشار خون.*دارم`),
			regexp.MustCompile(`.*مزمن`),
			regexp.MustCompile(`کنترل.*قند`),
			regexp.MustCompile(`مدیریت.*`),
			regexp.MustCompile(`پیگیری.*`),
			regexp.MustCompile(`.*طولانی مدت`),
		},
	},
	{
		intent: models.IntentDiagnosticResults,
		keywords: []string{
			// Test types
			"آزمایش", "تست", "نتیجه", "جواب", "گزارش",
			"خون", "ادرار", "مدفوع", "رادیولوژی", "سونوگرافی",
			"ام آر آی", "سی تی", "ایکو", "الکتروکاردیوگرام",
			"بیوپسی", "کشت", "پاتولوژی", "رنگ آمیزی",
			// Results terminology
			"نرمال", "غیرطبیعی", "بالا", "پایین", "مثبت", "منفی",
			"مقدار", "عدد", "رنج", "حد طبیعی",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`نتیجه.*آزمایش`),
			regexp.MustCompile(`جواب.*تست`),
			regexp.MustCompile(`گزارش.*`),
			regexp.MustCompile(`.*نرمال هست`),
			regexp.MustCompile(`.*غیرطبیعی`),
			regexp.MustCompile(`مقدار.*بالا`),
			regexp.MustCompile(`.*درست هست`),
		},
	},
	{
		intent: models.IntentPreventiveCareWellness,
		keywords: []string{
			// Prevention
			"پیشگیری", "جلوگیری", "محافظت", "مراقبت", "حفظ سلامتی",
			"سلامت", "تندرستی", "بهداشت", "ایمنی", "مقاوم",
			// Lifestyle
			"رژیم", "غذا", "تغذیه", "ورزش", "فعالیت بدنی",
			"خواب", "استراحت", "استرس", "آرامش", "ریلکس",
			"سیگار", "الکل", "مواد مخدر", "ترک", "قطع",
			// Wellness
			"سبک زندگی", "عادت", "روتین", "برنامه", "منظم",
			"بهتر", "بهبود", "ارتقا", "توسعه", "پیشرفت",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`چطور.*پیشگیری`),
			regexp.MustCompile(`جلوگیری.*کنم`),
			regexp.MustCompile(`سلامت.*نگه دارم`),
			regexp.MustCompile(`بهتر.*باشم`),
			regexp.MustCompile(`سبک زندگی.*`),
			regexp.MustCompile(`عادت.*خوب`),
			regexp.MustCompile(`.*مراقبت کنم`),
		},
	},
}
