// internal/categories/symptomreporting/render.go
package symptomreporting

import (
	"fmt"
	"strings"
)

// RenderFinal merges model-generated section content into the category
// template. Sections with no content are omitted entirely; a header is never
// emitted without a body.
func RenderFinal(content map[string]string, tpl Template) string {
	var b strings.Builder

	if tpl.Header != "" {
		fmt.Fprintf(&b, "**%s**\n\n", tpl.Header)
	}

	for _, button := range tpl.ActionButtons {
		if button.Type == "call" {
			fmt.Fprintf(&b, "🚨 **%s**: %s\n\n", button.Label, button.Phone)
		}
	}

	for _, section := range tpl.Sections {
		body := content[section.Key]
		if body == "" {
			continue
		}
		fmt.Fprintf(&b, "%s **%s**\n\n%s\n\n", section.Icon, section.Title, body)
	}

	if tpl.Disclaimer != "" {
		fmt.Fprintf(&b, "⚠️ **توجه**: %s\n\n", tpl.Disclaimer)
	}

	return strings.TrimSpace(b.String())
}

// RenderTemplateOnly renders the frame with generic consult-a-doctor section
// bodies. Used when final content generation fails so the user still gets the
// classification and its guidance.
func RenderTemplateOnly(tpl Template) string {
	var b strings.Builder

	if tpl.Header != "" {
		fmt.Fprintf(&b, "**%s**\n\n", tpl.Header)
	} else {
		b.WriteString("**نتیجه بررسی علائم**\n\n")
	}

	if tpl.PrimaryAction != "" {
		fmt.Fprintf(&b, "📋 **اقدام اولیه**: %s\n\n", tpl.PrimaryAction)
	}

	for _, button := range tpl.ActionButtons {
		if button.Type == "call" {
			fmt.Fprintf(&b, "🚨 **%s**: %s\n\n", button.Label, button.Phone)
		}
	}

	for _, section := range tpl.Sections {
		fmt.Fprintf(&b, "%s **%s**\n", section.Icon, section.Title)
		b.WriteString("لطفاً با پزشک مشورت کنید تا راهنمایی دقیق‌تری دریافت نمایید.\n\n")
	}

	if tpl.Disclaimer != "" {
		fmt.Fprintf(&b, "⚠️ **توجه**: %s\n\n", tpl.Disclaimer)
	}

	return strings.TrimSpace(b.String())
}
