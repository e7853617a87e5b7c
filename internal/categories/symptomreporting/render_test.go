// internal/categories/symptomreporting/render_test.go
package symptomreporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salamatbot/internal/models"
)

func TestTemplateFor(t *testing.T) {
	for _, category := range models.TriageCategories() {
		tpl, err := TemplateFor(category)
		require.NoError(t, err, category)
		assert.NotEmpty(t, tpl.Header)
		assert.NotEmpty(t, tpl.Disclaimer)
		require.NotEmpty(t, tpl.Sections)
		assert.Equal(t, "comprehensive_assessment", tpl.Sections[0].Key)
	}

	_, err := TemplateFor(models.TriageCategory("CRITICAL"))
	assert.Error(t, err)
}

func TestRenderFinalSkipsEmptySections(t *testing.T) {
	tpl, err := TemplateFor(models.TriageUrgent)
	require.NoError(t, err)

	out := RenderFinal(map[string]string{
		"comprehensive_assessment": "ارزیابی شما",
		"next_steps":               "به اورژانس مراجعه کنید",
	}, tpl)

	assert.Contains(t, out, tpl.Header)
	assert.Contains(t, out, "ارزیابی شما")
	assert.Contains(t, out, "مراحل بعدی")
	// Sections the model produced no content for are omitted entirely.
	assert.NotContains(t, out, "زمان‌بندی")
	assert.NotContains(t, out, "آماده‌سازی برای مراجعه")
	assert.Contains(t, out, tpl.Disclaimer)
}

func TestRenderFinalEmergencyShowsCallButton(t *testing.T) {
	tpl, err := TemplateFor(models.TriageEmergency)
	require.NoError(t, err)

	out := RenderFinal(map[string]string{"comprehensive_assessment": "x"}, tpl)
	assert.Contains(t, out, "تماس با آمبولانس")
	assert.Contains(t, out, "115")
}

func TestRenderFinalFallbackContentOnly(t *testing.T) {
	tpl, err := TemplateFor(models.TriageSelfCare)
	require.NoError(t, err)

	// Only the catch-all key is present, as produced when the final content
	// pass returned non-JSON text.
	out := RenderFinal(map[string]string{"comprehensive_assessment": "متن آزاد پزشکی"}, tpl)
	assert.Contains(t, out, "متن آزاد پزشکی")
	assert.Contains(t, out, "ارزیابی کامل")
	assert.NotContains(t, out, "درمان‌های خانگی")
}

func TestRenderTemplateOnly(t *testing.T) {
	tpl, err := TemplateFor(models.TriageSemiUrgent)
	require.NoError(t, err)

	out := RenderTemplateOnly(tpl)
	assert.Contains(t, out, tpl.Header)
	assert.Contains(t, out, tpl.PrimaryAction)
	// Every section gets the generic consult-a-doctor body.
	for _, section := range tpl.Sections {
		assert.Contains(t, out, section.Title)
	}
	assert.Contains(t, out, tpl.Disclaimer)
	assert.False(t, strings.HasSuffix(out, "\n"))
}
