// internal/categories/placeholder/placeholder_test.go
package placeholder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/models"
)

func TestPlaceholderModules(t *testing.T) {
	tests := []struct {
		name       string
		module     *Module
		wantIntent models.Intent
		validMsg   string
	}{
		{"chronic disease", NewChronicDisease(), models.IntentChronicDisease, "دیابت دارم"},
		{"diagnostics", NewDiagnostics(), models.IntentDiagnosticResults, "نتیجه آزمایش خونم"},
		{"preventive care", NewPreventiveCare(), models.IntentPreventiveCareWellness, "رژیم غذایی سالم"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.module
			assert.Equal(t, tc.wantIntent, m.Intent())

			session, err := m.InitializeSession(context.Background(), "sess", "پیام اولیه")
			require.NoError(t, err)
			assert.Equal(t, tc.wantIntent, session.Intent)
			require.Len(t, session.Conversation, 2)
			assert.Equal(t, models.RoleSystem, session.Conversation[0].Role)
			assert.NotEmpty(t, session.Conversation[0].Content)

			resp, err := m.ProcessMessage(context.Background(), session, "سوال من")
			require.NoError(t, err)
			assert.Contains(t, resp.Message, "در حال توسعه")
			assert.Equal(t, models.ActionContinue, resp.NextAction)
			require.NotNil(t, resp.SpecialFeatures)
			assert.NotEmpty(t, resp.SpecialFeatures.FollowUpSuggestions)

			valid := m.ValidateMessage(tc.validMsg)
			assert.True(t, valid.IsValid)
			invalid := m.ValidateMessage("xyz")
			assert.False(t, invalid.IsValid)
			assert.NotEmpty(t, invalid.Suggestions)

			info := m.CategoryInfo()
			assert.NotEmpty(t, info.Name)
			assert.NotEmpty(t, info.Features)
		})
	}
}

func TestPlaceholderRejectsCompletedSession(t *testing.T) {
	m := NewChronicDisease()
	session, err := m.InitializeSession(context.Background(), "sess", "")
	require.NoError(t, err)
	session.Complete(models.TriageSelfCare)

	_, err = m.ProcessMessage(context.Background(), session, "سوال")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSessionComplete, apperrors.CodeOf(err))
}
