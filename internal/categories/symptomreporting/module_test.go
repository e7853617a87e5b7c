// internal/categories/symptomreporting/module_test.go
package symptomreporting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/llm"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/models"
)

type chatTurn struct {
	content string
	err     error
}

// scriptedClient replays a fixed sequence of completions and records the
// requests it received.
type scriptedClient struct {
	turns    []chatTurn
	requests []llm.Request
}

func (c *scriptedClient) Chat(_ context.Context, req llm.Request) (string, error) {
	c.requests = append(c.requests, req)
	if len(c.turns) == 0 {
		return "", errors.New("scripted client exhausted")
	}
	turn := c.turns[0]
	c.turns = c.turns[1:]
	return turn.content, turn.err
}

func newTestModule(t *testing.T, turns ...chatTurn) (*Module, *scriptedClient) {
	t.Helper()
	client := &scriptedClient{turns: turns}
	return New(client, logger.NewTestLogger(t)), client
}

func TestInitializeSession(t *testing.T) {
	m, _ := newTestModule(t)

	session, err := m.InitializeSession(context.Background(), "sess-1", "سردرد شدید دارم")
	require.NoError(t, err)

	assert.Equal(t, "sess-1", session.SessionID)
	assert.Equal(t, models.IntentSymptomReporting, session.Intent)
	require.Len(t, session.Conversation, 2)
	assert.Equal(t, models.RoleSystem, session.Conversation[0].Role)
	assert.Equal(t, models.RoleUser, session.Conversation[1].Role)
	assert.Equal(t, "سردرد شدید دارم", session.Conversation[1].Content)
	assert.False(t, session.IsComplete)
	assert.Equal(t, models.StageAssessment, session.Stage)
	assert.Equal(t, defaultMaxQuestions, session.MaxQuestions)
}

func TestInitializeSessionWithoutInitialMessage(t *testing.T) {
	m, _ := newTestModule(t)

	session, err := m.InitializeSession(context.Background(), "sess-2", "")
	require.NoError(t, err)
	require.Len(t, session.Conversation, 1)
	assert.Equal(t, models.RoleSystem, session.Conversation[0].Role)
}

func TestProcessMessageQuestionTurn(t *testing.T) {
	m, client := newTestModule(t, chatTurn{
		content: `{"type":"question","message":"درد از کی شروع شده؟","options":["امروز","دیروز"]}`,
	})
	session, err := m.InitializeSession(context.Background(), "sess-3", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "سردرد دارم")
	require.NoError(t, err)

	assert.Equal(t, "درد از کی شروع شده؟", resp.Message)
	assert.Equal(t, []string{"امروز", "دیروز"}, resp.Options)
	assert.Equal(t, models.ActionContinue, resp.NextAction)
	assert.False(t, resp.IsComplete)
	assert.False(t, session.IsComplete)
	assert.Equal(t, 1, session.QuestionsAsked)

	// Transcript keeps the raw completion, not the extracted question text.
	require.Len(t, session.Conversation, 3)
	assert.Equal(t, models.RoleAssistant, session.Conversation[2].Role)
	assert.Contains(t, session.Conversation[2].Content, `"type":"question"`)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "triage_assessment", client.requests[0].Purpose)
}

func TestProcessMessagePlainTextRelayedVerbatim(t *testing.T) {
	m, _ := newTestModule(t, chatTurn{content: "آیا تب هم دارید؟"})
	session, err := m.InitializeSession(context.Background(), "sess-4", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "گلودرد دارم")
	require.NoError(t, err)
	assert.Equal(t, "آیا تب هم دارید؟", resp.Message)
	assert.Empty(t, resp.Options)
	assert.Equal(t, models.ActionContinue, resp.NextAction)
}

func TestProcessMessageClassificationCompletes(t *testing.T) {
	m, client := newTestModule(t,
		chatTurn{content: `{"type":"classification","category":"SELF_CARE"}`},
		chatTurn{content: `{"comprehensive_assessment":"علائم خفیف","home_treatment":"استراحت و مایعات"}`},
	)
	session, err := m.InitializeSession(context.Background(), "sess-5", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "کمی سرفه دارم")
	require.NoError(t, err)

	assert.True(t, resp.IsComplete)
	assert.Equal(t, models.ActionComplete, resp.NextAction)
	assert.Contains(t, resp.Message, "خودمراقبتی (آبی)")
	assert.Contains(t, resp.Message, "استراحت و مایعات")

	assert.True(t, session.IsComplete)
	assert.Equal(t, models.StageCompleted, session.Stage)
	require.NotNil(t, session.FinalClassification)
	assert.Equal(t, models.TriageSelfCare, *session.FinalClassification)

	require.Len(t, client.requests, 2)
	assert.Equal(t, "triage_final_content", client.requests[1].Purpose)
}

func TestProcessMessageEmergencyEscalates(t *testing.T) {
	m, _ := newTestModule(t,
		chatTurn{content: `{"type":"classification","category":"EMERGENCY"}`},
		chatTurn{content: `{"comprehensive_assessment":"علائم حمله قلبی","immediate_actions":"بنشینید","emergency_instructions":"با ۱۱۵ تماس بگیرید"}`},
	)
	session, err := m.InitializeSession(context.Background(), "sess-6", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "درد قفسه سینه و تنگی نفس")
	require.NoError(t, err)

	assert.Equal(t, models.ActionEscalate, resp.NextAction)
	require.NotNil(t, resp.SpecialFeatures)
	require.NotEmpty(t, resp.SpecialFeatures.QuickActions)
	assert.Equal(t, "call_emergency", resp.SpecialFeatures.QuickActions[0].Action)
	assert.Equal(t, "115", resp.SpecialFeatures.QuickActions[0].Phone)
}

func TestProcessMessageRejectsCompletedSession(t *testing.T) {
	m, client := newTestModule(t)
	session, err := m.InitializeSession(context.Background(), "sess-7", "")
	require.NoError(t, err)
	session.Complete(models.TriageSelfCare)

	_, err = m.ProcessMessage(context.Background(), session, "یک سوال دیگر")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSessionComplete, apperrors.CodeOf(err))
	assert.Empty(t, client.requests)
}

func TestProcessMessageUpstreamFailureKeepsSessionOpen(t *testing.T) {
	m, _ := newTestModule(t, chatTurn{err: errors.New("upstream down")})
	session, err := m.InitializeSession(context.Background(), "sess-8", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "سردرد دارم")
	require.NoError(t, err)
	assert.Equal(t, retryMessage, resp.Message)
	assert.Equal(t, models.ActionContinue, resp.NextAction)
	assert.False(t, session.IsComplete)
}

func TestProcessMessageHardCeilingForcesClassification(t *testing.T) {
	client := &scriptedClient{turns: []chatTurn{
		{content: `{"comprehensive_assessment":"ارزیابی کلی"}`},
	}}
	m := New(client, logger.NewTestLogger(t), WithQuestionLimits(2, 3))

	session, err := m.InitializeSession(context.Background(), "sess-9", "")
	require.NoError(t, err)
	session.QuestionsAsked = 3

	resp, err := m.ProcessMessage(context.Background(), session, "هنوز مطمئن نیستم")
	require.NoError(t, err)

	assert.True(t, resp.IsComplete)
	assert.Equal(t, models.ActionComplete, resp.NextAction)
	assert.Contains(t, resp.Message, "نیمه عاجل (زرد)")
	require.NotNil(t, session.FinalClassification)
	assert.Equal(t, models.TriageSemiUrgent, *session.FinalClassification)

	// Only the final content pass runs; no further interview question is asked.
	require.Len(t, client.requests, 1)
	assert.Equal(t, "triage_final_content", client.requests[0].Purpose)
}

func TestProcessMessageFinalContentFailureUsesTemplate(t *testing.T) {
	m, _ := newTestModule(t,
		chatTurn{content: `{"type":"classification","category":"NON_URGENT"}`},
		chatTurn{err: errors.New("final pass down")},
	)
	session, err := m.InitializeSession(context.Background(), "sess-10", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "کمی خستگی دارم")
	require.NoError(t, err)

	assert.True(t, resp.IsComplete)
	assert.Contains(t, resp.Message, "غیرعاجل (سبز)")
	assert.Contains(t, resp.Message, "لطفاً با پزشک مشورت کنید")
	assert.True(t, session.IsComplete)
}

func TestProcessMessageNonJSONFinalContent(t *testing.T) {
	m, _ := newTestModule(t,
		chatTurn{content: `{"type":"classification","category":"URGENT"}`},
		chatTurn{content: "ارزیابی آزاد بدون ساختار JSON"},
	)
	session, err := m.InitializeSession(context.Background(), "sess-11", "")
	require.NoError(t, err)

	resp, err := m.ProcessMessage(context.Background(), session, "درد شکم شدید")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "ارزیابی آزاد بدون ساختار JSON")
	assert.Contains(t, resp.Message, "ارزیابی کامل")
}

func TestDetectEmergency(t *testing.T) {
	m, _ := newTestModule(t)

	hit := m.DetectEmergency("خونریزی شدید دارم", nil)
	assert.True(t, hit.IsEmergency)
	assert.Equal(t, "high", hit.Level)

	miss := m.DetectEmergency("کمی سرفه دارم", nil)
	assert.False(t, miss.IsEmergency)
}

func TestValidateMessage(t *testing.T) {
	m, _ := newTestModule(t)

	hit := m.ValidateMessage("سردرد و تهوع دارم")
	assert.True(t, hit.IsValid)
	assert.Greater(t, hit.Confidence, 0.0)

	miss := m.ValidateMessage("قیمت دلار چند است")
	assert.False(t, miss.IsValid)
	assert.NotEmpty(t, miss.Suggestions)
}
