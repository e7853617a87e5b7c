// internal/dispatch/dispatcher_test.go
package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salamatbot/internal/categories"
	"salamatbot/internal/classification"
	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/models"
	"salamatbot/internal/session"
)

// echoModule answers every turn with a fixed message and records calls.
type echoModule struct {
	intent     models.Intent
	processErr error
	processed  int
}

func (e *echoModule) Intent() models.Intent { return e.intent }

func (e *echoModule) InitializeSession(_ context.Context, sessionID, initialMessage string) (*models.Session, error) {
	s := models.NewSession(sessionID, e.intent, "prompt")
	if initialMessage != "" {
		s.AppendUser(initialMessage)
	}
	return s, nil
}

func (e *echoModule) ProcessMessage(_ context.Context, s *models.Session, message string) (*models.Response, error) {
	if s.IsComplete {
		return nil, apperrors.New(apperrors.ErrCodeSessionComplete, "complete")
	}
	if e.processErr != nil {
		return nil, e.processErr
	}
	e.processed++
	s.AppendUser(message)
	return &models.Response{Message: "پاسخ " + string(e.intent), NextAction: models.ActionContinue}, nil
}

func (e *echoModule) ValidateMessage(_ string) models.ValidationResult {
	return models.ValidationResult{IsValid: true}
}

func (e *echoModule) CategoryInfo() models.CategoryInfo {
	return models.CategoryInfo{Name: string(e.intent)}
}

func newTestDispatcher(t *testing.T, modules ...categories.Module) (*Dispatcher, *session.MemoryStore) {
	t.Helper()
	registry := categories.NewRegistry()
	for _, m := range modules {
		registry.Register(m)
	}
	store := session.NewMemoryStore(time.Hour)
	classifier := classification.NewClassifier(nil, logger.NewTestLogger(t))
	return New(classifier, registry, store, logger.NewTestLogger(t)), store
}

func TestChatClassifiesAndStartsSession(t *testing.T) {
	symptom := &echoModule{intent: models.IntentSymptomReporting}
	d, store := newTestDispatcher(t, symptom)

	result, err := d.Chat(context.Background(), Request{Message: "سردرد دارم"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, models.IntentSymptomReporting, result.Category)
	require.NotNil(t, result.Classification)
	assert.Equal(t, models.IntentSymptomReporting, result.Classification.Intent)
	assert.Equal(t, "پاسخ symptom_reporting", result.Response.Message)
	assert.Equal(t, "symptom_reporting", result.Response.Metadata["category"])

	// The new session is persisted.
	saved, err := store.Get(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.IntentSymptomReporting, saved.Intent)
}

func TestChatContinuesExistingSession(t *testing.T) {
	symptom := &echoModule{intent: models.IntentSymptomReporting}
	d, _ := newTestDispatcher(t, symptom)

	first, err := d.Chat(context.Background(), Request{Message: "سردرد دارم"})
	require.NoError(t, err)

	second, err := d.Chat(context.Background(), Request{
		SessionID: first.SessionID,
		// The message alone would classify elsewhere, but the session pins
		// the category.
		Message: "دوز قرص چقدر باشه؟",
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, models.IntentSymptomReporting, second.Category)
	assert.Nil(t, second.Classification)
	assert.Equal(t, 2, symptom.processed)
}

func TestChatForceCategorySkipsClassification(t *testing.T) {
	medication := &echoModule{intent: models.IntentMedicationQueries}
	d, _ := newTestDispatcher(t, medication)

	result, err := d.Chat(context.Background(), Request{
		Message:       "سردرد دارم",
		ForceCategory: models.IntentMedicationQueries,
	})
	require.NoError(t, err)

	assert.Equal(t, models.IntentMedicationQueries, result.Category)
	assert.Nil(t, result.Classification)
	assert.Equal(t, 1, medication.processed)
}

func TestChatCompletedSessionGetsRedirect(t *testing.T) {
	symptom := &echoModule{intent: models.IntentSymptomReporting}
	d, store := newTestDispatcher(t, symptom)

	sess := models.NewSession("done-1", models.IntentSymptomReporting, "prompt")
	sess.Complete(models.TriageSelfCare)
	require.NoError(t, store.Put(context.Background(), sess))

	result, err := d.Chat(context.Background(), Request{SessionID: "done-1", Message: "ادامه بده"})
	require.NoError(t, err)

	assert.Equal(t, completedMessage, result.Response.Message)
	assert.True(t, result.Response.IsComplete)
	assert.Equal(t, models.ActionRedirect, result.Response.NextAction)
	assert.Zero(t, symptom.processed)
}

func TestChatExpiredSessionStartsFreshUnderSameID(t *testing.T) {
	symptom := &echoModule{intent: models.IntentSymptomReporting}
	d, _ := newTestDispatcher(t, symptom)

	result, err := d.Chat(context.Background(), Request{SessionID: "ghost-1", Message: "سردرد دارم"})
	require.NoError(t, err)

	assert.Equal(t, "ghost-1", result.SessionID)
	require.NotNil(t, result.Classification)
	assert.Equal(t, 1, symptom.processed)
}

func TestChatModuleFailureNeverLeaksError(t *testing.T) {
	symptom := &echoModule{
		intent:     models.IntentSymptomReporting,
		processErr: errors.New("internal: connection reset by upstream"),
	}
	d, _ := newTestDispatcher(t, symptom)

	result, err := d.Chat(context.Background(), Request{Message: "سردرد دارم"})
	require.NoError(t, err)

	assert.Equal(t, genericErrorMessage, result.Response.Message)
	assert.NotContains(t, result.Response.Message, "connection reset")
}

func TestChatUnregisteredCategory(t *testing.T) {
	// Only the medication module is registered; a symptom message classifies
	// to a category with no module.
	medication := &echoModule{intent: models.IntentMedicationQueries}
	d, _ := newTestDispatcher(t, medication)

	result, err := d.Chat(context.Background(), Request{Message: "سردرد دارم"})
	require.NoError(t, err)
	assert.Equal(t, noCategoryMessage, result.Response.Message)
}

func TestEndSession(t *testing.T) {
	symptom := &echoModule{intent: models.IntentSymptomReporting}
	d, store := newTestDispatcher(t, symptom)

	result, err := d.Chat(context.Background(), Request{Message: "سردرد دارم"})
	require.NoError(t, err)

	require.NoError(t, d.EndSession(context.Background(), result.SessionID))
	_, err = store.Get(context.Background(), result.SessionID)
	assert.True(t, errors.Is(err, session.ErrNotFound))
}

func TestCategoryInfos(t *testing.T) {
	d, _ := newTestDispatcher(t,
		&echoModule{intent: models.IntentSymptomReporting},
		&echoModule{intent: models.IntentMedicationQueries},
	)

	infos := d.CategoryInfos()
	assert.Len(t, infos, 2)
	assert.Equal(t, "symptom_reporting", infos[models.IntentSymptomReporting].Name)
}
