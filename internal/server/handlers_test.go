// internal/server/handlers_test.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salamatbot/internal/categories"
	"salamatbot/internal/classification"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/dispatch"
	"salamatbot/internal/models"
	"salamatbot/internal/session"
)

type cannedModule struct {
	intent models.Intent
}

func (c *cannedModule) Intent() models.Intent { return c.intent }

func (c *cannedModule) InitializeSession(_ context.Context, sessionID, _ string) (*models.Session, error) {
	return models.NewSession(sessionID, c.intent, "prompt"), nil
}

func (c *cannedModule) ProcessMessage(_ context.Context, s *models.Session, message string) (*models.Response, error) {
	s.AppendUser(message)
	return &models.Response{Message: "پاسخ آزمایشی", NextAction: models.ActionContinue}, nil
}

func (c *cannedModule) ValidateMessage(_ string) models.ValidationResult {
	return models.ValidationResult{IsValid: true}
}

func (c *cannedModule) CategoryInfo() models.CategoryInfo {
	return models.CategoryInfo{Name: "آزمایشی", Description: "برای تست"}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	registry := categories.NewRegistry()
	registry.Register(&cannedModule{intent: models.IntentSymptomReporting})
	registry.Register(&cannedModule{intent: models.IntentMedicationQueries})

	d := dispatch.New(
		classification.NewClassifier(nil, logger.NewTestLogger(t)),
		registry,
		session.NewMemoryStore(time.Hour),
		logger.NewTestLogger(t),
	)
	return New(":0", d, logger.NewTestLogger(t))
}

func postChat(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"message":"سردرد دارم"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dispatch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, models.IntentSymptomReporting, result.Category)
	assert.Equal(t, "پاسخ آزمایشی", result.Response.Message)
}

func TestChatEndpointContinuesSession(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"message":"سردرد دارم"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var first dispatch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postChat(t, s, `{"sessionId":"`+first.SessionID+`","message":"هنوز درد دارم"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var second dispatch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Nil(t, second.Classification)
}

func TestChatEndpointValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing message", `{"action":"chat"}`},
		{"unknown action", `{"action":"teleport","message":"x"}`},
		{"unknown category on change", `{"action":"change_category","category":"astrology","message":"x"}`},
		{"missing category on change", `{"action":"change_category","message":"x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postChat(t, s, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestChangeCategoryEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"action":"change_category","category":"medication_queries","message":"دوز قرص چقدره؟"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dispatch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.IntentMedicationQueries, result.Category)
	assert.Nil(t, result.Classification)
}

func TestNewSessionEndpointDropsOldSession(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"message":"سردرد دارم"}`)
	var first dispatch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postChat(t, s, `{"action":"new_session","sessionId":"`+first.SessionID+`","message":"سوال جدید دارم"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var second dispatch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestGetInfoAction(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"action":"get_info","category":"symptom_reporting"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "آزمایشی")

	rec = postChat(t, s, `{"action":"get_info","category":"preventive_care_wellness"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []struct {
			Intent      models.Intent `json:"intent"`
			DisplayName string        `json:"displayName"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Categories, 2)
	// Declaration order: symptom reporting before medication queries.
	assert.Equal(t, models.IntentSymptomReporting, body.Categories[0].Intent)
	assert.NotEmpty(t, body.Categories[0].DisplayName)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
