// Package dispatch routes each incoming chat message to the right category
// module: existing sessions go straight to their module, new conversations
// are classified first. User-facing replies never carry raw internal errors;
// every failure path degrades to a Persian apology.
package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"salamatbot/internal/categories"
	"salamatbot/internal/classification"
	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/models"
	"salamatbot/internal/session"
)

const (
	genericErrorMessage = "متأسفانه مشکلی پیش آمده است. لطفاً دوباره تلاش کنید."
	completedMessage    = "این گفتگو به پایان رسیده است. برای موضوع جدید، گفتگوی تازه‌ای آغاز کنید."
	noCategoryMessage   = "متأسفانه در حال حاضر امکان پاسخگویی به این موضوع وجود ندارد. لطفاً سوال خود را به شکل دیگری مطرح کنید."
)

// Request is one inbound user turn.
type Request struct {
	SessionID     string
	Message       string
	ForceCategory models.Intent // skips classification when set
}

// Result is the processed outcome returned to the transport layer.
type Result struct {
	SessionID      string                       `json:"sessionId"`
	Category       models.Intent                `json:"category"`
	Classification *models.ClassificationResult `json:"classification,omitempty"`
	Response       *models.Response             `json:"response"`
}

// Dispatcher owns the classify-route-persist loop.
type Dispatcher struct {
	classifier *classification.Classifier
	registry   *categories.Registry
	store      session.Store
	logger     logger.Logger
}

func New(classifier *classification.Classifier, registry *categories.Registry, store session.Store, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		classifier: classifier,
		registry:   registry,
		store:      store,
		logger:     log.WithFields(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Chat processes one user turn. A request with a known session ID continues
// that conversation in its category; otherwise the message is classified and
// a new session is created.
func (d *Dispatcher) Chat(ctx context.Context, req Request) (*Result, error) {
	if req.SessionID != "" {
		existing, err := d.store.Get(ctx, req.SessionID)
		switch {
		case err == nil:
			return d.continueSession(ctx, existing, req.Message)
		case errors.Is(err, session.ErrNotFound):
			// Expired or unknown: fall through and start fresh under the
			// same ID so the client's reference stays valid.
		default:
			d.logger.WithError(err).Error("session load failed", map[string]interface{}{
				"sessionId": req.SessionID,
			})
			return d.errorResult(req.SessionID, ""), nil
		}
	}

	return d.startSession(ctx, req)
}

func (d *Dispatcher) startSession(ctx context.Context, req Request) (*Result, error) {
	var classified *models.ClassificationResult
	intent := req.ForceCategory
	if intent == "" || !intent.Valid() {
		classified = d.classifier.Classify(ctx, req.Message)
		intent = classified.Intent
	}

	module := d.registry.Get(intent)
	if module == nil {
		d.logger.Error("no module registered for intent", map[string]interface{}{
			"intent": string(intent),
		})
		return &Result{
			SessionID: req.SessionID,
			Category:  intent,
			Response:  &models.Response{Message: noCategoryMessage, NextAction: models.ActionContinue},
		}, nil
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sess, err := module.InitializeSession(ctx, sessionID, "")
	if err != nil {
		d.logger.WithError(err).Error("session initialization failed", map[string]interface{}{
			"sessionId": sessionID,
			"intent":    string(intent),
		})
		return d.errorResult(sessionID, intent), nil
	}

	result, err := d.process(ctx, module, sess, req.Message)
	if err != nil {
		return result, err
	}
	result.Classification = classified
	return result, nil
}

func (d *Dispatcher) continueSession(ctx context.Context, sess *models.Session, message string) (*Result, error) {
	if sess.IsComplete {
		return &Result{
			SessionID: sess.SessionID,
			Category:  sess.Intent,
			Response: &models.Response{
				Message:    completedMessage,
				IsComplete: true,
				NextAction: models.ActionRedirect,
			},
		}, nil
	}

	module := d.registry.Get(sess.Intent)
	if module == nil {
		return &Result{
			SessionID: sess.SessionID,
			Category:  sess.Intent,
			Response:  &models.Response{Message: noCategoryMessage, NextAction: models.ActionContinue},
		}, nil
	}

	return d.process(ctx, module, sess, message)
}

func (d *Dispatcher) process(ctx context.Context, module categories.Module, sess *models.Session, message string) (*Result, error) {
	resp, err := module.ProcessMessage(ctx, sess, message)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeSessionComplete {
			return &Result{
				SessionID: sess.SessionID,
				Category:  sess.Intent,
				Response: &models.Response{
					Message:    completedMessage,
					IsComplete: true,
					NextAction: models.ActionRedirect,
				},
			}, nil
		}
		d.logger.WithError(err).Error("message processing failed", map[string]interface{}{
			"sessionId": sess.SessionID,
			"intent":    string(sess.Intent),
		})
		return d.errorResult(sess.SessionID, sess.Intent), nil
	}

	if err := d.store.Put(ctx, sess); err != nil {
		// The reply is still useful; losing one turn of persistence only
		// costs continuity, not correctness of the answer.
		d.logger.WithError(err).Error("session save failed", map[string]interface{}{
			"sessionId": sess.SessionID,
		})
	}

	if resp.Metadata == nil {
		resp.Metadata = map[string]interface{}{}
	}
	resp.Metadata["category"] = string(sess.Intent)

	return &Result{
		SessionID: sess.SessionID,
		Category:  sess.Intent,
		Response:  resp,
	}, nil
}

// EndSession removes a session from the store.
func (d *Dispatcher) EndSession(ctx context.Context, sessionID string) error {
	return d.store.Delete(ctx, sessionID)
}

// CategoryInfos lists display metadata for all registered categories.
func (d *Dispatcher) CategoryInfos() map[models.Intent]models.CategoryInfo {
	out := make(map[models.Intent]models.CategoryInfo)
	for intent, module := range d.registry.All() {
		out[intent] = module.CategoryInfo()
	}
	return out
}

func (d *Dispatcher) errorResult(sessionID string, intent models.Intent) *Result {
	return &Result{
		SessionID: sessionID,
		Category:  intent,
		Response:  &models.Response{Message: genericErrorMessage, NextAction: models.ActionContinue},
	}
}
