// Package session persists category conversations between turns. Three
// backends are provided: in-process memory for development, Redis for
// shared-nothing deployments and Postgres where relational storage already
// exists. All backends expire sessions after the configured TTL.
package session

import (
	"context"
	"errors"
	"time"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/models"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store is the persistence contract injected into the dispatcher.
type Store interface {
	// Get loads a session. Returns ErrNotFound for unknown or expired IDs.
	Get(ctx context.Context, sessionID string) (*models.Session, error)

	// Put saves a session and resets its expiry clock.
	Put(ctx context.Context, session *models.Session) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// notFound wraps ErrNotFound in the standard error envelope so callers can
// match either the sentinel (errors.Is) or the code (apperrors.CodeOf).
func notFound(sessionID string) error {
	return apperrors.Wrap(apperrors.ErrCodeSessionNotFound, "session not found: "+sessionID, ErrNotFound)
}

func storeFailed(op string, cause error) error {
	return apperrors.Wrap(apperrors.ErrCodeStoreFailed, "session store "+op+" failed", cause)
}

const defaultTTL = 24 * time.Hour
