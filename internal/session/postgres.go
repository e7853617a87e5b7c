// internal/session/postgres.go
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"salamatbot/internal/models"
)

// PostgresStore persists sessions as JSONB rows. Expiry is enforced at read
// time through the expires_at column; a periodic external cleanup job can
// prune dead rows.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PostgresStore{db: db, ttl: ttl}
}

// EnsureSchema creates the sessions table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS chat_sessions (
			session_id TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return storeFailed("migrate", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM chat_sessions WHERE session_id = $1 AND expires_at > now()`,
		sessionID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(sessionID)
	}
	if err != nil {
		return nil, storeFailed("get", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, storeFailed("decode", err)
	}
	return &session, nil
}

func (s *PostgresStore) Put(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return storeFailed("encode", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (session_id, data, expires_at, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id)
		DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`,
		session.SessionID, raw, time.Now().UTC().Add(s.ttl),
	)
	if err != nil {
		return storeFailed("put", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE session_id = $1`, sessionID); err != nil {
		return storeFailed("delete", err)
	}
	return nil
}
