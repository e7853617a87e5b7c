// internal/session/postgres_test.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salamatbot/internal/models"
)

func newPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db, time.Hour), mock
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newPostgresStore(t)
	session := testSession("sess-1")
	raw, err := json.Marshal(session)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM chat_sessions WHERE session_id = $1 AND expires_at > now()`)).
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(raw))

	loaded, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", loaded.SessionID)
	assert.Equal(t, models.IntentSymptomReporting, loaded.Intent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissing(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM chat_sessions`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := store.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePutUpserts(t *testing.T) {
	store, mock := newPostgresStore(t)
	session := testSession("sess-2")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO chat_sessions`)).
		WithArgs("sess-2", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Put(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM chat_sessions WHERE session_id = $1`)).
		WithArgs("sess-3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "sess-3"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreQueryFailure(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM chat_sessions`)).
		WithArgs("sess-4").
		WillReturnError(errors.New("connection lost"))

	_, err := store.Get(context.Background(), "sess-4")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestPostgresStoreEnsureSchema(t *testing.T) {
	store, mock := newPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS chat_sessions`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
