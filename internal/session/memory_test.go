// internal/session/memory_test.go
package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/models"
)

func testSession(id string) *models.Session {
	s := models.NewSession(id, models.IntentSymptomReporting, "prompt")
	s.AppendUser("سردرد دارم")
	return s
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, apperrors.ErrCodeSessionNotFound, apperrors.CodeOf(err))

	original := testSession("sess-1")
	require.NoError(t, store.Put(ctx, original))

	loaded, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, original.SessionID, loaded.SessionID)
	assert.Len(t, loaded.Conversation, 2)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("sess-2")))

	_, err := store.Get(ctx, "sess-2")
	require.NoError(t, err)

	// Past the TTL the session is gone and the entry is evicted.
	current = current.Add(2 * time.Minute)
	_, err = store.Get(ctx, "sess-2")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Zero(t, store.Len())
}

func TestMemoryStoreSweepOnPut(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("old")))
	current = current.Add(2 * time.Minute)
	require.NoError(t, store.Put(ctx, testSession("new")))

	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreDeleteUnknownIsNoError(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}
