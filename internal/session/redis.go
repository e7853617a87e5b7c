// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"salamatbot/internal/models"
)

const redisKeyPrefix = "salamatbot:session:"

// RedisStore persists sessions as JSON values with a server-side TTL. Every
// Put refreshes the TTL so active conversations never expire mid-interview.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) Put(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return storeFailed("encode", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+session.SessionID, raw, s.ttl).Err(); err != nil {
		return storeFailed("put", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return storeFailed("delete", err)
	}
	return nil
}
