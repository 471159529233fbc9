package assistant

import (
	"context"
	"encoding/json"
	"time"

	"chatia/models"

	"github.com/go-redis/redis/v8"
)

const dialogStatePrefix = "dlg:st:"

// StateStore keeps conversation state for callers that cannot carry it
// between turns (telephony webhooks). Entries expire with the TTL; an
// unknown session simply starts fresh.
type StateStore interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationState, error)
	Set(ctx context.Context, sessionID string, state *models.ConversationState) error
	Clear(ctx context.Context, sessionID string) error
}

type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) Get(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	key := dialogStatePrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.ConversationState{}, nil
	}
	if err != nil {
		return nil, err
	}
	var state models.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStateStore) Set(ctx context.Context, sessionID string, state *models.ConversationState) error {
	key := dialogStatePrefix + sessionID
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisStateStore) Clear(ctx context.Context, sessionID string) error {
	key := dialogStatePrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
