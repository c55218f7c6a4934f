package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

const redisKeyPrefix = "booking:session:"

// RedisStore keeps booking sessions in Redis with a sliding TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a RedisStore
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Save marshals the state and stores it, refreshing the TTL
func (s *RedisStore) Save(ctx context.Context, state model.BookingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+state.SessionID, data, s.ttl).Err(); err != nil {
		s.logger.Error("failed to store booking session",
			zap.String("session_id", state.SessionID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to store booking session: %w", err)
	}

	return nil
}

// Load fetches and unmarshals a session
func (s *RedisStore) Load(ctx context.Context, sessionID string) (model.BookingState, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.BookingState{}, ErrSessionNotFound
		}
		return model.BookingState{}, fmt.Errorf("failed to load booking session: %w", err)
	}

	var state model.BookingState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.BookingState{}, fmt.Errorf("failed to parse booking session: %w", err)
	}

	return state, nil
}

var _ SessionStore = (*RedisStore)(nil)
