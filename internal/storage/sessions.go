package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FeedChannel is the Redis pub/sub channel carrying report events.
const FeedChannel = "laporan:feed"

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// CreateSession stores a new admin session and returns its id.
func (s *Service) CreateSession(ctx context.Context, adminID uint) (string, error) {
	sid := uuid.NewString()
	if err := s.Redis.Set(ctx, sessionKey(sid), adminID, config.SessionTTL).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

// GetSession resolves a session id to the admin it belongs to.
func (s *Service) GetSession(ctx context.Context, sessionID string) (uint, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return 0, ErrSessionNotFound
	}
	val, err := s.Redis.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("read session: %w", err)
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrSessionNotFound
	}
	return uint(id), nil
}

func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	return s.Redis.Del(ctx, sessionKey(sessionID)).Err()
}

// PublishFeedEvent fans a report event out to every subscribed instance.
func (s *Service) PublishFeedEvent(ctx context.Context, event models.FeedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(ctx, FeedChannel, payload).Err()
}

func (s *Service) SubscribeToFeed(ctx context.Context) *redis.PubSub {
	return s.Redis.Subscribe(ctx, FeedChannel)
}
