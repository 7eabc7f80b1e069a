package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/model"
)

// FeedService carries timetable change events over Redis Pub/Sub.
type FeedService struct {
	rdb *redis.Client
}

// NewFeedService creates a new FeedService.
func NewFeedService(rdb *redis.Client) *FeedService {
	return &FeedService{rdb: rdb}
}

// Publish sends event to the department's timetable channel.
func (s *FeedService) Publish(ctx context.Context, deptID uuid.UUID, event model.FeedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode feed event: %w", err)
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.TimetableFeedChannel(deptID), payload).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}

// Subscribe opens a subscription to the department's timetable channel.
// The caller must close it.
func (s *FeedService) Subscribe(ctx context.Context, deptID uuid.UUID) *redis.PubSub {
	return s.rdb.Subscribe(ctx, config.CacheKey.TimetableFeedChannel(deptID))
}
