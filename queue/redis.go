package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"adrija-tours/config"
	"adrija-tours/models"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.Database,
		DialTimeout: 5 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	log.Infof("✓ Connected to Redis at %s", cfg.Addr)
	return client, nil
}

// RedisSink appends intents to a Redis stream for the booking backend to consume
type RedisSink struct {
	client *redis.Client
	stream string
}

// NewRedisSink creates a new RedisSink
func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	return &RedisSink{client: client, stream: stream}
}

// Ensure RedisSink implements IntentSink
var _ IntentSink = (*RedisSink)(nil)

// Publish adds the intent to the stream and returns the message id
func (s *RedisSink) Publish(ctx context.Context, intent models.Intent) (string, error) {
	data, err := json.Marshal(intent)
	if err != nil {
		return "", fmt.Errorf("failed to serialize intent: %w", err)
	}

	// Fields: intent_kind, intent_id, intent_data
	messageID, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"intent_kind": string(intent.Kind),
			"intent_id":   intent.ID,
			"intent_data": string(data),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add intent to Redis stream %s: %w", s.stream, err)
	}

	log.Debugf("Added intent %s (%s) to stream %s with message ID: %s", intent.ID, intent.Kind, s.stream, messageID)
	return messageID, nil
}
