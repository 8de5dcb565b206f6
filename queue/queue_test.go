package queue

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrija-tours/config"
	"adrija-tours/models"
)

func TestLogSink_Publish(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sink := NewLogSink(logger)

	ref, err := sink.Publish(context.Background(), models.Intent{
		ID:     "3f1c",
		Kind:   models.IntentAddToCart,
		Target: "kashmir",
		Fields: map[string]string{"date": "2025-10-05"},
	})
	require.NoError(t, err)
	assert.Equal(t, "3f1c", ref)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, models.IntentAddToCart, entry.Data["intent_kind"])
	assert.Equal(t, "kashmir", entry.Data["target"])
}

func TestRedisSink_PublishFailsWithoutServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedisSink(client, "adrija:intents").Publish(context.Background(), models.Intent{ID: "x", Kind: models.IntentEnquiry})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add intent to Redis stream adrija:intents")
}

func TestNewRedisClient_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.ErrorContains(t, err, "failed to connect to redis")
}
