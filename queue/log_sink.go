package queue

import (
	"context"

	log "github.com/sirupsen/logrus"

	"adrija-tours/models"
)

// LogSink records intents in the application log. Used when Redis is disabled.
type LogSink struct {
	logger log.FieldLogger
}

// NewLogSink creates a LogSink writing to logger, or the standard logger when nil
func NewLogSink(logger log.FieldLogger) *LogSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogSink{logger: logger}
}

// Ensure LogSink implements IntentSink
var _ IntentSink = (*LogSink)(nil)

// Publish logs the intent and returns its id
func (s *LogSink) Publish(_ context.Context, intent models.Intent) (string, error) {
	s.logger.WithFields(log.Fields{
		"intent_id":   intent.ID,
		"intent_kind": intent.Kind,
		"target":      intent.Target,
		"fields":      intent.Fields,
	}).Info("📨 Intent received")
	return intent.ID, nil
}
