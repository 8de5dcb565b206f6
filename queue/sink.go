package queue

import (
	"context"

	"adrija-tours/models"
)

// IntentSink receives validated submit intents
type IntentSink interface {
	// Publish forwards an intent and returns a delivery reference
	Publish(ctx context.Context, intent models.Intent) (string, error)
}
