package service

import (
	"context"
	"encoding/json"
	"log"
)

const (
	QueueUserSignedUp  = "user.signed_up"
	QueueQuizCreated   = "quiz.created"
	QueueQuizCompleted = "quiz.completed"
)

type EventPublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// publishEvent is fire-and-forget: event delivery is best effort and
// never blocks or fails the calling operation.
func publishEvent(ctx context.Context, publisher EventPublisher, queue string, event any) {
	if publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", queue, err)
		return
	}

	if err := publisher.Publish(ctx, queue, data); err != nil {
		log.Printf("Failed to publish %s event: %v", queue, err)
	}
}
