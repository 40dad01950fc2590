package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/chessnerd435/study-app/pkg/messaging"
)

type WelcomeSender interface {
	SendWelcome(email, displayName string) error
}

// Notifier consumes application events off RabbitMQ. Delivery is best
// effort end to end: a failed email is logged and the message acked,
// never retried.
type Notifier struct {
	rabbit *messaging.RabbitMQClient
	email  WelcomeSender
}

func NewNotifier(rabbit *messaging.RabbitMQClient, email WelcomeSender) *Notifier {
	return &Notifier{
		rabbit: rabbit,
		email:  email,
	}
}

func (n *Notifier) Start(ctx context.Context) {
	go n.consumeQueue(ctx, QueueUserSignedUp, n.handleUserSignedUp)
	go n.consumeQueue(ctx, QueueQuizCompleted, n.handleQuizCompleted)

	log.Println("All RabbitMQ consumers started")
}

func (n *Notifier) consumeQueue(ctx context.Context, queueName string, handler func(context.Context, []byte) error) {
	msgs, err := n.rabbit.Consume(queueName)
	if err != nil {
		log.Printf("Failed to start consumer for queue %s: %v", queueName, err)
		return
	}

	log.Printf("Started consumer for queue: %s", queueName)

	for msg := range msgs {
		if err := handler(ctx, msg.Body); err != nil {
			log.Printf("Error handling message from %s: %v", queueName, err)
		}
		msg.Ack(false)
	}
}

func (n *Notifier) handleUserSignedUp(ctx context.Context, data []byte) error {
	var event struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}

	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	log.Printf("Sending welcome email to %s", event.Email)
	return n.email.SendWelcome(event.Email, event.DisplayName)
}

func (n *Notifier) handleQuizCompleted(ctx context.Context, data []byte) error {
	var event struct {
		AttemptID string `json:"attempt_id"`
		QuizID    string `json:"quiz_id"`
		UserID    string `json:"user_id"`
		Score     int    `json:"score"`
		Total     int    `json:"total"`
		XPEarned  int    `json:"xp_earned"`
	}

	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	log.Printf("Quiz %s completed by %q: %d/%d, %d xp", event.QuizID, event.UserID, event.Score, event.Total, event.XPEarned)
	return nil
}
