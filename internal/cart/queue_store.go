package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Publisher sends a message body to the cart queue.
type Publisher interface {
	SendCartMessage(ctx context.Context, messageBody string, attributes map[string]string) error
}

// QueueStore accepts submissions by enqueueing them; the worker persists them.
type QueueStore struct {
	publisher Publisher
	nowFunc   func() time.Time
}

func NewQueueStore(p Publisher) *QueueStore {
	return &QueueStore{
		publisher: p,
		nowFunc:   time.Now,
	}
}

func (s *QueueStore) AddItem(ctx context.Context, p Payload) error {
	msg := Message{
		LineID:         LineID(ctx),
		IdempotencyKey: SubmissionKey(ctx),
		CorrelationID:  CorrelationID(ctx),
		Payload:        p,
		SubmittedAt:    s.nowFunc().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal cart message: %w", err)
	}

	attrs := map[string]string{
		"line_id":         msg.LineID,
		"idempotency_key": msg.IdempotencyKey,
		"correlation_id":  msg.CorrelationID,
		"variant":         string(p.Variant()),
	}
	if err := s.publisher.SendCartMessage(ctx, string(body), attrs); err != nil {
		return fmt.Errorf("enqueue cart line %s: %w", msg.LineID, err)
	}
	return nil
}
