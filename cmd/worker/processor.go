package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/aws"
	"github.com/imrishuroy/go-storefront-cards/internal/cart"
	"github.com/imrishuroy/go-storefront-cards/internal/idempotency"
)

// Processor persists queued cart submissions.
type Processor struct {
	lines  *cart.DynamoStore
	idemp  *idempotency.Store // nil when no idempotency table is configured
	logger *zap.Logger
}

// NewProcessor wires the processor stores onto clients.
func NewProcessor(clients *aws.AWSClients, cartTable string, idemp *idempotency.Store, logger *zap.Logger) *Processor {
	return &Processor{
		lines:  cart.NewDynamoStore(clients.DynamoDB, cartTable),
		idemp:  idemp,
		logger: logger,
	}
}

// Handle processes an SQS batch. Any error fails the batch so SQS redelivers
// it, and after too many attempts moves it to the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	p.logger.Info("received cart messages", zap.Int("count", len(ev.Records)))
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.logger.Error("worker error", zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg cart.Message
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if msg.LineID == "" || msg.Payload == nil {
		return fmt.Errorf("invalid message body: missing line_id or payload")
	}

	logger := p.logger.With(
		zap.String("line_id", msg.LineID),
		zap.String("idempotency_key", msg.IdempotencyKey),
		zap.String("correlation_id", msg.CorrelationID))

	submittedAt := msg.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	err := p.lines.Put(ctx, cart.NewItem(msg.LineID, msg.Payload, submittedAt))
	switch {
	case errors.Is(err, cart.ErrDuplicateLine):
		// redelivery of a line that is already stored
		logger.Info("cart line already stored")
	case err != nil:
		return fmt.Errorf("store cart line %s: %w", msg.LineID, err)
	default:
		logger.Info("cart line stored", zap.String("variant", string(msg.Payload.Variant())))
	}

	if msg.IdempotencyKey == "" || p.idemp == nil {
		return nil
	}
	return p.settle(ctx, msg)
}

// settle marks the submission DONE if the API did not get to it. A record the
// API already settled keeps its stored response.
func (p *Processor) settle(ctx context.Context, msg cart.Message) error {
	rec, err := p.idemp.Get(ctx, msg.IdempotencyKey)
	if err != nil {
		return fmt.Errorf("read idempotency record: %w", err)
	}
	if rec == nil || rec.Status != idempotency.StatusInProgress {
		return nil
	}
	body := fmt.Sprintf(`{"result":"added","line_id":%q}`, msg.LineID)
	if err := p.idemp.MarkDone(ctx, msg.IdempotencyKey, body, 200); err != nil {
		return fmt.Errorf("failed to update idempotency: %w", err)
	}
	return nil
}
