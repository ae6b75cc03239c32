package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/aws"
	"github.com/imrishuroy/go-storefront-cards/internal/config"
	"github.com/imrishuroy/go-storefront-cards/internal/idempotency"
	"github.com/imrishuroy/go-storefront-cards/internal/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.RunLocal)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	clients, err := aws.NewAWSClients(context.Background(), cfg.AWS)
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	var idemp *idempotency.Store
	if cfg.IdempotencyTable != "" {
		idemp = idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
	}
	p := NewProcessor(clients, cfg.CartItemsTable, idemp, logger)

	// If RUN_LOCAL=true, process a single simulated SQS event and exit.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"line_id":"local-line-1","idempotency_key":"local-key-1","payload":{"id":"local-1","title":"Local product","price":"9.99","selectedVariant":"medium"}}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{MessageId: "local-1", Body: testBody},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			logger.Fatal("local handler error", zap.Error(err))
		}
		return
	}

	lambda.Start(p.Handle)
}
