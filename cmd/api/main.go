package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/aws"
	"github.com/imrishuroy/go-storefront-cards/internal/cart"
	"github.com/imrishuroy/go-storefront-cards/internal/config"
	"github.com/imrishuroy/go-storefront-cards/internal/handlers"
	"github.com/imrishuroy/go-storefront-cards/internal/idempotency"
	"github.com/imrishuroy/go-storefront-cards/internal/logging"
	"github.com/imrishuroy/go-storefront-cards/internal/metrics"
	"github.com/imrishuroy/go-storefront-cards/internal/notify"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	handlers.RegisterCardRoutes(r, cfg)

	return r
}

// newCartStore enqueues submissions when a queue is configured and writes
// them straight to the cart items table otherwise.
func newCartStore(clients *aws.AWSClients, cfg config.Config) cart.Store {
	if cfg.QueueURL != "" {
		return cart.NewQueueStore(aws.NewPublisher(clients.SQS, cfg.QueueURL))
	}
	return cart.NewDynamoStore(clients.DynamoDB, cfg.CartItemsTable)
}

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

	reg := metrics.NewRegistry()
	hcfg := handlers.HandlerConfig{
		Store: newCartStore(clients, cfg),
		Notifier: notify.Multi{
			notify.LogSink{Logger: logger},
			notify.MetricsSink{Metrics: reg},
			notify.NewCloudWatchSink(clients.CloudWatch, cfg.MetricsNamespace, logger),
		},
		Metrics: reg,
		Logger:  logger,
	}
	if cfg.IdempotencyTable != "" {
		hcfg.Idempotency = idempotency.NewStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
	}

	r := setupRouter(hcfg)

	// if RUN_LOCAL is "true", run a local HTTP server for development.
	if cfg.RunLocal {
		logger.Info("running local server", zap.String("addr", cfg.ListenAddr))
		if err := r.Run(cfg.ListenAddr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
