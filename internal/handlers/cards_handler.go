package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/card"
	"github.com/imrishuroy/go-storefront-cards/internal/cart"
	"github.com/imrishuroy/go-storefront-cards/internal/catalog"
	"github.com/imrishuroy/go-storefront-cards/internal/idempotency"
	"github.com/imrishuroy/go-storefront-cards/internal/metrics"
	"github.com/imrishuroy/go-storefront-cards/internal/notify"
	"github.com/imrishuroy/go-storefront-cards/internal/validation"
)

// IdempotencyStore is the part of idempotency.Store used by the add-to-cart route.
type IdempotencyStore interface {
	CreateIfNotExists(ctx context.Context, key, productKey, lineID string) (bool, error)
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	MarkDone(ctx context.Context, key, responseBody string, responseStatus int) error
	MarkFailed(ctx context.Context, key, note string) error
}

// HandlerConfig groups dependencies for the card routes.
type HandlerConfig struct {
	Store       cart.Store
	Notifier    cart.Notifier    // process-wide toast sinks, optional
	Idempotency IdempotencyStore // nil disables Idempotency-Key handling
	Metrics     *metrics.Registry
	Logger      *zap.Logger
}

// AddToCartResponse is returned by POST /cards/add.
type AddToCartResponse struct {
	Result          string          `json:"result"`
	State           string          `json:"state"`
	SelectedVariant catalog.Variant `json:"selected_variant"`
	Toasts          []notify.Toast  `json:"toasts"`
}

// RegisterCardRoutes registers the card API.
func RegisterCardRoutes(r *gin.Engine, cfg HandlerConfig) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	v := validation.New()

	r.GET("/variants", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"variants": catalog.Variants()})
	})

	r.POST("/cards", func(c *gin.Context) {
		var req validation.RenderCardRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		cd := card.New(req.Product, cart.NewController(cfg.Store, cfg.Notifier, cfg.Logger),
			card.WithImageOverride(req.ImageURL))
		if req.SelectedVariant != "" {
			// an unavailable card keeps the default; the selector is disabled anyway
			_ = cd.Select(catalog.Variant(req.SelectedVariant))
		}
		if req.ImageFailed && cd.ImageLoadFailed() {
			cfg.Metrics.ImageFallbacks.Inc()
		}

		cfg.Metrics.CardsRendered.Inc()
		c.JSON(http.StatusOK, cd.Snapshot())
	})

	r.POST("/cards/add", func(c *gin.Context) {
		var req validation.AddToCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		variant, err := catalog.ParseVariant(req.SelectedVariant)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_variant"})
			return
		}

		correlationID := c.GetHeader("X-Request-Id")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		ctx := cart.WithCorrelationID(c.Request.Context(), correlationID)
		logger := cfg.Logger.With(zap.String("correlation_id", correlationID))

		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey != "" {
			ctx = cart.WithSubmissionKey(ctx, idempKey)
		}
		tracked := idempKey != "" && cfg.Idempotency != nil
		if tracked {
			created, err := cfg.Idempotency.CreateIfNotExists(ctx, idempKey, req.Product.Key(), cart.LineID(ctx))
			if err != nil {
				logger.Error("idempotency check failed", zap.String("idempotency_key", idempKey), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "idempotency_check_failed"})
				return
			}
			if !created {
				cfg.Metrics.IdempotentReplay.Inc()
				replay(ctx, c, cfg.Idempotency, idempKey)
				return
			}
		}

		recorder := &notify.Recorder{}
		cd := card.New(req.Product, cart.NewController(cfg.Store, notify.Multi{cfg.Notifier, recorder}, logger))
		if err := cd.Select(variant); err != nil && !errors.Is(err, card.ErrSelectionDisabled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_variant"})
			return
		}

		start := time.Now()
		result := cd.AddToCart(ctx)
		cfg.Metrics.SubmitLatencySec.Observe(time.Since(start).Seconds())
		cfg.Metrics.Submissions.WithLabelValues(result.String()).Inc()

		resp := AddToCartResponse{
			Result:          result.String(),
			State:           cd.State().String(),
			SelectedVariant: cd.SelectedVariant(),
			Toasts:          recorder.Toasts(),
		}

		if tracked {
			if result == cart.ResultFailed {
				// a failed add needs a new explicit action, i.e. a new key
				if err := cfg.Idempotency.MarkFailed(ctx, idempKey, "cart_store_failed"); err != nil {
					logger.Warn("mark idempotency failed", zap.Error(err))
				}
			} else {
				body, _ := json.Marshal(resp)
				if err := cfg.Idempotency.MarkDone(ctx, idempKey, string(body), http.StatusOK); err != nil {
					logger.Warn("mark idempotency done", zap.Error(err))
				}
			}
		}

		c.JSON(http.StatusOK, resp)
	})
}

// replay answers a duplicate Idempotency-Key from the stored record.
func replay(ctx context.Context, c *gin.Context, store IdempotencyStore, key string) {
	rec, err := store.Get(ctx, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "idempotency_check_failed", "detail": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "idempotency_record_missing"})
		return
	}
	switch rec.Status {
	case idempotency.StatusDone:
		if rec.ResponseBody != "" && json.Valid([]byte(rec.ResponseBody)) {
			status := rec.ResponseStatus
			if status == 0 {
				status = http.StatusOK
			}
			c.Data(status, "application/json", []byte(rec.ResponseBody))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "already submitted"})
	case idempotency.StatusInProgress:
		c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress"})
	case idempotency.StatusFailed:
		c.JSON(http.StatusConflict, gin.H{"error": "previous_attempt_failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown_idempotency_status"})
	}
}
