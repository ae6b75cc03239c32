package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/catalog"
)

// Toast messages sent to the Notifier.
const (
	MsgAdded     = "Added to cart"
	MsgAddFailed = "Failed to add to cart"
)

// Store is the cart-submission capability. Implementations may dispatch
// synchronously or hand the payload off for later processing; a returned
// error means the item was not accepted.
type Store interface {
	AddItem(ctx context.Context, p Payload) error
}

// Notifier is the user-facing toast channel. Calls are fire-and-forget.
type Notifier interface {
	NotifySuccess(ctx context.Context, message string)
	NotifyFailure(ctx context.Context, message string)
}

// Lifecycle is the add-to-cart state of one card.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Submitting
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Result tells the caller what a single AddToCart trigger did.
type Result int

const (
	// ResultAdded: the store accepted the item.
	ResultAdded Result = iota
	// ResultFailed: the store rejected the item; a failure toast was sent.
	ResultFailed
	// ResultSkipped: the product is unavailable, nothing happened.
	ResultSkipped
	// ResultIgnored: a submission was already in flight, nothing happened.
	ResultIgnored
)

func (r Result) String() string {
	switch r {
	case ResultAdded:
		return "added"
	case ResultFailed:
		return "failed"
	case ResultSkipped:
		return "skipped"
	case ResultIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Controller runs the add-to-cart lifecycle for a single card. At most one
// submission is in flight per Controller; triggers while Submitting are
// dropped, not queued.
type Controller struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger

	mu    sync.Mutex
	state Lifecycle
}

func NewController(store Store, notifier Notifier, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() Lifecycle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AddToCart submits product with the selected variant. Unavailable products
// are a no-op. The state is Submitting before the store is called and back to
// Idle once the call settles, whatever the outcome. Store errors are reported
// through the Notifier and never returned.
func (c *Controller) AddToCart(ctx context.Context, product catalog.Record, variant catalog.Variant) Result {
	if !catalog.Derive(product).IsAvailable {
		return ResultSkipped
	}
	if !c.begin() {
		c.logger.Debug("add to cart ignored, submission in flight", zap.Any("product_id", product.ID()))
		return ResultIgnored
	}
	defer c.finish()

	payload := NewPayload(product, variant)
	if err := c.submit(ctx, payload); err != nil {
		c.logger.Warn("add to cart failed",
			zap.Any("product_id", product.ID()),
			zap.String("variant", string(variant)),
			zap.Error(err))
		c.notifier.NotifyFailure(ctx, MsgAddFailed)
		return ResultFailed
	}

	c.logger.Info("added to cart",
		zap.Any("product_id", product.ID()),
		zap.String("variant", string(variant)))
	c.notifier.NotifySuccess(ctx, MsgAdded)
	return ResultAdded
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Submitting {
		return false
	}
	c.state = Submitting
	return true
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
}

// submit turns a panicking store into an ordinary failure.
func (c *Controller) submit(ctx context.Context, p Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cart store panic: %v", r)
		}
	}()
	return c.store.AddItem(ctx, p)
}
