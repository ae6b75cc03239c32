package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/imrishuroy/go-storefront-cards/internal/catalog"
)

// SelectedVariantKey is the payload key carrying the variant chosen in the card.
const SelectedVariantKey = "selectedVariant"

// Payload is what gets submitted to the cart: a shallow copy of the product
// record plus the selected variant.
type Payload map[string]any

func NewPayload(r catalog.Record, v catalog.Variant) Payload {
	p := make(Payload, len(r)+1)
	for k, val := range r {
		p[k] = val
	}
	p[SelectedVariantKey] = string(v)
	return p
}

// Record returns the product fields of the payload.
func (p Payload) Record() catalog.Record {
	r := make(catalog.Record, len(p))
	for k, v := range p {
		if k == SelectedVariantKey {
			continue
		}
		r[k] = v
	}
	return r
}

func (p Payload) Variant() catalog.Variant {
	s, _ := p[SelectedVariantKey].(string)
	return catalog.Variant(s)
}

// Message is the queued form of a submission, consumed by the worker.
type Message struct {
	LineID         string    `json:"line_id"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	Payload        Payload   `json:"payload"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type ctxKey int

const (
	submissionKeyCtx ctxKey = iota
	correlationIDCtx
)

// WithSubmissionKey attaches the client's idempotency key to ctx. Stores use it
// to derive a stable line id so retried submissions land on the same line.
func WithSubmissionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, submissionKeyCtx, key)
}

func SubmissionKey(ctx context.Context) string {
	s, _ := ctx.Value(submissionKeyCtx).(string)
	return s
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDCtx, id)
}

func CorrelationID(ctx context.Context) string {
	s, _ := ctx.Value(correlationIDCtx).(string)
	return s
}

var lineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront-cards/cart-line"))

// LineID returns the cart line id for a submission in ctx: derived from the
// submission key when there is one, random otherwise.
func LineID(ctx context.Context) string {
	if key := SubmissionKey(ctx); key != "" {
		return uuid.NewSHA1(lineNamespace, []byte(key)).String()
	}
	return uuid.NewString()
}
