// Package card is the view model behind one rendered product card. It owns
// the state that would otherwise live in the rendering layer: the derived
// view, the selected variant, the image source and the add-to-cart lifecycle.
package card

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/imrishuroy/go-storefront-cards/internal/cart"
	"github.com/imrishuroy/go-storefront-cards/internal/catalog"
)

// ErrSelectionDisabled is returned when changing the variant of an
// unavailable product.
var ErrSelectionDisabled = errors.New("variant selection disabled: product unavailable")

// Button labels.
const (
	LabelAddToCart  = "Add to Cart"
	LabelAdding     = "Adding..."
	LabelOutOfStock = "Out of Stock"
)

// Button is the presentation of the card's action button.
type Button struct {
	Label      string `json:"label"`
	Disabled   bool   `json:"disabled"`
	OutOfStock bool   `json:"out_of_stock"`
}

// Card is safe for concurrent use.
type Card struct {
	controller    *cart.Controller
	imageOverride string

	mu      sync.Mutex
	record  catalog.Record
	view    catalog.View
	variant catalog.Variant
	image   *catalog.Image
}

type Option func(*Card)

// WithImageOverride sets an image URL that takes priority over the record's.
func WithImageOverride(url string) Option {
	return func(c *Card) { c.imageOverride = url }
}

func New(r catalog.Record, controller *cart.Controller, opts ...Option) *Card {
	c := &Card{
		controller: controller,
		variant:    catalog.VariantDefault,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.load(r)
	return c
}

// Update replaces the product record. The view is derived again and the image
// starts over from the new primary source; the selected variant is kept.
func (c *Card) Update(r catalog.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(r)
}

func (c *Card) load(r catalog.Record) {
	c.record = r
	c.view = catalog.Derive(r)
	c.image = catalog.NewImage(catalog.ResolveImageSource(c.imageOverride, r))
}

func (c *Card) View() catalog.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Card) SelectedVariant() catalog.Variant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.variant
}

// Select changes the selected variant.
func (c *Card) Select(v catalog.Variant) error {
	if !v.Valid() {
		return catalog.ErrUnknownVariant
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.IsAvailable {
		return ErrSelectionDisabled
	}
	c.variant = v
	return nil
}

func (c *Card) ImageSource() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image.Source()
}

// ImageLoadFailed handles a load error of the card image and reports whether
// the source changed.
func (c *Card) ImageLoadFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image.OnLoadError()
}

// AddToCart submits the current record with the variant selected right now.
func (c *Card) AddToCart(ctx context.Context) cart.Result {
	c.mu.Lock()
	record, variant := c.record, c.variant
	c.mu.Unlock()
	return c.controller.AddToCart(ctx, record, variant)
}

func (c *Card) State() cart.Lifecycle { return c.controller.State() }

func (c *Card) Button() Button {
	available := c.View().IsAvailable
	switch {
	case !available:
		return Button{Label: LabelOutOfStock, Disabled: true, OutOfStock: true}
	case c.controller.State() == cart.Submitting:
		return Button{Label: LabelAdding, Disabled: true}
	default:
		return Button{Label: LabelAddToCart}
	}
}

// Snapshot is the JSON rendering of a card.
type Snapshot struct {
	RouteKey             any                     `json:"route_key"`
	DetailPath           string                  `json:"detail_path"`
	Title                string                  `json:"title"`
	ImageSource          string                  `json:"image_source"`
	ImageAlt             string                  `json:"image_alt"`
	DisplayPrice         string                  `json:"display_price"`
	DisplayOriginalPrice *string                 `json:"display_original_price"`
	NumericID            *float64                `json:"numeric_id"`
	Available            bool                    `json:"available"`
	OutOfStockBadge      bool                    `json:"out_of_stock_badge"`
	SelectedVariant      catalog.Variant         `json:"selected_variant"`
	VariantDisabled      bool                    `json:"variant_disabled"`
	Variants             []catalog.VariantOption `json:"variants"`
	Button               Button                  `json:"button"`
	State                string                  `json:"state"`
}

func (c *Card) Snapshot() Snapshot {
	c.mu.Lock()
	view, variant, src := c.view, c.variant, c.image.Source()
	c.mu.Unlock()

	return Snapshot{
		RouteKey:             view.RouteKey,
		DetailPath:           view.DetailPath,
		Title:                view.Title,
		ImageSource:          src,
		ImageAlt:             view.AltText,
		DisplayPrice:         view.DisplayPrice,
		DisplayOriginalPrice: view.DisplayOriginalPrice,
		NumericID:            finite(view.NumericID),
		Available:            view.IsAvailable,
		OutOfStockBadge:      !view.IsAvailable,
		SelectedVariant:      variant,
		VariantDisabled:      !view.IsAvailable,
		Variants:             catalog.Variants(),
		Button:               c.Button(),
		State:                c.controller.State().String(),
	}
}

// JSON has no infinities; those ids render as null.
func finite(f *float64) *float64 {
	if f == nil || math.IsInf(*f, 0) {
		return nil
	}
	return f
}
