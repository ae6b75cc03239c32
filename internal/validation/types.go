package validation

import "github.com/imrishuroy/go-storefront-cards/internal/catalog"

// RenderCardRequest is the payload for POST /cards
type RenderCardRequest struct {
	Product         catalog.Record `json:"product" validate:"required"`
	ImageURL        string         `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	SelectedVariant string         `json:"selected_variant,omitempty" validate:"omitempty,variant"`
	ImageFailed     bool           `json:"image_failed,omitempty"` // the shell saw the primary image fail to load
}

// AddToCartRequest is the payload for POST /cards/add
type AddToCartRequest struct {
	Product         catalog.Record `json:"product" validate:"required"`
	SelectedVariant string         `json:"selected_variant,omitempty" validate:"omitempty,variant"` // empty selects default
}
