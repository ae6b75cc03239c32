package catalog

import (
	"errors"
	"fmt"
)

// Variant is a user-selectable option of a card. It has no effect on
// availability or price.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSmall   Variant = "small"
	VariantMedium  Variant = "medium"
	VariantLarge   Variant = "large"
)

var ErrUnknownVariant = errors.New("unknown variant")

// VariantOption is one entry of the variant selector.
type VariantOption struct {
	Value Variant `json:"value"`
	Label string  `json:"label"`
}

var variantOptions = []VariantOption{
	{Value: VariantDefault, Label: "Default"},
	{Value: VariantSmall, Label: "Small"},
	{Value: VariantMedium, Label: "Medium"},
	{Value: VariantLarge, Label: "Large"},
}

// Variants returns the selector options in display order.
func Variants() []VariantOption {
	out := make([]VariantOption, len(variantOptions))
	copy(out, variantOptions)
	return out
}

func (v Variant) Valid() bool {
	for _, o := range variantOptions {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ParseVariant maps a selector value to a Variant. An empty value selects the
// default.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return VariantDefault, nil
	}
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return v, nil
}
