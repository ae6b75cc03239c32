package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-storefront-cards/internal/catalog"
)

// New returns a validator with the card request rules registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("variant", validateVariant)

	v.RegisterStructValidation(renderCardStructValidation, RenderCardRequest{})
	v.RegisterStructValidation(addToCartStructValidation, AddToCartRequest{})

	return v
}

func validateVariant(fl validatorv10.FieldLevel) bool {
	return catalog.Variant(fl.Field().String()).Valid()
}

func renderCardStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(RenderCardRequest)
	checkProduct(sl, req.Product)
}

func addToCartStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(AddToCartRequest)
	checkProduct(sl, req.Product)
}

// checkProduct enforces the record's required keys. Their values stay loosely
// typed; the derivation copes with odd ones.
func checkProduct(sl validatorv10.StructLevel, r catalog.Record) {
	if r == nil {
		return // reported by the required tag
	}
	for _, key := range []string{catalog.KeyID, catalog.KeyTitle, catalog.KeyPrice} {
		if v, ok := r[key]; !ok || v == nil {
			sl.ReportError(r, "product."+key, "Product["+key+"]", "product_"+key+"_required", "")
		}
	}
}
