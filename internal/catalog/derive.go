package catalog

import (
	"math"
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

// Placeholder merchandising rules for records that carry no explicit flags.
// They are part of the card's visible behaviour and must stay exactly as is.
const (
	unavailableEvery = 7
	discountedEvery  = 5
)

var syntheticMarkup = decimal.RequireFromString("1.3")

// View is the display-ready state derived from one Record. It is recomputed
// from scratch whenever the record changes and is never persisted.
type View struct {
	// NumericID is nil when the id is missing or of an unsupported type.
	NumericID   *float64
	IsAvailable bool
	// BasePrice is nil when the price cannot be parsed.
	BasePrice *float64
	// DisplayOriginalPrice is the struck-through price with two decimals. When
	// set it always reads as a value strictly greater than BasePrice.
	DisplayOriginalPrice *string

	// DisplayPrice is the raw price shown verbatim in the primary price slot.
	DisplayPrice string
	Title        string
	AltText      string
	// RouteKey is the raw id, same type as in the record.
	RouteKey   any
	DetailPath string
}

// Derive computes the View for a record. It is pure: equal records give equal
// views, and no input makes it panic.
func Derive(r Record) View {
	v := View{
		DisplayPrice: displayString(r[KeyPrice]),
		Title:        TruncateTitle(r.Title()),
		AltText:      AltText(r),
		RouteKey:     r.ID(),
		DetailPath:   DetailPath(r),
	}

	id, idKnown := ComputeNumericID(r.ID())
	if idKnown {
		v.NumericID = &id
	}
	v.IsAvailable = availability(r, id, idKnown)

	if base, ok := parseNumber(r[KeyPrice]); ok {
		v.BasePrice = &base
		v.DisplayOriginalPrice = originalPrice(r, base, id, idKnown)
	}
	return v
}

// ComputeNumericID maps a raw id to a number. Finite numbers pass through,
// numeric strings are parsed, other strings are hashed into [0, 2^32). It
// returns false for a missing id or any other type.
func ComputeNumericID(id any) (float64, bool) {
	if f, ok := id.(float64); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	if f, ok := parseNumber(id); ok {
		return f, true
	}
	if s, ok := id.(string); ok {
		return float64(hashString(s)), true
	}
	return 0, false
}

// hashString folds the UTF-16 code units of s with h = h*31 + unit mod 2^32.
func hashString(s string) uint32 {
	var h uint32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(unit)
	}
	return h
}

// An explicit "available" key always wins; only boolean false disables.
func availability(r Record, id float64, idKnown bool) bool {
	if flag, present := r[KeyAvailable]; present {
		b, isBool := flag.(bool)
		return !isBool || b
	}
	if !idKnown {
		return true
	}
	return math.Mod(id, unavailableEvery) != 0
}

// originalPrice picks the struck-through price: a real originalPrice above
// base first, otherwise the synthetic markup for every fifth id.
func originalPrice(r Record, base, id float64, idKnown bool) *string {
	if math.IsInf(base, 0) {
		return nil
	}
	baseDec := decimal.NewFromFloat(base)

	var (
		chosen decimal.Decimal
		found  bool
	)
	if raw := r[KeyOriginalPrice]; truthy(raw) {
		if op, ok := parseNumber(raw); ok && !math.IsInf(op, 0) && op > base {
			chosen, found = decimal.NewFromFloat(op), true
		}
	}
	if !found && idKnown && math.Mod(id, discountedEvery) == 0 {
		chosen, found = baseDec.Mul(syntheticMarkup).Round(2), true
	}
	if !found {
		return nil
	}

	chosen = chosen.Round(2)
	if !chosen.GreaterThan(baseDec) {
		return nil
	}
	s := chosen.StringFixed(2)
	return &s
}
