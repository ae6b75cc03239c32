package catalog

import (
	"encoding/json"
	"math"
	"strconv"
)

// Record keys read by the derivation.
const (
	KeyID            = "id"
	KeyTitle         = "title"
	KeyName          = "name"
	KeyPrice         = "price"
	KeyOriginalPrice = "originalPrice"
	KeyAvailable     = "available"
	KeyImage         = "image"
	KeyImageURL      = "imageUrl"
)

// Record is a raw product record as supplied by the storefront shell, usually
// decoded from JSON. Values keep the type they arrived with: an id may be a
// string or a number and the price may be a numeric string. Unknown keys are
// carried along untouched. Nothing in this package mutates a Record.
type Record map[string]any

// ID returns the raw id exactly as given.
func (r Record) ID() any { return r[KeyID] }

// Key returns the raw id rendered as text, as used in detail routes.
func (r Record) Key() string { return displayString(r.ID()) }

// Title returns the raw title rendered as text.
func (r Record) Title() string { return displayString(r[KeyTitle]) }

// displayString renders a scalar record value the way it is shown verbatim in
// the card (price slot, route key).
func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truthy reports whether a loosely typed record value counts as set.
// Zero, NaN, the empty string, false and nil do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, ok := parseNumber(t)
		return ok && f != 0
	case float64, float32, int, int32, int64, uint32, uint64:
		f, ok := parseNumber(t)
		return ok && f != 0
	}
	return true
}
