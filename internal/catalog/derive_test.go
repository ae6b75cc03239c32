package catalog

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestComputeNumericID(t *testing.T) {
	cases := []struct {
		name   string
		id     any
		want   float64
		wantOK bool
	}{
		{"finite float", 42.0, 42, true},
		{"int", 10, 10, true},
		{"negative", -14.0, -14, true},
		{"numeric string", "42", 42, true},
		{"padded numeric string", "  7 ", 7, true},
		{"empty string", "", 0, true},
		{"hex string", "0x1F", 31, true},
		{"exponent string", "1e3", 1000, true},
		{"fraction string", "2.5", 2.5, true},
		{"json number", json.Number("15"), 15, true},
		{"hashed string", "abc", 96354, true},
		{"hashed single char", "a", 97, true},
		{"hash wraps unsigned", "Hello World", 3432422020, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"object", map[string]any{"x": 1}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ComputeNumericID(tc.id)
			if ok != tc.wantOK {
				t.Fatalf("ok: expected %v, got %v", tc.wantOK, ok)
			}
			if ok && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestComputeNumericID_InfinityString(t *testing.T) {
	got, ok := ComputeNumericID("Infinity")
	if !ok || !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v ok=%v", got, ok)
	}
}

func TestComputeNumericID_NonNumericStringsHashIntoUint32Range(t *testing.T) {
	ids := []string{"12abc", "sku-001", "😀", strings.Repeat("z", 500), "0x", "0xZZ", "nan", "inf", "1_000"}
	for _, id := range ids {
		got, ok := ComputeNumericID(id)
		if !ok {
			t.Fatalf("%q: expected a hash", id)
		}
		if got < 0 || got >= 1<<32 || got != math.Trunc(got) {
			t.Fatalf("%q: hash %v out of range", id, got)
		}
		if got != float64(hashString(id)) {
			t.Fatalf("%q: expected hash %d, got %v", id, hashString(id), got)
		}
	}
}

func TestDerive_Deterministic(t *testing.T) {
	records := []Record{
		{"id": 10, "price": 100},
		{"id": "sku-77", "price": "19.99", "title": "Mug"},
		{"id": 7, "price": 12.5, "originalPrice": 20, "available": true},
		{"price": "n/a"},
	}
	for i, r := range records {
		a, b := Derive(r), Derive(r)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("record %d: derivation not deterministic: %+v vs %+v", i, a, b)
		}
	}
}

func TestDerive_AvailabilityPrecedence(t *testing.T) {
	cases := []struct {
		name string
		r    Record
		want bool
	}{
		{"explicit false beats id rule", Record{"available": false, "id": 10}, false},
		{"explicit true beats id rule", Record{"available": true, "id": 7}, true},
		{"present non-bool counts as available", Record{"available": "false", "id": 14}, true},
		{"present nil counts as available", Record{"available": nil, "id": 14}, true},
		{"absent, id multiple of seven", Record{"id": 14}, false},
		{"absent, zero id", Record{"id": 0}, false},
		{"absent, negative multiple of seven", Record{"id": -21}, false},
		{"absent, id not multiple of seven", Record{"id": 10}, true},
		{"absent, unknown id", Record{"id": true}, true},
		{"absent, missing id", Record{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Derive(tc.r).IsAvailable; got != tc.want {
				t.Fatalf("expected available=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestDerive_FallbackDiscount(t *testing.T) {
	v := Derive(Record{"id": 10, "price": 100})
	if !v.IsAvailable {
		t.Fatalf("expected id 10 to be available")
	}
	if v.DisplayOriginalPrice == nil || *v.DisplayOriginalPrice != "130.00" {
		t.Fatalf("expected original price 130.00, got %v", v.DisplayOriginalPrice)
	}
	if v.BasePrice == nil || *v.BasePrice != 100 {
		t.Fatalf("expected base price 100, got %v", v.BasePrice)
	}
}

func TestDerive_UnavailableByID(t *testing.T) {
	v := Derive(Record{"id": 14, "price": 50})
	if v.IsAvailable {
		t.Fatalf("expected id 14 to be unavailable")
	}
	if v.DisplayOriginalPrice != nil {
		t.Fatalf("expected no discount for id 14, got %s", *v.DisplayOriginalPrice)
	}
}

func TestDerive_OriginalPrice(t *testing.T) {
	cases := []struct {
		name string
		r    Record
		want string // "" means no original price
	}{
		{"explicit original above base", Record{"id": 1, "price": 80, "originalPrice": 99.5}, "99.50"},
		{"explicit original as string", Record{"id": 1, "price": "80", "originalPrice": "120"}, "120.00"},
		{"explicit original not above base", Record{"id": 1, "price": 80, "originalPrice": 80}, ""},
		{"explicit original below base falls back to synthetic", Record{"id": 5, "price": 10, "originalPrice": 5}, "13.00"},
		{"explicit original wins over synthetic", Record{"id": 5, "price": 10, "originalPrice": 50}, "50.00"},
		{"zero original is ignored", Record{"id": 1, "price": 10, "originalPrice": 0}, ""},
		{"synthetic rounds half up", Record{"id": 25, "price": "19.99"}, "25.99"},
		{"synthetic for hashed string id", Record{"id": "x", "price": 10}, "13.00"}, // "x" hashes to 120
		{"no synthetic for hashed id off the rule", Record{"id": "y", "price": 10}, ""},
		{"unparseable price suppresses everything", Record{"id": 10, "price": "abc", "originalPrice": 200}, ""},
		{"missing price suppresses everything", Record{"id": 10}, ""},
		{"original that rounds to base is dropped", Record{"id": 1, "price": 10, "originalPrice": 10.001}, ""},
		{"synthetic on zero price is dropped", Record{"id": 5, "price": 0}, ""},
		{"synthetic on a cent is dropped", Record{"id": 5, "price": 0.01}, ""},
		{"synthetic on negative price is dropped", Record{"id": 5, "price": -10}, ""},
		{"infinite price is ignored", Record{"id": 5, "price": "Infinity"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.r).DisplayOriginalPrice
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected no original price, got %s", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, got)
			}
		})
	}
}

func TestDerive_OriginalPriceAlwaysAboveBase(t *testing.T) {
	prices := []any{0, 0.01, 0.02, 1, 3.33, 9.99, 10, 19.995, 100, 1234.567, "7.77", "abc", -5}
	originals := []any{nil, 0, 0.01, 10.001, 10.004, 10.005, 20, "30", "x"}
	for id := 0; id < 40; id++ {
		for _, p := range prices {
			for _, op := range originals {
				r := Record{"id": id, "price": p}
				if op != nil {
					r["originalPrice"] = op
				}
				v := Derive(r)
				if v.DisplayOriginalPrice == nil {
					continue
				}
				if v.BasePrice == nil {
					t.Fatalf("%v: original price without a base price", r)
				}
				got, err := strconv.ParseFloat(*v.DisplayOriginalPrice, 64)
				if err != nil {
					t.Fatalf("%v: unparseable original price %q", r, *v.DisplayOriginalPrice)
				}
				if got <= *v.BasePrice {
					t.Fatalf("%v: original %v not above base %v", r, got, *v.BasePrice)
				}
			}
		}
	}
}

func TestDerive_MalformedPriceShownVerbatim(t *testing.T) {
	v := Derive(Record{"id": 3, "price": "call us"})
	if v.BasePrice != nil {
		t.Fatalf("expected nil base price, got %v", *v.BasePrice)
	}
	if v.DisplayPrice != "call us" {
		t.Fatalf("expected raw price, got %q", v.DisplayPrice)
	}
}

func TestDerive_RouteKeyKeepsRawID(t *testing.T) {
	v := Derive(Record{"id": "007", "price": 1})
	if v.RouteKey != "007" {
		t.Fatalf("expected raw string id, got %#v", v.RouteKey)
	}
	if v.DetailPath != "/product/007" {
		t.Fatalf("unexpected detail path %q", v.DetailPath)
	}
	if v.NumericID == nil || *v.NumericID != 7 {
		t.Fatalf("expected numeric id 7, got %v", v.NumericID)
	}

	v = Derive(Record{"id": 12.0, "price": 1})
	if v.RouteKey != 12.0 {
		t.Fatalf("expected raw numeric id, got %#v", v.RouteKey)
	}
	if v.DetailPath != "/product/12" {
		t.Fatalf("unexpected detail path %q", v.DetailPath)
	}
}
