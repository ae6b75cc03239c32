package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestTruncateTitle(t *testing.T) {
	fifty := strings.Repeat("a", 50)
	if got := TruncateTitle(fifty); got != fifty {
		t.Fatalf("50-char title changed: %q", got)
	}
	if got := TruncateTitle(fifty + "b"); got != fifty+"..." {
		t.Fatalf("51-char title not truncated: %q", got)
	}
	if got := TruncateTitle("short"); got != "short" {
		t.Fatalf("short title changed: %q", got)
	}
	if got := TruncateTitle(""); got != "" {
		t.Fatalf("empty title changed: %q", got)
	}

	accented := strings.Repeat("é", 51)
	if got := TruncateTitle(accented); got != strings.Repeat("é", 50)+"..." {
		t.Fatalf("multi-byte title truncated by bytes: %q", got)
	}
	if got := TruncateTitle(strings.Repeat("é", 30)); got != strings.Repeat("é", 30) {
		t.Fatalf("30-rune title of 60 bytes was truncated: %q", got)
	}
}

func TestResolveImageSource(t *testing.T) {
	r := Record{"image": "/img/a.png", "imageUrl": "/img/b.png"}
	if got := ResolveImageSource("/img/override.png", r); got != "/img/override.png" {
		t.Fatalf("override ignored: %q", got)
	}
	if got := ResolveImageSource("", r); got != "/img/a.png" {
		t.Fatalf("image not preferred: %q", got)
	}
	if got := ResolveImageSource("", Record{"imageUrl": "/img/b.png"}); got != "/img/b.png" {
		t.Fatalf("imageUrl not used: %q", got)
	}
	if got := ResolveImageSource("", Record{}); got != "" {
		t.Fatalf("expected empty source, got %q", got)
	}
}

func TestImage_FallbackIsIdempotent(t *testing.T) {
	img := NewImage("/img/broken.png")
	if !img.OnLoadError() {
		t.Fatalf("first load error should substitute the fallback")
	}
	if img.Source() != FallbackImagePath {
		t.Fatalf("expected fallback source, got %q", img.Source())
	}
	for i := 0; i < 3; i++ {
		if img.OnLoadError() {
			t.Fatalf("load error on fallback mutated the source")
		}
	}
	if img.Source() != FallbackImagePath {
		t.Fatalf("fallback source changed: %q", img.Source())
	}

	already := NewImage(FallbackImagePath)
	if already.OnLoadError() {
		t.Fatalf("image already on fallback should not change")
	}
}

func TestAltText(t *testing.T) {
	if got := AltText(Record{"title": "Lamp", "name": "lamp-1"}); got != "Lamp" {
		t.Fatalf("expected title, got %q", got)
	}
	if got := AltText(Record{"name": "lamp-1"}); got != "lamp-1" {
		t.Fatalf("expected name, got %q", got)
	}
	if got := AltText(Record{}); got != "Product image" {
		t.Fatalf("expected default alt, got %q", got)
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	if err != nil || v != VariantDefault {
		t.Fatalf("empty value: got %q, %v", v, err)
	}
	v, err = ParseVariant("large")
	if err != nil || v != VariantLarge {
		t.Fatalf("large: got %q, %v", v, err)
	}
	if _, err := ParseVariant("xl"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if n := len(Variants()); n != 4 {
		t.Fatalf("expected 4 variants, got %d", n)
	}
}
