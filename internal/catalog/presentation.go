package catalog

import (
	"net/url"
	"unicode/utf8"
)

const (
	maxTitleRunes = 50
	titleEllipsis = "..."

	// FallbackImagePath replaces a product image that failed to load.
	FallbackImagePath = "/assets/main.png.jpg"

	defaultAltText = "Product image"
	detailPrefix   = "/product/"
)

// TruncateTitle shortens titles longer than 50 characters to their first 50
// characters followed by an ellipsis.
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleRunes {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxTitleRunes]) + titleEllipsis
}

// DetailPath is the detail-view route for a record, keyed by its raw id.
func DetailPath(r Record) string {
	return detailPrefix + url.PathEscape(r.Key())
}

// AltText is the image alt text: title, then name, then a generic label.
func AltText(r Record) string {
	for _, key := range []string{KeyTitle, KeyName} {
		if s := displayString(r[key]); s != "" {
			return s
		}
	}
	return defaultAltText
}

// ResolveImageSource picks the primary image: an explicit override, then the
// record's image, then its imageUrl.
func ResolveImageSource(override string, r Record) string {
	if override != "" {
		return override
	}
	for _, key := range []string{KeyImage, KeyImageURL} {
		if s, ok := r[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Image tracks the source of one rendered image element. It is not safe for
// concurrent use.
type Image struct {
	src string
}

func NewImage(src string) *Image {
	return &Image{src: src}
}

func (i *Image) Source() string { return i.src }

// OnLoadError swaps in the fallback asset and reports whether the source
// changed. Once the fallback is showing, further errors are ignored.
func (i *Image) OnLoadError() bool {
	if i.src == FallbackImagePath {
		return false
	}
	i.src = FallbackImagePath
	return true
}
