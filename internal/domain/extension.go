package domain

import "strings"

// imageExtensions trigger the provider's image search mode.
var imageExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "svg": {}, "gif": {}, "bmp": {}, "webp": {},
}

// ExtensionSpec is the normalized form of a requested file extension.
type ExtensionSpec struct {
	Normalized   string
	IsImageClass bool
}

// Classify strips the leading dot, lowercases the rest and reports whether the
// result is an image extension. It never fails.
//
// Repeated leading dots are all stripped so the normalized value never starts
// with a dot and Classify(Classify(x).Normalized) == Classify(x).
func Classify(rawExt string) ExtensionSpec {
	normalized := strings.ToLower(strings.TrimLeft(rawExt, "."))
	_, isImage := imageExtensions[normalized]
	return ExtensionSpec{
		Normalized:   normalized,
		IsImageClass: isImage,
	}
}

// IsEmpty reports whether no extension was requested.
func (s ExtensionSpec) IsEmpty() bool {
	return s.Normalized == ""
}

// Suffix returns the extension with its leading dot, e.g. ".pdf".
func (s ExtensionSpec) Suffix() string {
	if s.Normalized == "" {
		return ""
	}
	return "." + s.Normalized
}

// HasSuffix reports whether link ends with the extension, ignoring case.
func (s ExtensionSpec) HasSuffix(link string) bool {
	if s.Normalized == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(link), s.Suffix())
}
