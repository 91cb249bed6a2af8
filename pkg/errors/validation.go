package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds item identifiers coming from files or API requests.
const maxIDLength = 256

// ValidateWeight rejects treemap weights that cannot be laid out.
// Infinite weights are a contract violation. NaN and non-positive weights
// are not errors: the treemap excludes them and gives them an empty rectangle.
func ValidateWeight(w float64) error {
	if math.IsInf(w, 0) {
		return New(ErrCodeInvalidWeight, "weight must be finite, got %v", w)
	}
	return nil
}

// ValidateSize validates a natural item size for the mosaic layout.
// Both dimensions must be finite and strictly positive.
func ValidateSize(w, h float64) error {
	if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return New(ErrCodeInvalidSize, "size must be finite, got %vx%v", w, h)
	}
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %vx%v", w, h)
	}
	return nil
}

// ValidateDimension validates a container dimension or size limit.
// Zero is allowed (it means "nothing to lay out" or "use the default");
// negative, NaN and infinite values are rejected.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSize, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidSize, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateID validates an item identifier.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 256 characters
//   - No control characters (IDs end up in SVG attributes)
//
// An empty ID is allowed; callers assign positional IDs in that case.
func ValidateID(id string) error {
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "item id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "item id contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path supplied to the HTTP API or config.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(strings.ReplaceAll(path, "\\", "/"), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
