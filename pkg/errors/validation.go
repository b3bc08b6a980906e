package errors

import (
	"strings"
	"unicode"
)

// ValidateGalleryName validates a user-supplied gallery entry name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - Maximum length of 128 characters
//
// Names become filenames in the file-backed gallery store, so anything
// that could escape the store directory is rejected here.
func ValidateGalleryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "entry name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "entry name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "entry name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"/",    // Path separator
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "entry name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateLayerName validates a layer name reference from external input
// such as query parameters or config files. It checks shape only; whether
// the layer exists is the registry's concern.
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayer, "layer name cannot be empty")
	}
	for _, r := range name {
		if r < 'a' || r > 'z' {
			return New(ErrCodeInvalidLayer, "layer name must be lowercase letters, got %q", name)
		}
	}
	return nil
}

// ValidateHexColor validates a #rgb or #rrggbb color string.
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	if !strings.HasPrefix(color, "#") {
		return New(ErrCodeInvalidInput, "color must start with '#', got %q", color)
	}
	hex := color[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return New(ErrCodeInvalidInput, "color must be #rgb or #rrggbb, got %q", color)
	}
	for _, r := range hex {
		isDigit := r >= '0' && r <= '9'
		isLower := r >= 'a' && r <= 'f'
		isUpper := r >= 'A' && r <= 'F'
		if !isDigit && !isLower && !isUpper {
			return New(ErrCodeInvalidInput, "color contains non-hex character %q", r)
		}
	}
	return nil
}
