package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxKindLength bounds component kinds; they are rendered as labels.
const maxKindLength = 64

// ValidateDocumentID validates a layout document identifier for safety.
// IDs are used as file names by the file store and as path segments by the
// HTTP API, so they are restricted to a conservative character set.
//
// The validation rules:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path traversal sequences (.., /, \)
//   - Only letters, digits, dash, underscore and dot
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "document id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidID, "document id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "document id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "document id contains invalid characters: %q", pattern)
		}
	}

	if !documentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid document id: %q", id)
	}

	return nil
}

var documentIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKind validates a component kind. Kinds are cosmetic but end up in
// terminal cells and SVG text, so control characters are rejected.
func ValidateKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidLayout, "component kind cannot be empty")
	}

	if len(kind) > maxKindLength {
		return New(ErrCodeInvalidLayout, "component kind too long (max %d characters)", maxKindLength)
	}

	for _, r := range kind {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLayout, "component kind contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks a document or render format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of %s)", format, strings.Join(allowed, ", "))
}
