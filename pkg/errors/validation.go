package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// coordinatePartRegex matches a Maven groupId or artifactId segment.
var coordinatePartRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// ValidateCoordinatePart validates one half of a group:artifact pair.
//
// Both halves end up in filesystem paths and repository URLs, so the rules
// reject anything that could escape the intended location:
//   - No empty parts
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateCoordinatePart(kind, part string) error {
	if part == "" {
		return New(ErrCodeInvalidCoordinates, "%s cannot be empty", kind)
	}

	if len(part) > 256 {
		return New(ErrCodeInvalidCoordinates, "%s too long (max 256 characters)", kind)
	}

	for _, r := range part {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCoordinates, "%s contains invalid characters", kind)
		}
	}

	if strings.Contains(part, "..") {
		return New(ErrCodeInvalidCoordinates, "%s contains invalid characters: %q", kind, "..")
	}

	if !coordinatePartRegex.MatchString(part) {
		return New(ErrCodeInvalidCoordinates, "invalid %s: %q", kind, part)
	}

	return nil
}

// ValidatePath validates a record path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
