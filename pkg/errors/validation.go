package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds element IDs and format keys.
const maxIDLength = 128

// ValidateElementID validates an element identifier.
//
// IDs end up in finding IDs, cache keys and HTTP payloads:
//   - No empty IDs
//   - No control characters
//   - No leading or trailing whitespace ("hero image" is fine)
//   - Maximum length of 128 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "element id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidScene, "element id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "element id %q contains invalid characters", id)
		}
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidScene, "element id %q has leading or trailing whitespace", id)
	}
	return nil
}

// formatKeyRegex matches registry keys such as "instagram_story".
var formatKeyRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateFormatKey validates an export format registry key.
func ValidateFormatKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidFormat, "format key cannot be empty")
	}
	if len(key) > maxIDLength {
		return New(ErrCodeInvalidFormat, "format key too long (max %d characters)", maxIDLength)
	}
	if !formatKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidFormat, "invalid format key: %q", key)
	}
	return nil
}

// ValidatePath validates an output path for scene files.
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

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
