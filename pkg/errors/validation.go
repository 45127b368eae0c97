package errors

import (
	"strings"
	"unicode"
)

// ValidateComponentName checks a component name read from a manifest.
// Names are graph keys and diagram identifiers, so they must be non-empty
// single-line strings.
func ValidateComponentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidManifest, "component name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidManifest, "component name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "component name contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

// ValidateFormat checks format against the allowed set.
func ValidateFormat(format string, allowed map[string]bool) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !allowed[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}
