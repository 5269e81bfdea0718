package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateRecordName validates a record name for safety and correctness.
// Record names double as file names when plots are saved to disk, so
// names that could escape the target directory are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateRecordName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "record name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "record name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "record name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "record name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateScale checks that a rescale factor is a finite positive number.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return New(ErrCodeInvalidArgument, "scale must be a positive finite number, got %v", scale)
	}
	return nil
}

// ValidateDPI checks that a rasterization resolution is usable.
func ValidateDPI(dpi float64) error {
	const maxDPI = 2400
	if math.IsNaN(dpi) || dpi <= 0 || dpi > maxDPI {
		return New(ErrCodeInvalidArgument, "dpi must be in (0, %d], got %v", maxDPI, dpi)
	}
	return nil
}
