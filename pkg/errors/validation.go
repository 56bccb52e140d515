package errors

import (
	"strings"
	"unicode"
)

// ValidatePositive checks that a numeric option is strictly positive.
// The name is used verbatim in the error message.
func ValidatePositive(name string, value int) error {
	if value <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %d", name, value)
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed choices.
func ValidateOneOf(name, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "invalid %s: %q (must be one of: %s)", name, value, strings.Join(allowed, ", "))
}

// ValidatePath validates a user-supplied input path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateBase validates a residue symbol from a BPSEQ line. Any single
// printable, non-space character is accepted since modified residues use
// letters outside ACGU.
func ValidateBase(base string) error {
	if len(base) != 1 {
		return New(ErrCodeMalformedInput, "residue symbol must be one character, got %q", base)
	}
	r := rune(base[0])
	if !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return New(ErrCodeMalformedInput, "residue symbol %q is not printable", base)
	}
	return nil
}
