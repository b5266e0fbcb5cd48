package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates an output path for safety.
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
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// designIDRegex matches identifiers safe to use as file stems.
var designIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateDesignID validates a design identifier. IDs become part of output
// file names, so they must be simple tokens.
func ValidateDesignID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidBrief, "design id cannot be empty")
	}
	if !designIDRegex.MatchString(id) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidBrief, "invalid design id: %q", id)
	}
	return nil
}

var facades = map[string]bool{"N": true, "S": true, "E": true, "W": true}

// ValidateFacade validates a compass facade name (N, S, E or W, any case).
func ValidateFacade(f string) error {
	if !facades[strings.ToUpper(strings.TrimSpace(f))] {
		return New(ErrCodeInvalidFacade, "unknown facade %q (want N, S, E or W)", f)
	}
	return nil
}

// ValidateSection validates a section name (A-A or B-B, any case).
func ValidateSection(s string) error {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A-A", "AA", "A", "B-B", "BB", "B":
		return nil
	}
	return New(ErrCodeInvalidSection, "unknown section %q (want A-A or B-B)", s)
}
