package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds titles and tail captions; anything longer would not
// fit the label column anyway.
const maxLabelLength = 200

// ValidateLabel validates a user-supplied caption (diagram title, tail
// labels) before it is embedded in SVG or PDF output.
//
// Empty labels are valid: they simply suppress the caption.
func ValidateLabel(field, label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidSpec, "%s too long (max %d characters)", field, maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSpec, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateOutputPath validates an output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Path must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}
	return nil
}
