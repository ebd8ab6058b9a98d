package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFieldName validates a record field name used as a key or an
// attribute. Names end up in SVG data attributes and event payloads, so
// control characters are rejected.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidKey, "field name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidKey, "field name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "field name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateFraction checks that v lies in [0, 1]. It is used for opacities
// and for angular range fractions of the full circle.
func ValidateFraction(field string, v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be within [0, 1], got %g", field, v)
	}
	return nil
}

// ValidatePath validates an input or output file path given on the command line.
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
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}

// supportedDataExts maps file extensions to the dataset format they carry.
var supportedDataExts = map[string]string{
	".json": "json",
	".csv":  "csv",
	".toml": "toml",
	".yaml": "yaml",
	".yml":  "yaml",
}

// DataFormat returns the dataset format implied by path's extension.
func DataFormat(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := supportedDataExts[ext]
	if !ok {
		return "", New(ErrCodeInvalidFormat, "unsupported file extension %q (want .json, .csv, .toml, .yaml)", ext)
	}
	return f, nil
}
