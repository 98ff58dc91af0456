package errors

import (
	"regexp"
	"strings"
)

// identifierRegex matches plot names usable in composition expressions.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedNames cannot be used as plot names.
var reservedNames = map[string]bool{"spacer": true}

// ValidatePlotName validates the name of a plot in a figure file.
//
// Names are referenced from composition expressions, so they follow
// identifier rules:
//   - Not empty, at most 64 characters
//   - Letters, digits and underscores, not starting with a digit
//   - Not a reserved word
func ValidatePlotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSpec, "plot name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidSpec, "plot name too long (max 64 characters)")
	}

	if reservedNames[name] {
		return New(ErrCodeInvalidSpec, "plot name %q is reserved", name)
	}

	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidSpec, "invalid plot name: %q", name)
	}

	return nil
}

// ValidateOutputName validates a base file name for rendered output.
// It must be a simple basename without path components.
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "output name cannot be a hidden file")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// Only the schemes in allowed are accepted.
func ValidateURL(rawURL string, allowed ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, scheme := range allowed {
		if strings.HasPrefix(rawURL, scheme+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %s", strings.Join(allowed, ", "))
}
