package normalize

import "errors"

// Sentinel kinds for normalization. All but ErrInvalidDocument are warnings:
// the type simply contributes nothing to the catalog.
var (
	ErrInvalidDocument = errors.New("document is not valid JSON")
	ErrEmptyDocument   = errors.New("empty document")
	ErrUnknownShape    = errors.New("unrecognized document shape")
	ErrMissingArray    = errors.New("missing required array")
)

// IsWarning reports whether err is a non-fatal shape problem rather than a
// broken document.
func IsWarning(err error) bool {
	return errors.Is(err, ErrEmptyDocument) ||
		errors.Is(err, ErrUnknownShape) ||
		errors.Is(err, ErrMissingArray)
}
