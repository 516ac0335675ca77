package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	// ErrNoDocument means the type has no document; it is a warning.
	ErrNoDocument = errors.New("no document")
	// ErrTransport means the document could not be retrieved.
	ErrTransport = errors.New("fetch failed")
	// ErrDecode means the document could not be parsed.
	ErrDecode = errors.New("decode failed")
)
