package wire

import "errors"

// Envelope-level errors. Any of these aborts decoding with no partial
// Message returned. None are retried at this layer.
var (
	ErrPayloadTooShort    = errors.New("wire: payload too short")
	ErrInvalidMagic       = errors.New("wire: invalid magic")
	ErrTruncatedAnchors   = errors.New("wire: truncated anchor region")
	ErrAnchorListTooLarge = errors.New("wire: anchor list too large")
)
