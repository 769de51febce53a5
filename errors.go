package xps

import "errors"

// Errors returned while resolving and rendering glyph runs. All of them are recoverable: the element at hand is skipped and rendering continues with the next one.
var (
	ErrResourceNotFound        = errors.New("xps: resource not found")
	ErrMalformedObfuscationKey = errors.New("xps: malformed obfuscation key")
	ErrFontParse               = errors.New("xps: cannot parse font")
	ErrNoSuitableEncoding      = errors.New("xps: no suitable cmap")
	ErrMissingAttribute        = errors.New("xps: missing required attribute")
	ErrNumberTooLong           = errors.New("xps: numeric literal too long")
	ErrMalformedIndices        = errors.New("xps: malformed indices")
	ErrUnsupportedBrush        = errors.New("xps: unsupported brush")
	ErrBadGeometry             = errors.New("xps: bad geometry")
)
