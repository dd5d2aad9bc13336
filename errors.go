package filmgrade

import "errors"

// Sentinel errors returned by the image-level helpers. The per-pixel
// entry points never error: malformed parameters clamp to defaults and
// degenerate denominators skip their stage.
var (
	// ErrNilImage is returned when a render helper receives a nil image.
	ErrNilImage = errors.New("filmgrade: nil image")

	// ErrEmptyImage is returned when the source bounds are empty.
	ErrEmptyImage = errors.New("filmgrade: empty image bounds")
)
