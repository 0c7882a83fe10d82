package edit

import "errors"

// ErrOffsetOutOfRange is returned when a requested character offset is
// negative or beyond the paragraph length for the requested edit mode. It is
// always surfaced to the caller, never silently clamped.
var ErrOffsetOutOfRange = errors.New("offset out of range")
