package core

import "errors"

// Sentinel errors for board construction and snapshot restore.
var (
	// ErrMalformedSnapshot wraps every validation failure of a restored board.
	ErrMalformedSnapshot = errors.New("pipes: malformed board snapshot")

	ErrInvalidDimensions = errors.New("pipes: board dimensions must be positive")
	ErrTileCount         = errors.New("pipes: tile count does not match cols*rows")
	ErrInvalidTile       = errors.New("pipes: invalid tile mask")
	ErrCoordOutOfBounds  = errors.New("pipes: coordinate out of bounds")
	ErrInvalidStart      = errors.New("pipes: start tile must have exactly one connector")
	ErrInvalidEnd        = errors.New("pipes: end tile must have exactly one connector")
	ErrInvalidFlow       = errors.New("pipes: flow fields must be finite and non-negative")
)
