package grade

import "errors"

// Sentinel kinds for grade table errors.
var (
	ErrUnknownTier     = errors.New("unknown grade tier")
	ErrUnknownAptitude = errors.New("unknown aptitude")
)
