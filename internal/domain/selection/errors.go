package selection

import "errors"

// Sentinel kinds for selection errors. Each blocks the optimize action only.
var (
	ErrInvalidBudget = errors.New("invalid budget")
	ErrNoCandidates  = errors.New("no purchasable candidates")
	ErrTooLarge      = errors.New("budget/catalog too large")
)
