package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound       = errors.New("skill not found")
	ErrAmbiguous      = errors.New("skill name is ambiguous")
	ErrInvalidCost    = errors.New("invalid sp cost")
	ErrNotPurchasable = errors.New("penalty skills cannot be bought")
	ErrNotPenalty     = errors.New("only penalty skills can be toggled")
)
