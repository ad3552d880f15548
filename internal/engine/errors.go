package engine

import "errors"

// Precondition failures. Every transition fails fast with one of these and
// returns the caller's state unchanged.
var (
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrInvalidCardIndex = errors.New("card index out of range")
	ErrUnknownPile      = errors.New("unknown pile")
	ErrIllegalMove      = errors.New("illegal move")
	ErrTurnNotComplete  = errors.New("minimum cards for this turn not yet played")
	ErrWrongMode        = errors.New("operation not available in this game mode")
)
