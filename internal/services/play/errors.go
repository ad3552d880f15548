package play

import "errors"

var (
	// ErrGameNotFound is returned when the game does not exist
	ErrGameNotFound = errors.New("game not found")

	// ErrGameNotInProgress is returned when a move targets a game that has
	// not started or has already finished
	ErrGameNotInProgress = errors.New("game not in progress")
)
