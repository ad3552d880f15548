package lobby

import "errors"

// Define errors
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameFull           = errors.New("game is at maximum capacity")
	ErrSettingsInvalid    = errors.New("invalid settings")
	ErrPlayerNotInLobby   = errors.New("player not in lobby")
	ErrCodeExhausted      = errors.New("could not allocate an unused game code")
)
