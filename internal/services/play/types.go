package play

import (
	"github.com/kcorless/UpNDown/internal/common/clock"
	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
	playerRepo "github.com/kcorless/UpNDown/internal/repositories/player"
)

// Config holds the dependencies for the play service
type Config struct {
	// GameRepo persists the shared game documents
	GameRepo gameRepo.Repository

	// ProfileRepo records finished games on durable player profiles
	ProfileRepo playerRepo.Repository

	// Clock provides the current time
	Clock clock.Clock
}

// PlayCardInput holds one card play
type PlayCardInput struct {
	// GameID is the game code
	GameID string

	// PlayerUUID identifies the acting player
	PlayerUUID string

	// CardIndex is the position of the card in the player's sorted hand
	CardIndex int

	// PileID identifies the target foundation pile
	PileID string
}

// PlayCardOutput holds the game after the play
type PlayCardOutput struct {
	// Game is the updated game state
	Game *models.GameState
}

// EndTurnInput identifies the player ending their turn
type EndTurnInput struct {
	// GameID is the game code
	GameID string

	// PlayerUUID identifies the acting player
	PlayerUUID string
}

// EndTurnOutput holds the game after the turn change
type EndTurnOutput struct {
	// Game is the updated game state
	Game *models.GameState
}

// UndoInput identifies the game to undo in
type UndoInput struct {
	// GameID is the game code
	GameID string
}

// UndoOutput holds the game after the undo
type UndoOutput struct {
	// Game is the updated game state
	Game *models.GameState
}

// CycleLikeSignalInput identifies one signal slot to advance
type CycleLikeSignalInput struct {
	// GameID is the game code
	GameID string

	// PileID identifies the foundation pile carrying the signal
	PileID string

	// Seat is the join-order position of the signalling player
	Seat int
}

// CycleLikeSignalOutput holds the game after the signal change
type CycleLikeSignalOutput struct {
	// Game is the updated game state
	Game *models.GameState
}
