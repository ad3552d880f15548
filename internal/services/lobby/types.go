package lobby

import (
	"github.com/kcorless/UpNDown/internal/common/clock"
	"github.com/kcorless/UpNDown/internal/common/gamecode"
	"github.com/kcorless/UpNDown/internal/common/uuid"
	"github.com/kcorless/UpNDown/internal/deck"
	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
	playerRepo "github.com/kcorless/UpNDown/internal/repositories/player"
)

// Config holds configuration for the lobby service
type Config struct {
	// Repository dependencies
	GameRepo    gameRepo.Repository
	ProfileRepo playerRepo.Repository

	// Service dependencies
	Shuffler      *deck.Shuffler
	CodeGenerator *gamecode.Generator
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateLobbyInput contains parameters for creating a new lobby
type CreateLobbyInput struct {
	// HostUUID is the durable identity of the host; generated when empty
	HostUUID string

	// HostName is the display name of the host
	HostName string

	// Settings are the rules for the game; defaults when nil
	Settings *models.Settings
}

// CreateLobbyOutput contains the result of creating a lobby
type CreateLobbyOutput struct {
	// GameID is the shareable code of the new lobby
	GameID string

	// Game is the persisted waiting lobby document
	Game *models.GameState
}

// JoinLobbyInput contains parameters for joining a lobby
type JoinLobbyInput struct {
	// GameID is the lobby code as typed by the player; normalized internally
	GameID string

	// PlayerUUID is the durable identity of the player; generated when empty
	PlayerUUID string

	// PlayerName is the display name of the player
	PlayerName string
}

// JoinLobbyOutput contains the result of joining a lobby
type JoinLobbyOutput struct {
	// PlayerUUID is the identity the player joined with
	PlayerUUID string

	// Game is the lobby document after the join
	Game *models.GameState
}

// LeaveLobbyInput contains parameters for leaving a lobby
type LeaveLobbyInput struct {
	GameID     string
	PlayerUUID string
}

// LeaveLobbyOutput contains the result of leaving a lobby
type LeaveLobbyOutput struct {
	// Deleted is set when the departing player was the last one and the
	// lobby was removed
	Deleted bool

	// Game is the lobby document after the leave; nil when Deleted
	Game *models.GameState
}

// GetLobbyInput identifies the lobby to fetch
type GetLobbyInput struct {
	GameID string
}

// PrepareGameStartInput identifies the lobby to start
type PrepareGameStartInput struct {
	GameID string
}

// PrepareGameStartOutput carries the initial game state, not yet persisted
type PrepareGameStartOutput struct {
	Game *models.GameState
}

// StartGameInput identifies the lobby to start
type StartGameInput struct {
	GameID string
}

// StartGameOutput contains the persisted in-progress game
type StartGameOutput struct {
	Game *models.GameState
}

// NewSolitaireGameInput contains parameters for a local single-player game
type NewSolitaireGameInput struct {
	// PlayerUUID defaults to the fixed solitaire identity when empty
	PlayerUUID string

	// PlayerName is the display name of the player
	PlayerName string

	// Settings are the rules for the game; defaults when nil
	Settings *models.Settings
}

// NewSolitaireGameOutput contains the local game state
type NewSolitaireGameOutput struct {
	Game *models.GameState
}

// ResetGameInput identifies the game document to delete
type ResetGameInput struct {
	GameID string
}

// ResetGameOutput contains the result of a reset
type ResetGameOutput struct {
	Deleted bool
}
