package lobby

import (
	"context"

	"github.com/kcorless/UpNDown/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/kcorless/UpNDown/internal/services/lobby Service

// Service defines the interface for lobby and session operations
type Service interface {
	// CreateLobby allocates a game code and persists a waiting lobby with
	// one host player
	CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error)

	// JoinLobby adds a player to a waiting lobby; re-joining with a known
	// UUID only updates the display name
	JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error)

	// LeaveLobby removes a player, promoting a new host or deleting the
	// lobby when it empties
	LeaveLobby(ctx context.Context, input *LeaveLobbyInput) (*LeaveLobbyOutput, error)

	// GetLobby fetches the current lobby document
	GetLobby(ctx context.Context, input *GetLobbyInput) (*models.GameState, error)

	// PrepareGameStart deals a fresh deck against the lobby's players and
	// settings and returns the initial game state without persisting it
	PrepareGameStart(ctx context.Context, input *PrepareGameStartInput) (*PrepareGameStartOutput, error)

	// StartGame transitions the lobby to an in-progress game in one atomic
	// transaction
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// NewSolitaireGame builds a local single-player game; nothing is persisted
	NewSolitaireGame(ctx context.Context, input *NewSolitaireGameInput) (*NewSolitaireGameOutput, error)

	// ResetGame deletes the shared game document unconditionally
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)
}
