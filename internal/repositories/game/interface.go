package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/kcorless/UpNDown/internal/repositories/game Repository

import (
	"context"

	"github.com/kcorless/UpNDown/internal/models"
)

// Repository is the shared game document store. The contract it provides is
// what the synchronization discipline relies on: atomic read-modify-write
// transactions (UpdateGame) and a durable subscription that delivers every
// committed write to all subscribers.
type Repository interface {
	// SaveGame persists a game document and notifies subscribers
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game document by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.GameState, error)

	// UpdateGame applies a transform to the current document as one atomic
	// transaction: read, transform, conditional write. A single attempt is
	// made; a lost race surfaces as ErrTransactionConflict
	UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.GameState, error)

	// DeleteGame removes a game document and notifies subscribers
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// Subscribe delivers every committed write for a game, nil on deletion
	Subscribe(ctx context.Context, input *SubscribeInput) (*Subscription, error)
}
