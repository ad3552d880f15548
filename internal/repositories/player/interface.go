package player

import (
	"context"

	"github.com/kcorless/UpNDown/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/kcorless/UpNDown/internal/repositories/player Repository

// Repository defines storage for durable player profiles
type Repository interface {
	// SaveProfile upserts a player's identity fields, leaving counters alone
	SaveProfile(ctx context.Context, input *SaveProfileInput) error

	// GetProfile retrieves a profile by player UUID
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error)

	// RecordGameResult bumps the finished-game counters for a set of players
	RecordGameResult(ctx context.Context, input *RecordGameResultInput) error
}
