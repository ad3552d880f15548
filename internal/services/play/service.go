package play

import (
	"context"
	"errors"

	"github.com/kcorless/UpNDown/internal/common/gamecode"
	"github.com/kcorless/UpNDown/internal/engine"
	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
	playerRepo "github.com/kcorless/UpNDown/internal/repositories/player"
)

// service implements the Service interface
type service struct {
	config *Config
}

// New creates a new play service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameRepo == nil {
		return nil, errors.New("game repository cannot be nil")
	}
	if cfg.ProfileRepo == nil {
		return nil, errors.New("profile repository cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &service{config: cfg}, nil
}

// PlayCard applies one card play as an atomic transaction against the
// shared game document.
func (s *service) PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error) {
	game, err := s.transform(ctx, input.GameID, func(current *models.GameState) (*models.GameState, error) {
		return engine.PlayCard(current, input.PlayerUUID, input.CardIndex, input.PileID)
	})
	if err != nil {
		return nil, err
	}
	return &PlayCardOutput{Game: game}, nil
}

// EndTurn passes the turn, drawing replacement cards per the game settings.
func (s *service) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	game, err := s.transform(ctx, input.GameID, func(current *models.GameState) (*models.GameState, error) {
		return engine.EndTurn(current, input.PlayerUUID)
	})
	if err != nil {
		return nil, err
	}
	return &EndTurnOutput{Game: game}, nil
}

// Undo reverts the most recent card play. A game with nothing to undo is
// left untouched rather than failed.
func (s *service) Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error) {
	game, err := s.transform(ctx, input.GameID, func(current *models.GameState) (*models.GameState, error) {
		return engine.Undo(current)
	})
	if err != nil {
		return nil, err
	}
	return &UndoOutput{Game: game}, nil
}

// CycleLikeSignal advances one signal slot on a pile. Out-of-range seats
// leave the game untouched.
func (s *service) CycleLikeSignal(ctx context.Context, input *CycleLikeSignalInput) (*CycleLikeSignalOutput, error) {
	game, err := s.transform(ctx, input.GameID, func(current *models.GameState) (*models.GameState, error) {
		return engine.CycleLikeSignal(current, input.PileID, input.Seat)
	})
	if err != nil {
		return nil, err
	}
	return &CycleLikeSignalOutput{Game: game}, nil
}

// transform runs one engine transition inside the repository's atomic
// update, stamping LastUpdate on success. The in-progress gate lives here
// so the engine stays free of lifecycle concerns.
func (s *service) transform(ctx context.Context, gameID string, transition func(*models.GameState) (*models.GameState, error)) (*models.GameState, error) {
	now := s.config.Clock.Now().UnixMilli()

	var finished, won bool
	var playerUUIDs []string

	updated, err := s.config.GameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: gamecode.Normalize(gameID),
		Transform: func(current *models.GameState) (*models.GameState, error) {
			if current.Status != models.GameStatusInProgress {
				return nil, ErrGameNotInProgress
			}

			next, err := transition(current)
			if err != nil {
				return nil, err
			}

			if !current.GameOver && next.GameOver {
				finished = true
				won = next.GameWon
				playerUUIDs = playerUUIDs[:0]
				for uuid := range next.Players {
					playerUUIDs = append(playerUUIDs, uuid)
				}
			}

			next.LastUpdate = now
			return next, nil
		},
	})
	if errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	if finished {
		err := s.config.ProfileRepo.RecordGameResult(ctx, &playerRepo.RecordGameResultInput{
			PlayerUUIDs: playerUUIDs,
			Won:         won,
		})
		if err != nil {
			return nil, err
		}
	}

	return updated, nil
}
