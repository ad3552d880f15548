package lobby

import (
	"context"
	"errors"
	"fmt"

	"github.com/kcorless/UpNDown/internal/common/gamecode"
	"github.com/kcorless/UpNDown/internal/engine"
	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
	playerRepo "github.com/kcorless/UpNDown/internal/repositories/player"
)

// codeAttempts bounds the search for an unused game code.
const codeAttempts = 5

// Settings bounds enforced at this boundary. The state machine itself never
// validates settings.
const (
	settingsCardMinFloor = 1
	settingsCardMaxCeil  = 100
	settingsMinCardSpan  = 12

	handSizeFloor           = 2
	solitaireHandSizeCeil   = 12
	twoPlayerHandSizeCeil   = 10
	multiplayerHandSizeCeil = 8
)

// service implements the Service interface
type service struct {
	config *Config
}

// New creates a new lobby service
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
	if cfg.Shuffler == nil {
		return nil, errors.New("shuffler cannot be nil")
	}
	if cfg.CodeGenerator == nil {
		return nil, errors.New("code generator cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	return &service{config: cfg}, nil
}

// CreateLobby allocates an unused game code and persists a waiting lobby
// holding only the host.
func (s *service) CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error) {
	settings := models.DefaultSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	hostUUID := input.HostUUID
	if hostUUID == "" {
		hostUUID = s.config.UUIDGenerator.NewUUID()
	}

	gameID, err := s.allocateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.config.Clock.Now().UnixMilli()
	host := models.NewPlayer(hostUUID, input.HostName, true, now)

	game := &models.GameState{
		GameID:          gameID,
		Mode:            models.GameModeMultiplayer,
		Status:          models.GameStatusWaiting,
		Host:            hostUUID,
		Players:         map[string]models.Player{hostUUID: host},
		Piles:           models.NewFoundationPiles(settings.CardMin, settings.CardMax),
		DrawPile:        []models.Card{},
		MinCardsPerTurn: models.MinCardsPerTurnDefault,
		CreatedAt:       now,
		LastUpdate:      now,
		Settings:        settings,
	}

	if err := s.config.GameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{Game: game}); err != nil {
		return nil, err
	}

	if err := s.saveProfile(ctx, hostUUID, input.HostName, now); err != nil {
		return nil, err
	}

	return &CreateLobbyOutput{
		GameID: gameID,
		Game:   game,
	}, nil
}

// JoinLobby adds a player to a waiting lobby as one atomic transaction
// against the current document, so concurrent joins cannot clobber each
// other or overfill the seat cap.
func (s *service) JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error) {
	gameID := gamecode.Normalize(input.GameID)

	playerUUID := input.PlayerUUID
	if playerUUID == "" {
		playerUUID = s.config.UUIDGenerator.NewUUID()
	}

	now := s.config.Clock.Now().UnixMilli()

	updated, err := s.config.GameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: gameID,
		Transform: func(current *models.GameState) (*models.GameState, error) {
			if current.Status != models.GameStatusWaiting {
				return nil, ErrGameAlreadyStarted
			}

			next := current.Clone()

			if existing, ok := next.Players[playerUUID]; ok {
				// Idempotent re-join: only the display name may change.
				existing.Name = input.PlayerName
				next.Players[playerUUID] = existing
				next.LastUpdate = now
				return next, nil
			}

			if len(next.Players) >= models.MaxPlayers {
				return nil, ErrGameFull
			}

			next.Players[playerUUID] = models.NewPlayer(playerUUID, input.PlayerName, false, now)
			next.LastUpdate = now
			return next, nil
		},
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.saveProfile(ctx, playerUUID, input.PlayerName, now); err != nil {
		return nil, err
	}

	return &JoinLobbyOutput{
		PlayerUUID: playerUUID,
		Game:       updated,
	}, nil
}

// LeaveLobby removes a player. The earliest-joined remaining player is
// promoted when the host leaves; the document is deleted once nobody is
// left.
func (s *service) LeaveLobby(ctx context.Context, input *LeaveLobbyInput) (*LeaveLobbyOutput, error) {
	gameID := gamecode.Normalize(input.GameID)
	now := s.config.Clock.Now().UnixMilli()

	errLobbyEmpty := errors.New("lobby empty")

	updated, err := s.config.GameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: gameID,
		Transform: func(current *models.GameState) (*models.GameState, error) {
			departing, ok := current.Players[input.PlayerUUID]
			if !ok {
				return nil, ErrPlayerNotInLobby
			}

			next := current.Clone()
			delete(next.Players, input.PlayerUUID)

			if len(next.Players) == 0 {
				return nil, errLobbyEmpty
			}

			if departing.IsHost {
				promoted := models.PlayersByJoinOrder(next.Players)[0]
				promoted.IsHost = true
				next.Players[promoted.UUID] = promoted
				next.Host = promoted.UUID
			}

			next.LastUpdate = now
			return next, nil
		},
	})
	if errors.Is(err, errLobbyEmpty) {
		if err := s.config.GameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: gameID}); err != nil {
			return nil, err
		}
		return &LeaveLobbyOutput{Deleted: true}, nil
	}
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &LeaveLobbyOutput{Game: updated}, nil
}

// GetLobby fetches the current lobby document.
func (s *service) GetLobby(ctx context.Context, input *GetLobbyInput) (*models.GameState, error) {
	game, err := s.config.GameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: gamecode.Normalize(input.GameID),
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return game, nil
}

// PrepareGameStart snapshots the lobby's players in join order, deals a
// fresh deck against the lobby settings, and returns the initial game state
// without persisting it.
func (s *service) PrepareGameStart(ctx context.Context, input *PrepareGameStartInput) (*PrepareGameStartOutput, error) {
	gameID := gamecode.Normalize(input.GameID)

	current, err := s.config.GameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: gameID})
	if err != nil {
		return nil, mapRepoError(err)
	}

	game, err := s.initialState(current)
	if err != nil {
		return nil, err
	}

	return &PrepareGameStartOutput{Game: game}, nil
}

// StartGame deals and transitions waiting -> in_progress in one atomic
// transaction, so two hosts racing the start cannot deal twice.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	gameID := gamecode.Normalize(input.GameID)

	updated, err := s.config.GameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: gameID,
		Transform: func(current *models.GameState) (*models.GameState, error) {
			if current.Status == models.GameStatusInProgress {
				return nil, ErrGameAlreadyStarted
			}

			game, err := s.initialState(current)
			if err != nil {
				return nil, err
			}
			game.Status = models.GameStatusInProgress
			return game, nil
		},
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	return &StartGameOutput{Game: updated}, nil
}

// NewSolitaireGame builds a local single-player game in progress. Nothing is
// persisted; solitaire lives entirely in the client.
func (s *service) NewSolitaireGame(ctx context.Context, input *NewSolitaireGameInput) (*NewSolitaireGameOutput, error) {
	settings := models.DefaultSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	playerUUID := input.PlayerUUID
	if playerUUID == "" {
		playerUUID = models.SolitairePlayerUUID
	}

	now := s.config.Clock.Now().UnixMilli()
	player := models.NewPlayer(playerUUID, input.PlayerName, true, now)

	game, err := engine.NewGame(models.GameModeSolitaire, settings, []models.Player{player}, s.config.Shuffler, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveProfile(ctx, playerUUID, input.PlayerName, now); err != nil {
		return nil, err
	}

	return &NewSolitaireGameOutput{Game: game}, nil
}

// ResetGame deletes the shared game document unconditionally. Subscribers
// receive a deletion push.
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	gameID := gamecode.Normalize(input.GameID)

	if err := s.config.GameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: gameID}); err != nil {
		return nil, err
	}

	return &ResetGameOutput{Deleted: true}, nil
}

// initialState deals a fresh game from a lobby document, preserving its
// identity, host and settings.
func (s *service) initialState(lobby *models.GameState) (*models.GameState, error) {
	players := models.PlayersByJoinOrder(lobby.Players)
	for i := range players {
		players[i].Hand = nil
		players[i].CardCount = 0
		players[i].Stats = models.PlayerStats{}
	}

	now := s.config.Clock.Now().UnixMilli()
	game, err := engine.NewGame(models.GameModeMultiplayer, lobby.Settings, players, s.config.Shuffler, now)
	if err != nil {
		return nil, err
	}

	game.GameID = lobby.GameID
	game.Host = lobby.Host
	game.CreatedAt = lobby.CreatedAt
	return game, nil
}

// saveProfile refreshes the player's durable profile after lobby activity.
func (s *service) saveProfile(ctx context.Context, playerUUID, name string, now int64) error {
	return s.config.ProfileRepo.SaveProfile(ctx, &playerRepo.SaveProfileInput{
		PlayerUUID: playerUUID,
		Name:       name,
		LastSeen:   now,
	})
}

// allocateCode finds an unused game code within a bounded number of draws.
func (s *service) allocateCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := s.config.CodeGenerator.Generate()

		_, err := s.config.GameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: code})
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrCodeExhausted
}

// validateSettings enforces the boundary bounds on game settings.
func validateSettings(s models.Settings) error {
	if s.CardMin < settingsCardMinFloor || s.CardMax > settingsCardMaxCeil {
		return fmt.Errorf("%w: card range must lie within [%d, %d]", ErrSettingsInvalid, settingsCardMinFloor, settingsCardMaxCeil)
	}
	if s.CardMax-s.CardMin < settingsMinCardSpan {
		return fmt.Errorf("%w: card max must exceed card min by at least %d", ErrSettingsInvalid, settingsMinCardSpan)
	}
	if s.HandSizes.Solitaire < handSizeFloor || s.HandSizes.Solitaire > solitaireHandSizeCeil {
		return fmt.Errorf("%w: solitaire hand size must be %d-%d", ErrSettingsInvalid, handSizeFloor, solitaireHandSizeCeil)
	}
	if s.HandSizes.TwoPlayer < handSizeFloor || s.HandSizes.TwoPlayer > twoPlayerHandSizeCeil {
		return fmt.Errorf("%w: two-player hand size must be %d-%d", ErrSettingsInvalid, handSizeFloor, twoPlayerHandSizeCeil)
	}
	if s.HandSizes.Multiplayer < handSizeFloor || s.HandSizes.Multiplayer > multiplayerHandSizeCeil {
		return fmt.Errorf("%w: multiplayer hand size must be %d-%d", ErrSettingsInvalid, handSizeFloor, multiplayerHandSizeCeil)
	}
	return nil
}

// mapRepoError folds repository sentinels into the service taxonomy.
func mapRepoError(err error) error {
	if errors.Is(err, gameRepo.ErrGameNotFound) {
		return ErrGameNotFound
	}
	return err
}
