// Package sync maintains a client's local view of one shared game document,
// reconciling it against the authoritative store's push stream.
package sync

import (
	"context"
	"errors"
	stdsync "sync"

	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
)

// updateBuffer bounds the fan-out channel. A consumer that falls behind
// misses intermediate pushes; State always holds the latest document.
const updateBuffer = 16

// Config holds the dependencies for a Syncer
type Config struct {
	// GameRepo is the authoritative game document store
	GameRepo gameRepo.Repository
}

// Syncer owns the local replica of one game document. Mutations go through
// Apply; authoritative pushes unconditionally overwrite the local state.
type Syncer struct {
	repo   gameRepo.Repository
	gameID string

	mu    stdsync.RWMutex
	state *models.GameState

	sub     *gameRepo.Subscription
	updates chan *models.GameState

	closeOnce stdsync.Once
	done      chan struct{}
}

// New snapshots the current document and starts following its push stream.
func New(ctx context.Context, cfg *Config, gameID string) (*Syncer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameRepo == nil {
		return nil, errors.New("game repository cannot be nil")
	}

	initial, err := cfg.GameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: gameID})
	if err != nil {
		return nil, err
	}

	sub, err := cfg.GameRepo.Subscribe(ctx, &gameRepo.SubscribeInput{GameID: gameID})
	if err != nil {
		return nil, err
	}

	s := &Syncer{
		repo:    cfg.GameRepo,
		gameID:  gameID,
		state:   initial,
		sub:     sub,
		updates: make(chan *models.GameState, updateBuffer),
		done:    make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Apply submits a transform through the store's atomic update and
// optimistically installs the committed result. On a lost race the local
// view is left alone; the next authoritative push corrects it.
func (s *Syncer) Apply(ctx context.Context, transform gameRepo.Transform) (*models.GameState, error) {
	updated, err := s.repo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID:    s.gameID,
		Transform: transform,
	})
	if err != nil {
		return nil, err
	}

	// The committed write comes back on the push stream too; installing
	// here just makes the local view current without waiting for it.
	s.mu.Lock()
	s.state = updated
	s.mu.Unlock()

	return updated, nil
}

// State returns the last known document, or nil once it has been deleted.
func (s *Syncer) State() *models.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Updates streams every document installed locally, nil for deletion. The
// channel closes when the Syncer closes.
func (s *Syncer) Updates() <-chan *models.GameState {
	return s.updates
}

// Close stops the reconciliation loop and releases the subscription.
func (s *Syncer) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.sub.Close()
	})
	return err
}

func (s *Syncer) run() {
	defer close(s.updates)

	for {
		select {
		case <-s.done:
			return
		case game, ok := <-s.sub.Updates:
			if !ok {
				return
			}
			s.install(game)
		}
	}
}

// install overwrites the local state and fans the document out. Only the
// run loop calls install, so the fan-out channel has a single sender. A
// full buffer sheds the oldest queued push so the newest document always
// reaches a consumer that catches up.
func (s *Syncer) install(game *models.GameState) {
	s.mu.Lock()
	s.state = game
	s.mu.Unlock()

	for {
		select {
		case s.updates <- game:
			return
		default:
		}

		select {
		case <-s.updates:
		default:
		}
	}
}
