package sync

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
)

type SyncerTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   gameRepo.Repository
	ctx    context.Context
}

func (s *SyncerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	repo, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *SyncerTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestSyncerTestSuite(t *testing.T) {
	suite.Run(t, new(SyncerTestSuite))
}

func (s *SyncerTestSuite) seedGame(gameID string) *models.GameState {
	host := models.NewPlayer("host-uuid", "Host", true, 1000)
	game := &models.GameState{
		GameID:          gameID,
		Mode:            models.GameModeMultiplayer,
		Status:          models.GameStatusWaiting,
		Host:            "host-uuid",
		Players:         map[string]models.Player{"host-uuid": host},
		Piles:           models.NewFoundationPiles(1, 100),
		DrawPile:        []models.Card{},
		MinCardsPerTurn: models.MinCardsPerTurnDefault,
		Settings:        models.DefaultSettings(),
	}
	s.Require().NoError(s.repo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: game}))
	return game
}

func (s *SyncerTestSuite) awaitUpdate(syncer *Syncer) *models.GameState {
	select {
	case game := <-syncer.Updates():
		return game
	case <-time.After(2 * time.Second):
		s.FailNow("no update received")
		return nil
	}
}

func (s *SyncerTestSuite) TestNewSnapshotsCurrentDocument() {
	s.seedGame("ABC123")

	syncer, err := New(s.ctx, &Config{GameRepo: s.repo}, "ABC123")
	s.Require().NoError(err)
	defer syncer.Close()

	state := syncer.State()
	s.Require().NotNil(state)
	s.Equal("ABC123", state.GameID)
	s.Equal(models.GameStatusWaiting, state.Status)
}

func (s *SyncerTestSuite) TestNewUnknownGame() {
	_, err := New(s.ctx, &Config{GameRepo: s.repo}, "MISSING")
	s.ErrorIs(err, gameRepo.ErrGameNotFound)
}

func (s *SyncerTestSuite) TestApplyInstallsCommittedResult() {
	s.seedGame("ABC123")

	syncer, err := New(s.ctx, &Config{GameRepo: s.repo}, "ABC123")
	s.Require().NoError(err)
	defer syncer.Close()

	updated, err := syncer.Apply(s.ctx, func(current *models.GameState) (*models.GameState, error) {
		next := current.Clone()
		next.Status = models.GameStatusInProgress
		return next, nil
	})
	s.Require().NoError(err)

	s.Equal(models.GameStatusInProgress, updated.Status)
	s.Equal(models.GameStatusInProgress, syncer.State().Status)
}

func (s *SyncerTestSuite) TestRemoteWriteOverwritesLocalView() {
	game := s.seedGame("ABC123")

	syncer, err := New(s.ctx, &Config{GameRepo: s.repo}, "ABC123")
	s.Require().NoError(err)
	defer syncer.Close()

	// Another client commits a write.
	remote := game.Clone()
	remote.Status = models.GameStatusStarting
	s.Require().NoError(s.repo.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: remote}))

	pushed := s.awaitUpdate(syncer)
	s.Require().NotNil(pushed)
	s.Equal(models.GameStatusStarting, pushed.Status)
	s.Equal(models.GameStatusStarting, syncer.State().Status)
}

func (s *SyncerTestSuite) TestDeletionClearsLocalView() {
	s.seedGame("ABC123")

	syncer, err := New(s.ctx, &Config{GameRepo: s.repo}, "ABC123")
	s.Require().NoError(err)
	defer syncer.Close()

	s.Require().NoError(s.repo.DeleteGame(s.ctx, &gameRepo.DeleteGameInput{GameID: "ABC123"}))

	pushed := s.awaitUpdate(syncer)
	s.Nil(pushed)
	s.Nil(syncer.State())
}

func (s *SyncerTestSuite) TestApplyTransformErrorLeavesLocalView() {
	s.seedGame("ABC123")

	syncer, err := New(s.ctx, &Config{GameRepo: s.repo}, "ABC123")
	s.Require().NoError(err)
	defer syncer.Close()

	wantErr := gameRepo.ErrTransactionConflict
	_, err = syncer.Apply(s.ctx, func(current *models.GameState) (*models.GameState, error) {
		return nil, wantErr
	})
	s.ErrorIs(err, wantErr)

	s.Equal(models.GameStatusWaiting, syncer.State().Status)
}

func (s *SyncerTestSuite) TestInstallShedsOldestWhenBufferFull() {
	syncer := &Syncer{updates: make(chan *models.GameState, updateBuffer)}

	// A consumer that never reads while the game keeps moving.
	total := updateBuffer + 5
	for i := 1; i <= total; i++ {
		syncer.install(&models.GameState{GameID: "ABC123", LastUpdate: int64(i)})
	}

	// When it catches up, the newest document must still be queued.
	var last *models.GameState
	for {
		select {
		case game := <-syncer.updates:
			last = game
		default:
			s.Require().NotNil(last)
			s.Equal(int64(total), last.LastUpdate)
			s.Equal(int64(total), syncer.State().LastUpdate)
			return
		}
	}
}

func (s *SyncerTestSuite) TestCloseStopsUpdates() {
	s.seedGame("ABC123")

	syncer, err := New(s.ctx, &Config{GameRepo: s.repo}, "ABC123")
	s.Require().NoError(err)

	s.Require().NoError(syncer.Close())
	s.NoError(syncer.Close())

	select {
	case _, ok := <-syncer.Updates():
		s.False(ok)
	case <-time.After(2 * time.Second):
		s.Fail("updates channel not closed")
	}
}
