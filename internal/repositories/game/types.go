package game

import (
	"sync"

	"github.com/kcorless/UpNDown/internal/models"
)

// Transform recomputes a game document from its current remote value. It is
// evaluated inside the transaction, against the then-current state.
type Transform func(current *models.GameState) (*models.GameState, error)

type SaveGameInput struct {
	Game *models.GameState
}

type GetGameInput struct {
	GameID string
}

type UpdateGameInput struct {
	GameID    string
	Transform Transform
}

type DeleteGameInput struct {
	GameID string
}

type SubscribeInput struct {
	GameID string
}

// Subscription is a live feed of committed documents for one game. Updates
// carries the full document after each write; nil means the document was
// deleted. Close releases the feed.
type Subscription struct {
	Updates <-chan *models.GameState

	quit      chan struct{}
	closeOnce sync.Once
	close     func() error
}

// Close tears the subscription down; Updates is closed afterwards. The quit
// channel unblocks any forwarding send still waiting on a reader, so Close
// never strands the forwarding goroutine behind an undelivered update.
func (s *Subscription) Close() error {
	if s.close == nil {
		return nil
	}

	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		err = s.close()
	})
	return err
}
