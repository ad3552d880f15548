package stats

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kcorless/UpNDown/internal/models"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsTestSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func (s *StatsTestSuite) fixture() *models.GameState {
	alice := models.NewPlayer("alice", "Alice", true, 1000)
	alice.Hand = []models.Card{models.NewCard(20)}
	alice.Stats = models.PlayerStats{CardsPlayed: 4, SpecialPlays: 1, TotalMovement: 20}

	bob := models.NewPlayer("bob", "Bob", false, 2000)
	bob.Hand = []models.Card{models.NewCard(30), models.NewCard(40)}
	bob.Stats = models.PlayerStats{CardsPlayed: 2, SpecialPlays: 0, TotalMovement: 10}

	return &models.GameState{
		GameID:   "ABC123",
		Mode:     models.GameModeMultiplayer,
		Status:   models.GameStatusInProgress,
		Players:  map[string]models.Player{"alice": alice, "bob": bob},
		DrawPile: []models.Card{models.NewCard(50), models.NewCard(60), models.NewCard(70)},
	}
}

func (s *StatsTestSuite) TestSummarize() {
	summary := Summarize(s.fixture())

	s.Equal("ABC123", summary.GameID)
	s.False(summary.GameOver)
	s.False(summary.GameWon)

	s.Require().Len(summary.Players, 2)
	// join order
	s.Equal("alice", summary.Players[0].PlayerUUID)
	s.Equal("bob", summary.Players[1].PlayerUUID)

	s.Equal(4, summary.Players[0].CardsPlayed)
	s.Equal(1, summary.Players[0].SpecialPlays)
	s.InDelta(5.0, summary.Players[0].AverageMovementPerCard, 0.0001)
	s.InDelta(5.0, summary.Players[1].AverageMovementPerCard, 0.0001)

	s.Equal(6, summary.TotalCardsPlayed)
	s.Equal(1, summary.TotalSpecialPlays)
	s.Equal(30, summary.TotalMovement)
	s.InDelta(5.0, summary.AverageMovementPerCard, 0.0001)
	s.Equal(6, summary.CardsRemaining)
}

func (s *StatsTestSuite) TestSummarizeNoPlays() {
	state := s.fixture()
	for uuid, p := range state.Players {
		p.Stats = models.PlayerStats{}
		state.Players[uuid] = p
	}

	summary := Summarize(state)

	s.Zero(summary.TotalCardsPlayed)
	s.Zero(summary.AverageMovementPerCard)
	for _, row := range summary.Players {
		s.Zero(row.AverageMovementPerCard)
	}
}

func (s *StatsTestSuite) TestSummarizeWonGame() {
	state := s.fixture()
	state.GameOver = true
	state.GameWon = true
	state.DrawPile = nil
	for uuid, p := range state.Players {
		p.Hand = nil
		state.Players[uuid] = p
	}

	summary := Summarize(state)

	s.True(summary.GameOver)
	s.True(summary.GameWon)
	s.Zero(summary.CardsRemaining)
}

func (s *StatsTestSuite) TestSummarizeDoesNotMutateState() {
	state := s.fixture()
	snapshot := state.Clone()

	Summarize(state)

	s.Equal(snapshot, state)
}
