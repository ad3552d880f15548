package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kcorless/UpNDown/internal/models"
)

type DeckTestSuite struct {
	suite.Suite
}

func TestDeckTestSuite(t *testing.T) {
	suite.Run(t, new(DeckTestSuite))
}

func (s *DeckTestSuite) TestBuildExcludesBoundaries() {
	cards := Build(1, 100)

	s.Len(cards, 98)

	seen := make(map[int]bool, len(cards))
	for _, c := range cards {
		s.Greater(c.Value, 1)
		s.Less(c.Value, 100)
		s.False(seen[c.Value], "duplicate value %d", c.Value)
		seen[c.Value] = true
	}
}

func (s *DeckTestSuite) TestBuildNarrowRange() {
	s.Empty(Build(5, 6))
	s.Empty(Build(5, 5))
	s.Len(Build(5, 7), 1)
}

func (s *DeckTestSuite) TestShufflePreservesMultiset() {
	shuffler := New(&Config{Seed: 42})
	original := Build(1, 100)

	shuffled := shuffler.Shuffle(original)

	s.Len(shuffled, len(original))

	values := func(cards []models.Card) []int {
		out := make([]int, len(cards))
		for i, c := range cards {
			out[i] = c.Value
		}
		sort.Ints(out)
		return out
	}
	s.Equal(values(original), values(shuffled))
}

func (s *DeckTestSuite) TestShuffleDoesNotMutateInput() {
	shuffler := New(&Config{Seed: 7})
	original := Build(1, 20)
	snapshot := append([]models.Card(nil), original...)

	shuffler.Shuffle(original)

	s.Equal(snapshot, original)
}

func (s *DeckTestSuite) TestShuffleDeterministicWithSeed() {
	first := New(&Config{Seed: 99}).Shuffle(Build(1, 100))
	second := New(&Config{Seed: 99}).Shuffle(Build(1, 100))

	s.Equal(first, second)
}

func (s *DeckTestSuite) TestSortAscending() {
	cards := []models.Card{
		models.NewCard(40),
		models.NewCard(3),
		models.NewCard(97),
		models.NewCard(12),
	}

	sorted := SortAscending(cards)

	s.Equal([]int{3, 12, 40, 97}, cardValues(sorted))
	// input untouched
	s.Equal(40, cards[0].Value)
}

func (s *DeckTestSuite) TestDealConservesCards() {
	shuffler := New(&Config{Seed: 1})
	cards := shuffler.Shuffle(Build(1, 100))
	handSizes := models.DefaultSettings().HandSizes

	hands, remainder, err := Deal(cards, 4, handSizes)
	s.Require().NoError(err)

	s.Len(hands, 4)
	total := len(remainder)
	for _, hand := range hands {
		s.Len(hand, handSizes.Multiplayer)
		s.True(sort.SliceIsSorted(hand, func(i, j int) bool {
			return hand[i].Value < hand[j].Value
		}))
		total += len(hand)
	}
	s.Equal(len(cards), total)

	seen := make(map[int]bool)
	for _, hand := range hands {
		for _, c := range hand {
			s.False(seen[c.Value])
			seen[c.Value] = true
		}
	}
	for _, c := range remainder {
		s.False(seen[c.Value])
		seen[c.Value] = true
	}
}

func (s *DeckTestSuite) TestDealHandSizePerPlayerCount() {
	handSizes := models.DefaultSettings().HandSizes
	cards := Build(1, 100)

	solo, _, err := Deal(cards, 1, handSizes)
	s.Require().NoError(err)
	s.Len(solo[0], handSizes.Solitaire)

	pair, _, err := Deal(cards, 2, handSizes)
	s.Require().NoError(err)
	s.Len(pair[0], handSizes.TwoPlayer)
	s.Len(pair[1], handSizes.TwoPlayer)
}

func (s *DeckTestSuite) TestDealInsufficientCards() {
	cards := Build(1, 10) // 8 cards

	_, _, err := Deal(cards, 2, models.DefaultSettings().HandSizes)
	s.ErrorIs(err, ErrInsufficientCards)
}

func (s *DeckTestSuite) TestDrawMovesFromFront() {
	drawPile := []models.Card{
		models.NewCard(30),
		models.NewCard(5),
		models.NewCard(60),
	}
	hand := []models.Card{models.NewCard(10)}

	newHand, newDrawPile, err := Draw(drawPile, hand, 2)
	s.Require().NoError(err)

	s.Equal([]int{5, 10, 30}, cardValues(newHand))
	s.Equal([]int{60}, cardValues(newDrawPile))
	// inputs untouched
	s.Len(drawPile, 3)
	s.Len(hand, 1)
}

func (s *DeckTestSuite) TestDrawMoreThanAvailable() {
	drawPile := []models.Card{models.NewCard(5)}

	_, _, err := Draw(drawPile, nil, 2)
	s.ErrorIs(err, ErrInsufficientCards)
}

func (s *DeckTestSuite) TestDrawZero() {
	drawPile := []models.Card{models.NewCard(5)}
	hand := []models.Card{models.NewCard(9)}

	newHand, newDrawPile, err := Draw(drawPile, hand, 0)
	s.Require().NoError(err)
	s.Equal([]int{9}, cardValues(newHand))
	s.Equal([]int{5}, cardValues(newDrawPile))
}

func cardValues(cards []models.Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Value
	}
	return out
}
