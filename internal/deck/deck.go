package deck

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/kcorless/UpNDown/internal/models"
)

// ErrInsufficientCards is returned when a deal or draw asks for more cards
// than the source holds.
var ErrInsufficientCards = errors.New("not enough cards")

// Shuffler provides deck shuffling with an optional fixed seed.
type Shuffler struct {
	random *rand.Rand
}

// Config for the shuffler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new shuffler.
func New(cfg *Config) *Shuffler {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &Shuffler{
		random: rand.New(source),
	}
}

// Build creates an ordered deck with one card per value in the exclusive
// range (min, max). The boundary values are reserved as pile seeds and are
// never dealt.
func Build(min, max int) []models.Card {
	if max-min < 2 {
		return []models.Card{}
	}
	cards := make([]models.Card, 0, max-min-1)
	for value := min + 1; value <= max-1; value++ {
		cards = append(cards, models.NewCard(value))
	}
	return cards
}

// Shuffle returns a uniform random permutation of the deck (Fisher-Yates).
// The input is not modified.
func (s *Shuffler) Shuffle(cards []models.Card) []models.Card {
	shuffled := append([]models.Card(nil), cards...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// SortAscending returns the cards ordered by value, stable. The input is not
// modified.
func SortAscending(cards []models.Card) []models.Card {
	out := append([]models.Card(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value < out[j].Value
	})
	return out
}

// Deal distributes cards round-robin, one card per player per round, until
// every hand holds the size prescribed by the hand-size policy for the player
// count. The undealt remainder becomes the draw pile. Hands are returned
// sorted ascending.
func Deal(cards []models.Card, playerCount int, handSizes models.HandSizes) (hands [][]models.Card, remainder []models.Card, err error) {
	if playerCount < 1 {
		return nil, nil, errors.New("player count must be at least 1")
	}

	handSize := handSizes.For(playerCount)
	if len(cards) < playerCount*handSize {
		return nil, nil, ErrInsufficientCards
	}

	hands = make([][]models.Card, playerCount)
	next := 0
	for round := 0; round < handSize; round++ {
		for p := 0; p < playerCount; p++ {
			hands[p] = append(hands[p], cards[next])
			next++
		}
	}

	for p := range hands {
		hands[p] = SortAscending(hands[p])
	}

	remainder = append([]models.Card(nil), cards[next:]...)
	return hands, remainder, nil
}

// Draw removes n cards from the front of the draw pile and appends them to
// the hand. The returned hand is sorted ascending. Neither input is modified.
func Draw(drawPile, hand []models.Card, n int) (newHand, newDrawPile []models.Card, err error) {
	if n < 0 {
		return nil, nil, errors.New("draw count must be non-negative")
	}
	if n > len(drawPile) {
		return nil, nil, ErrInsufficientCards
	}

	newHand = SortAscending(append(append([]models.Card(nil), hand...), drawPile[:n]...))
	newDrawPile = append([]models.Card(nil), drawPile[n:]...)
	return newHand, newDrawPile, nil
}
