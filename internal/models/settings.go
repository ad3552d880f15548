package models

// Default card range. Cards are dealt from the exclusive range
// (CardMin, CardMax); the boundary values seed the foundation piles.
const (
	DefaultCardMin = 1
	DefaultCardMax = 100
)

// Default hand sizes per player count.
const (
	DefaultSolitaireHandSize   = 10
	DefaultTwoPlayerHandSize   = 7
	DefaultMultiplayerHandSize = 6
)

// HandSizes holds the hand size for each player-count bracket: exactly one
// player, exactly two, or three and more.
type HandSizes struct {
	Solitaire   int `json:"solitaire"`
	TwoPlayer   int `json:"twoPlayer"`
	Multiplayer int `json:"multiplayer"`
}

// For returns the hand size prescribed for the given player count.
func (h HandSizes) For(playerCount int) int {
	switch {
	case playerCount <= 1:
		return h.Solitaire
	case playerCount == 2:
		return h.TwoPlayer
	default:
		return h.Multiplayer
	}
}

// Settings are the tunable rules of a game. They are validated at the
// boundary (lobby service), not inside the state machine.
type Settings struct {
	// CardMin is the lower boundary of the card range; ascending piles seed here
	CardMin int `json:"cardMin"`

	// CardMax is the upper boundary of the card range; descending piles seed here
	CardMax int `json:"cardMax"`

	// DrawPileMin and DrawPileMax mirror the dealt card range. They are kept
	// in the document for forward compatibility but derive from CardMin/CardMax.
	DrawPileMin int `json:"drawPileMin"`
	DrawPileMax int `json:"drawPileMax"`

	// HandSizes holds the per-mode hand sizes
	HandSizes HandSizes `json:"handSizes"`

	// RefreshCardsOnPlay draws a replacement immediately after each play
	// instead of batching draws at end of turn
	RefreshCardsOnPlay bool `json:"refreshCardsOnPlay"`

	// UndoAllowed enables the single-level undo
	UndoAllowed bool `json:"undoAllowed"`
}

// DefaultSettings returns the standard rules.
func DefaultSettings() Settings {
	return Settings{
		CardMin:     DefaultCardMin,
		CardMax:     DefaultCardMax,
		DrawPileMin: DefaultCardMin + 1,
		DrawPileMax: DefaultCardMax - 1,
		HandSizes: HandSizes{
			Solitaire:   DefaultSolitaireHandSize,
			TwoPlayer:   DefaultTwoPlayerHandSize,
			Multiplayer: DefaultMultiplayerHandSize,
		},
		RefreshCardsOnPlay: false,
		UndoAllowed:        true,
	}
}
