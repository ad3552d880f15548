package models

// PileKind indicates the direction a foundation pile grows in
type PileKind string

const (
	// PileKindUp marks an ascending pile
	PileKindUp PileKind = "UP"

	// PileKindDown marks a descending pile
	PileKindDown PileKind = "DOWN"
)

// Signal is a per-player, per-pile interest indicator. It is pure UI
// communication and never affects the legality of a move.
type Signal string

const (
	SignalNone       Signal = "none"
	SignalLike       Signal = "like"
	SignalReallyLike Signal = "reallyLike"
	SignalLove       Signal = "love"
)

// Next returns the signal that follows s in the cycle
// none -> like -> reallyLike -> love -> none.
func (s Signal) Next() Signal {
	switch s {
	case SignalNone:
		return SignalLike
	case SignalLike:
		return SignalReallyLike
	case SignalReallyLike:
		return SignalLove
	default:
		return SignalNone
	}
}

// SignalSlots is the number of signal slots per pile row. Players 0-2 occupy
// the top row, players 3-5 the bottom row.
const SignalSlots = 3

// LikeSignals holds one signal per player seat for a single pile.
type LikeSignals struct {
	Top    [SignalSlots]Signal `json:"top"`
	Bottom [SignalSlots]Signal `json:"bottom"`
}

// NewLikeSignals returns a fully cleared signal set.
func NewLikeSignals() LikeSignals {
	var ls LikeSignals
	ls.Reset()
	return ls
}

// Reset clears every slot back to SignalNone.
func (ls *LikeSignals) Reset() {
	for i := 0; i < SignalSlots; i++ {
		ls.Top[i] = SignalNone
		ls.Bottom[i] = SignalNone
	}
}

// Pile is one of the four foundation piles cards are played onto. A pile is
// seeded with a single sentinel card at its start value, so Cards is never
// empty and CurrentValue always equals the value of the last card.
type Pile struct {
	// ID identifies the pile within a game (up-1, up-2, down-1, down-2)
	ID string `json:"id"`

	// Kind is the direction the pile grows in
	Kind PileKind `json:"kind"`

	// Cards is the ordered sequence of cards played on the pile
	Cards []Card `json:"cards"`

	// StartValue is the seed value the pile opened at
	StartValue int `json:"startValue"`

	// CurrentValue is the value of the last card on the pile
	CurrentValue int `json:"currentValue"`

	// Label is the display name of the pile
	Label string `json:"label"`

	// LikeSignals holds the per-player interest indicators for this pile
	LikeSignals LikeSignals `json:"likeSignals"`
}

// Pile identifiers and labels
const (
	PileIDUp1   = "up-1"
	PileIDUp2   = "up-2"
	PileIDDown1 = "down-1"
	PileIDDown2 = "down-2"
)

// NewPile creates a pile seeded with its sentinel start card.
func NewPile(id string, kind PileKind, startValue int, label string) Pile {
	return Pile{
		ID:           id,
		Kind:         kind,
		Cards:        []Card{NewCard(startValue)},
		StartValue:   startValue,
		CurrentValue: startValue,
		Label:        label,
		LikeSignals:  NewLikeSignals(),
	}
}

// NewFoundationPiles creates the four foundation piles for a game: two
// ascending piles seeded at cardMin and two descending piles seeded at cardMax.
func NewFoundationPiles(cardMin, cardMax int) []Pile {
	return []Pile{
		NewPile(PileIDUp1, PileKindUp, cardMin, "Ascending 1"),
		NewPile(PileIDUp2, PileKindUp, cardMin, "Ascending 2"),
		NewPile(PileIDDown1, PileKindDown, cardMax, "Descending 1"),
		NewPile(PileIDDown2, PileKindDown, cardMax, "Descending 2"),
	}
}

// Clone returns a deep copy of the pile.
func (p Pile) Clone() Pile {
	out := p
	out.Cards = append([]Card(nil), p.Cards...)
	return out
}
