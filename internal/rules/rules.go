// Package rules holds the pure legality functions for foundation piles.
package rules

import "github.com/kcorless/UpNDown/internal/models"

// ReversalDifference is the exact gap, against the pile's direction, that
// makes a play legal regardless of the normal ordering rule.
const ReversalDifference = 10

// SpecialPlayMovement is the movement cost charged for a reversal play.
const SpecialPlayMovement = 10

// IsValidPlay reports whether the card may land on the pile. An ascending
// pile accepts any higher card, or the card exactly 10 below its current
// value; a descending pile is the mirror image. Piles are seeded with a
// sentinel card, so the current value is always defined.
func IsValidPlay(card models.Card, pile models.Pile) bool {
	top := pile.CurrentValue
	if pile.Kind == models.PileKindUp {
		return card.Value > top || card.Value == top-ReversalDifference
	}
	return card.Value < top || card.Value == top+ReversalDifference
}

// IsSpecialPlay reports whether the play is legal precisely because of the
// ±10 reversal rule.
func IsSpecialPlay(card models.Card, pile models.Pile) bool {
	if pile.Kind == models.PileKindUp {
		return card.Value == pile.CurrentValue-ReversalDifference
	}
	return card.Value == pile.CurrentValue+ReversalDifference
}

// Movement returns the movement cost of playing the card on the pile. It is
// used purely for statistics, never for legality.
func Movement(card models.Card, pile models.Pile) int {
	if IsSpecialPlay(card, pile) {
		return SpecialPlayMovement
	}
	diff := card.Value - pile.CurrentValue
	if diff < 0 {
		return -diff
	}
	return diff
}

// ValidPiles returns the piles the card may legally land on.
func ValidPiles(card models.Card, piles []models.Pile) []models.Pile {
	var out []models.Pile
	for _, pile := range piles {
		if IsValidPlay(card, pile) {
			out = append(out, pile)
		}
	}
	return out
}

// HasAnyValidMove reports whether any card in the hand can be played on any
// pile. Used for loss detection.
func HasAnyValidMove(hand []models.Card, piles []models.Pile) bool {
	for _, card := range hand {
		for _, pile := range piles {
			if IsValidPlay(card, pile) {
				return true
			}
		}
	}
	return false
}
