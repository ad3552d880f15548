package models

import "fmt"

// Card is a single playing card. Cards are immutable once created.
type Card struct {
	// ID is unique within a deck, derived from the card's value
	ID string `json:"id"`

	// Value is the face value of the card
	Value int `json:"value"`
}

// NewCard creates a card with its canonical ID for the given value.
func NewCard(value int) Card {
	return Card{
		ID:    fmt.Sprintf("card-%d", value),
		Value: value,
	}
}
