// Package stats projects read-only statistics out of a game state.
package stats

import (
	"github.com/kcorless/UpNDown/internal/models"
)

// PlayerSummary holds one player's statistics row
type PlayerSummary struct {
	// PlayerUUID identifies the player
	PlayerUUID string `json:"playerUUID"`

	// Name is the player's display name
	Name string `json:"name"`

	// CardsPlayed is the number of cards the player played
	CardsPlayed int `json:"cardsPlayed"`

	// SpecialPlays is the number of ten-out reversals the player played
	SpecialPlays int `json:"specialPlays"`

	// TotalMovement is the accumulated movement cost of the player's plays
	TotalMovement int `json:"totalMovement"`

	// AverageMovementPerCard is TotalMovement / CardsPlayed, 0 when no
	// cards were played
	AverageMovementPerCard float64 `json:"averageMovementPerCard"`
}

// Summary holds the statistics projection of one game
type Summary struct {
	// GameID is the game code
	GameID string `json:"gameID"`

	// GameOver reports whether the game has finished
	GameOver bool `json:"gameOver"`

	// GameWon reports whether the game was won
	GameWon bool `json:"gameWon"`

	// Players holds one row per player in join order
	Players []PlayerSummary `json:"players"`

	// TotalCardsPlayed is the sum of all players' cards played
	TotalCardsPlayed int `json:"totalCardsPlayed"`

	// TotalSpecialPlays is the sum of all players' special plays
	TotalSpecialPlays int `json:"totalSpecialPlays"`

	// TotalMovement is the sum of all players' movement
	TotalMovement int `json:"totalMovement"`

	// AverageMovementPerCard is TotalMovement / TotalCardsPlayed, 0 when
	// no cards were played
	AverageMovementPerCard float64 `json:"averageMovementPerCard"`

	// CardsRemaining counts cards still in hands and the draw pile
	CardsRemaining int `json:"cardsRemaining"`
}

// Summarize projects the statistics of a game. The state is not modified.
func Summarize(state *models.GameState) *Summary {
	summary := &Summary{
		GameID:   state.GameID,
		GameOver: state.GameOver,
		GameWon:  state.GameWon,
	}

	remaining := len(state.DrawPile)
	for _, player := range models.PlayersByJoinOrder(state.Players) {
		row := PlayerSummary{
			PlayerUUID:    player.UUID,
			Name:          player.Name,
			CardsPlayed:   player.Stats.CardsPlayed,
			SpecialPlays:  player.Stats.SpecialPlays,
			TotalMovement: player.Stats.TotalMovement,
		}
		if row.CardsPlayed > 0 {
			row.AverageMovementPerCard = float64(row.TotalMovement) / float64(row.CardsPlayed)
		}
		summary.Players = append(summary.Players, row)

		summary.TotalCardsPlayed += row.CardsPlayed
		summary.TotalSpecialPlays += row.SpecialPlays
		summary.TotalMovement += row.TotalMovement
		remaining += len(player.Hand)
	}

	if summary.TotalCardsPlayed > 0 {
		summary.AverageMovementPerCard = float64(summary.TotalMovement) / float64(summary.TotalCardsPlayed)
	}
	summary.CardsRemaining = remaining

	return summary
}
