package models

import "sort"

// PlayerStats accumulates a player's contribution over a game.
type PlayerStats struct {
	// CardsPlayed is the number of cards the player has played
	CardsPlayed int `json:"cardsPlayed"`

	// SpecialPlays is the number of ±10 reversal plays
	SpecialPlays int `json:"specialPlays"`

	// TotalMovement is the accumulated movement cost of the player's plays
	TotalMovement int `json:"totalMovement"`
}

// Player is a participant in a game. UUID is the durable identity key;
// JoinedAt establishes turn order.
type Player struct {
	// UUID is the durable identity of the player
	UUID string `json:"uuid"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Hand is the player's current hand, kept sorted ascending by value
	Hand []Card `json:"hand"`

	// CardCount mirrors len(Hand) for cheap presentation reads
	CardCount int `json:"cardCount"`

	// IsHost marks the lobby host
	IsHost bool `json:"isHost"`

	// IsReady marks a player who has confirmed readiness in the lobby
	IsReady bool `json:"isReady"`

	// JoinedAt is the unix-millisecond join time, used for turn order
	JoinedAt int64 `json:"joinedAt"`

	// Stats accumulates the player's per-game statistics
	Stats PlayerStats `json:"stats"`
}

// NewPlayer creates a player with an empty hand and zeroed stats.
func NewPlayer(uuid, name string, isHost bool, joinedAt int64) Player {
	return Player{
		UUID:     uuid,
		Name:     name,
		Hand:     []Card{},
		IsHost:   isHost,
		JoinedAt: joinedAt,
	}
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	out := p
	out.Hand = append([]Card(nil), p.Hand...)
	return out
}

// PlayersByJoinOrder returns the players of a game sorted into turn order:
// by join time, host first on a tie, UUID as the final tie-break so the
// ordering is deterministic across clients.
func PlayersByJoinOrder(players map[string]Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt != out[j].JoinedAt {
			return out[i].JoinedAt < out[j].JoinedAt
		}
		if out[i].IsHost != out[j].IsHost {
			return out[i].IsHost
		}
		return out[i].UUID < out[j].UUID
	})
	return out
}
