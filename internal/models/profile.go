package models

// Profile is the durable cross-game record of one player, keyed by their
// UUID. In-game state lives in the game document; the profile only carries
// what outlives a single game.
type Profile struct {
	// UUID is the durable identity of the player
	UUID string `json:"uuid"`

	// Name is the most recently used display name
	Name string `json:"name"`

	// GamesPlayed counts finished games
	GamesPlayed int `json:"gamesPlayed"`

	// GamesWon counts finished games that ended in a win
	GamesWon int `json:"gamesWon"`

	// LastSeen is the unix-millisecond time of the player's last activity
	LastSeen int64 `json:"lastSeen"`
}
