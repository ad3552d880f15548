package player

// SaveProfileInput holds the identity fields to upsert
type SaveProfileInput struct {
	// PlayerUUID is the durable identity of the player
	PlayerUUID string

	// Name is the display name the player is currently using
	Name string

	// LastSeen is the unix-millisecond time of the activity
	LastSeen int64
}

// GetProfileInput identifies the profile to fetch
type GetProfileInput struct {
	PlayerUUID string
}

// RecordGameResultInput records one finished game for a set of players
type RecordGameResultInput struct {
	// PlayerUUIDs are the players who were in the game
	PlayerUUIDs []string

	// Won is set when the game ended in a cooperative win
	Won bool
}
