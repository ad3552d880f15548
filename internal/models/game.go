package models

// GameMode distinguishes a local single-player game from a shared game.
type GameMode string

const (
	// GameModeSolitaire is a local single-player game
	GameModeSolitaire GameMode = "solitaire"

	// GameModeMultiplayer is a shared game synchronized through the store
	GameModeMultiplayer GameMode = "multiplayer"
)

// GameStatus represents the lifecycle state of a game document.
type GameStatus string

const (
	// GameStatusWaiting indicates a lobby waiting for players to join
	GameStatusWaiting GameStatus = "waiting"

	// GameStatusStarting indicates the host has begun the start sequence
	GameStatusStarting GameStatus = "starting"

	// GameStatusInProgress indicates a game being played
	GameStatusInProgress GameStatus = "in_progress"

	// GameStatusError indicates an unrecoverable document state
	GameStatusError GameStatus = "error"
)

// MaxPlayers is the number of seats in a multiplayer game.
const MaxPlayers = 6

// Number of cards that must be played per turn, before and after the draw
// pile empties.
const (
	MinCardsPerTurnDefault   = 2
	MinCardsPerTurnExhausted = 1
)

// SolitairePlayerUUID is the fixed identity of the single player in a
// solitaire game.
const SolitairePlayerUUID = "solitaire"

// LastMove records the most recent play, retained only long enough to
// support a single-level undo.
type LastMove struct {
	// CardPlayed is the card that was played
	CardPlayed Card `json:"cardPlayed"`

	// PlayerUUID is the player who played it
	PlayerUUID string `json:"playerUuid"`

	// PileID is the pile it was played onto
	PileID string `json:"pileId"`

	// DrawnCard is the replacement card drawn as part of the play, if any
	DrawnCard *Card `json:"drawnCard,omitempty"`
}

// GameState is the aggregate root: one live GameState per match, and the
// unit of synchronization between clients.
type GameState struct {
	// GameID is the shareable lobby code identifying the document
	GameID string `json:"gameId"`

	// Mode is solitaire or multiplayer
	Mode GameMode `json:"gameMode"`

	// Status is the lifecycle state of the document
	Status GameStatus `json:"status"`

	// Host is the UUID of the lobby host
	Host string `json:"host"`

	// Players maps player UUID to player
	Players map[string]Player `json:"players"`

	// CurrentPlayerUUID is the player whose turn it is
	CurrentPlayerUUID string `json:"currentPlayerUuid"`

	// Piles are the four foundation piles
	Piles []Pile `json:"piles"`

	// DrawPile is the undealt remainder of the deck
	DrawPile []Card `json:"drawPile"`

	// CardsPlayedThisTurn counts plays since the turn started
	CardsPlayedThisTurn int `json:"cardsPlayedThisTurn"`

	// MinCardsPerTurn is 2 while the draw pile holds cards, 1 afterwards
	MinCardsPerTurn int `json:"minCardsPerTurn"`

	// TurnEnded flags that the previous action was an end of turn
	TurnEnded bool `json:"turnEnded"`

	// GameOver is set when the game has been won or lost
	GameOver bool `json:"gameOver"`

	// GameWon is set when the game ended in a win
	GameWon bool `json:"gameWon"`

	// LastMove supports the single-level undo; nil when nothing to undo
	LastMove *LastMove `json:"lastMove,omitempty"`

	// CreatedAt is the unix-millisecond creation time of the document
	CreatedAt int64 `json:"createdAt"`

	// LastUpdate is the unix-millisecond time of the last committed write
	LastUpdate int64 `json:"lastUpdate"`

	// Settings are the rules the game was created with
	Settings Settings `json:"settings"`
}

// Clone returns a deep copy of the game state. Transitions operate on a
// clone so a failed precondition leaves the caller's state untouched.
func (g *GameState) Clone() *GameState {
	out := *g
	out.Players = make(map[string]Player, len(g.Players))
	for uuid, p := range g.Players {
		out.Players[uuid] = p.Clone()
	}
	out.Piles = make([]Pile, len(g.Piles))
	for i, p := range g.Piles {
		out.Piles[i] = p.Clone()
	}
	out.DrawPile = append([]Card(nil), g.DrawPile...)
	if g.LastMove != nil {
		lm := *g.LastMove
		if g.LastMove.DrawnCard != nil {
			dc := *g.LastMove.DrawnCard
			lm.DrawnCard = &dc
		}
		out.LastMove = &lm
	}
	return &out
}

// Pile returns the pile with the given ID, or nil.
func (g *GameState) Pile(pileID string) *Pile {
	for i := range g.Piles {
		if g.Piles[i].ID == pileID {
			return &g.Piles[i]
		}
	}
	return nil
}
