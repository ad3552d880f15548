// Package engine is the game state machine: pure, synchronous transitions
// over a GameState. Transitions never do I/O, never log, and never resolve
// identity from ambient state; the acting player is always an argument.
// Persistence is the synchronization layer's job.
package engine

import (
	"fmt"

	"github.com/kcorless/UpNDown/internal/deck"
	"github.com/kcorless/UpNDown/internal/models"
	"github.com/kcorless/UpNDown/internal/rules"
)

// NewGame builds a fresh game: piles seeded from the settings, a shuffled
// deck dealt round-robin, players ordered by join time with the first player
// to move. Solitaire games enter in_progress immediately; multiplayer games
// are starting until the lobby persists them.
func NewGame(mode models.GameMode, settings models.Settings, players []models.Player, shuffler *deck.Shuffler, now int64) (*models.GameState, error) {
	cards := shuffler.Shuffle(deck.Build(settings.CardMin, settings.CardMax))

	hands, drawPile, err := deck.Deal(cards, len(players), settings.HandSizes)
	if err != nil {
		return nil, err
	}

	seats := make(map[string]models.Player, len(players))
	for _, p := range players {
		seats[p.UUID] = p.Clone()
	}
	byJoin := models.PlayersByJoinOrder(seats)

	playerMap := make(map[string]models.Player, len(players))
	host := ""
	for i := range byJoin {
		byJoin[i].Hand = hands[i]
		byJoin[i].CardCount = len(hands[i])
		byJoin[i].Stats = models.PlayerStats{}
		if byJoin[i].IsHost {
			host = byJoin[i].UUID
		}
		playerMap[byJoin[i].UUID] = byJoin[i]
	}

	status := models.GameStatusInProgress
	if mode == models.GameModeMultiplayer {
		status = models.GameStatusStarting
	}

	state := &models.GameState{
		Mode:              mode,
		Status:            status,
		Host:              host,
		Players:           playerMap,
		CurrentPlayerUUID: byJoin[0].UUID,
		Piles:             models.NewFoundationPiles(settings.CardMin, settings.CardMax),
		DrawPile:          drawPile,
		CreatedAt:         now,
		LastUpdate:        now,
		Settings:          settings,
	}
	state.MinCardsPerTurn = minCardsPerTurn(state)
	return state, nil
}

// PlayCard applies one play: the card at cardIndex in the player's hand
// lands on the pile, a replacement is drawn when the rules call for one,
// statistics and the undo record are updated, and the win/loss conditions
// are re-evaluated.
func PlayCard(state *models.GameState, playerUUID string, cardIndex int, pileID string) (*models.GameState, error) {
	player, ok := state.Players[playerUUID]
	if !ok {
		return state, ErrUnknownPlayer
	}

	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return state, ErrInvalidCardIndex
	}

	pile := state.Pile(pileID)
	if pile == nil {
		return state, ErrUnknownPile
	}

	card := player.Hand[cardIndex]
	if !rules.IsValidPlay(card, *pile) {
		return state, illegalMove(card, *pile)
	}

	special := rules.IsSpecialPlay(card, *pile)
	movement := rules.Movement(card, *pile)

	next := state.Clone()

	target := next.Pile(pileID)
	target.Cards = append(target.Cards, card)
	target.CurrentValue = card.Value

	updated := next.Players[playerUUID]
	updated.Hand = append(updated.Hand[:cardIndex:cardIndex], updated.Hand[cardIndex+1:]...)

	var drawnCard *models.Card
	if (next.Mode == models.GameModeSolitaire || next.Settings.RefreshCardsOnPlay) && len(next.DrawPile) > 0 {
		drawn := next.DrawPile[0]
		newHand, newDrawPile, err := deck.Draw(next.DrawPile, updated.Hand, 1)
		if err != nil {
			return state, err
		}
		updated.Hand = newHand
		next.DrawPile = newDrawPile
		drawnCard = &drawn
	}

	updated.CardCount = len(updated.Hand)
	updated.Stats.CardsPlayed++
	if special {
		updated.Stats.SpecialPlays++
	}
	updated.Stats.TotalMovement += movement
	next.Players[playerUUID] = updated

	next.CardsPlayedThisTurn++
	next.TurnEnded = false
	next.LastMove = &models.LastMove{
		CardPlayed: card,
		PlayerUUID: playerUUID,
		PileID:     pileID,
		DrawnCard:  drawnCard,
	}
	next.MinCardsPerTurn = minCardsPerTurn(next)

	evaluateWin(next)
	if !next.GameOver && next.Mode == models.GameModeSolitaire &&
		!rules.HasAnyValidMove(updated.Hand, next.Piles) {
		next.GameOver = true
		next.GameWon = false
	}

	return next, nil
}

// EndTurn closes the acting player's turn in a multiplayer game: batched
// replacement draws when refresh-on-play is off, like-signal reset, and the
// advance to the next join-order player who still holds cards.
func EndTurn(state *models.GameState, playerUUID string) (*models.GameState, error) {
	if state.Mode != models.GameModeMultiplayer {
		return state, ErrWrongMode
	}

	player, ok := state.Players[playerUUID]
	if !ok {
		return state, ErrUnknownPlayer
	}

	if state.CardsPlayedThisTurn < state.MinCardsPerTurn {
		return state, fmt.Errorf("%w: played %d of %d", ErrTurnNotComplete, state.CardsPlayedThisTurn, state.MinCardsPerTurn)
	}

	next := state.Clone()

	if !next.Settings.RefreshCardsOnPlay && next.CardsPlayedThisTurn > 0 {
		n := next.CardsPlayedThisTurn
		if n > len(next.DrawPile) {
			n = len(next.DrawPile)
		}
		if n > 0 {
			ending := next.Players[player.UUID]
			newHand, newDrawPile, err := deck.Draw(next.DrawPile, ending.Hand, n)
			if err != nil {
				return state, err
			}
			ending.Hand = newHand
			ending.CardCount = len(newHand)
			next.Players[player.UUID] = ending
			next.DrawPile = newDrawPile
		}
	}

	for i := range next.Piles {
		next.Piles[i].LikeSignals.Reset()
	}

	next.CurrentPlayerUUID = nextPlayerWithCards(next, next.CurrentPlayerUUID)
	next.CardsPlayedThisTurn = 0
	next.TurnEnded = true
	next.LastMove = nil
	next.MinCardsPerTurn = minCardsPerTurn(next)

	evaluateWin(next)
	if !next.GameOver && !next.Settings.RefreshCardsOnPlay {
		current := next.Players[next.CurrentPlayerUUID]
		if !rules.HasAnyValidMove(current.Hand, next.Piles) {
			next.GameOver = true
			next.GameWon = false
		}
	}

	return next, nil
}

// Undo reverts the single most recent play. It is a no-op when undo is
// disabled or there is nothing to undo; a second consecutive Undo therefore
// does nothing.
func Undo(state *models.GameState) (*models.GameState, error) {
	if !state.Settings.UndoAllowed || state.LastMove == nil {
		return state, nil
	}

	lm := *state.LastMove
	next := state.Clone()

	pile := next.Pile(lm.PileID)
	if pile == nil {
		return state, ErrUnknownPile
	}
	if n := len(pile.Cards); n > 0 {
		pile.Cards = pile.Cards[:n-1]
	}
	if n := len(pile.Cards); n > 0 {
		pile.CurrentValue = pile.Cards[n-1].Value
	} else {
		// Cannot happen with seeded piles, handled all the same.
		pile.CurrentValue = pile.StartValue
	}

	player, ok := next.Players[lm.PlayerUUID]
	if !ok {
		return state, ErrUnknownPlayer
	}

	hand := player.Hand
	if lm.DrawnCard != nil {
		for i, c := range hand {
			if c.ID == lm.DrawnCard.ID {
				hand = append(hand[:i:i], hand[i+1:]...)
				break
			}
		}
		next.DrawPile = append([]models.Card{*lm.DrawnCard}, next.DrawPile...)
	}
	player.Hand = deck.SortAscending(append(hand, lm.CardPlayed))
	player.CardCount = len(player.Hand)
	if player.Stats.CardsPlayed > 0 {
		player.Stats.CardsPlayed--
	}
	next.Players[lm.PlayerUUID] = player

	if next.CardsPlayedThisTurn > 0 {
		next.CardsPlayedThisTurn--
	}
	next.LastMove = nil
	next.MinCardsPerTurn = minCardsPerTurn(next)

	return next, nil
}

// CycleLikeSignal advances the signal for one (pile, seat) pair through
// none -> like -> reallyLike -> love -> none. Seats beyond the active player
// count are inert. Signals never affect move legality.
func CycleLikeSignal(state *models.GameState, pileID string, seat int) (*models.GameState, error) {
	if seat < 0 || seat >= 2*models.SignalSlots || seat >= len(state.Players) {
		return state, nil
	}

	if state.Pile(pileID) == nil {
		return state, ErrUnknownPile
	}

	next := state.Clone()
	pile := next.Pile(pileID)

	top, pos := SeatPosition(seat)
	if top {
		pile.LikeSignals.Top[pos] = pile.LikeSignals.Top[pos].Next()
	} else {
		pile.LikeSignals.Bottom[pos] = pile.LikeSignals.Bottom[pos].Next()
	}

	return next, nil
}

// SeatPosition maps a player's join-order seat (0-5) to its signal slot:
// seats 0-2 on the top row, 3-5 on the bottom.
func SeatPosition(seat int) (top bool, pos int) {
	if seat < models.SignalSlots {
		return true, seat
	}
	return false, seat - models.SignalSlots
}

// Seat is the inverse of SeatPosition.
func Seat(top bool, pos int) int {
	if top {
		return pos
	}
	return pos + models.SignalSlots
}

// minCardsPerTurn is the single authoritative computation of the turn
// minimum: 2 while the draw pile holds cards, 1 once it is exhausted. Every
// mutating transition recomputes it, so the drop takes effect mid-turn.
func minCardsPerTurn(state *models.GameState) int {
	if len(state.DrawPile) == 0 {
		return models.MinCardsPerTurnExhausted
	}
	return models.MinCardsPerTurnDefault
}

// evaluateWin marks the game won when every hand and the draw pile are
// empty, regardless of whose turn it is.
func evaluateWin(state *models.GameState) {
	if len(state.DrawPile) > 0 {
		return
	}
	for _, p := range state.Players {
		if len(p.Hand) > 0 {
			return
		}
	}
	state.GameWon = true
	state.GameOver = true
}

// nextPlayerWithCards walks the join order once, starting after the current
// player and wrapping, and returns the first player holding cards. When no
// player has cards the current player is returned unchanged.
func nextPlayerWithCards(state *models.GameState, currentUUID string) string {
	ordered := models.PlayersByJoinOrder(state.Players)
	if len(ordered) == 0 {
		return currentUUID
	}

	currentIndex := 0
	for i, p := range ordered {
		if p.UUID == currentUUID {
			currentIndex = i
			break
		}
	}

	for i := 1; i <= len(ordered); i++ {
		candidate := ordered[(currentIndex+i)%len(ordered)]
		if len(candidate.Hand) > 0 {
			return candidate.UUID
		}
	}
	return currentUUID
}

func illegalMove(card models.Card, pile models.Pile) error {
	if pile.Kind == models.PileKindUp {
		return fmt.Errorf("%w: cannot play %d on %s; needs a value above %d or exactly %d",
			ErrIllegalMove, card.Value, pile.ID, pile.CurrentValue, pile.CurrentValue-rules.ReversalDifference)
	}
	return fmt.Errorf("%w: cannot play %d on %s; needs a value below %d or exactly %d",
		ErrIllegalMove, card.Value, pile.ID, pile.CurrentValue, pile.CurrentValue+rules.ReversalDifference)
}
