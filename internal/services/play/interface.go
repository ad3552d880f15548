package play

import "context"

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/kcorless/UpNDown/internal/services/play Service

// Service handles in-game moves against the shared game document
type Service interface {
	// PlayCard plays one card from a player's hand onto a foundation pile
	PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error)

	// EndTurn passes the turn to the next player holding cards
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)

	// Undo reverts the most recent card play, when undo is enabled
	Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error)

	// CycleLikeSignal advances one like-signal slot on a pile
	CycleLikeSignal(ctx context.Context, input *CycleLikeSignalInput) (*CycleLikeSignalOutput, error)
}
