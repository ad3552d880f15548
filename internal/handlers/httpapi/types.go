package httpapi

import "github.com/kcorless/UpNDown/internal/models"

// createGameRequest creates a new multiplayer lobby
type createGameRequest struct {
	HostName string           `json:"hostName" binding:"required"`
	HostUUID string           `json:"hostUUID"`
	Settings *models.Settings `json:"settings"`
}

// solitaireRequest creates a local single-player game
type solitaireRequest struct {
	PlayerName string           `json:"playerName" binding:"required"`
	PlayerUUID string           `json:"playerUUID"`
	Settings   *models.Settings `json:"settings"`
}

// joinRequest joins an existing lobby
type joinRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
	PlayerUUID string `json:"playerUUID"`
}

// leaveRequest removes a player from a lobby
type leaveRequest struct {
	PlayerUUID string `json:"playerUUID" binding:"required"`
}

// playCardRequest plays one card onto a pile
type playCardRequest struct {
	PlayerUUID string `json:"playerUUID" binding:"required"`
	CardIndex  *int   `json:"cardIndex" binding:"required"`
	PileID     string `json:"pileID" binding:"required"`
}

// endTurnRequest passes the turn
type endTurnRequest struct {
	PlayerUUID string `json:"playerUUID" binding:"required"`
}

// likeRequest cycles one like-signal slot
type likeRequest struct {
	PileID string `json:"pileID" binding:"required"`
	Seat   *int   `json:"seat" binding:"required"`
}

// errorResponse carries a failure message
type errorResponse struct {
	Error string `json:"error"`
}
