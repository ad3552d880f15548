// Package httpapi exposes the lobby and play services over HTTP. Handlers
// only bind requests and map errors to status codes; rules live in the
// engine and the services.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kcorless/UpNDown/internal/engine"
	"github.com/kcorless/UpNDown/internal/repositories/game"
	playerRepo "github.com/kcorless/UpNDown/internal/repositories/player"
	"github.com/kcorless/UpNDown/internal/services/lobby"
	"github.com/kcorless/UpNDown/internal/services/play"
	"github.com/kcorless/UpNDown/internal/stats"
)

// Config holds the dependencies for the HTTP handler
type Config struct {
	// LobbyService manages game lifecycle
	LobbyService lobby.Service

	// PlayService handles in-game moves
	PlayService play.Service

	// GameRepo backs the websocket state stream
	GameRepo game.Repository

	// ProfileRepo serves durable player profiles
	ProfileRepo playerRepo.Repository
}

// Handler serves the HTTP and websocket surface
type Handler struct {
	config *Config
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.LobbyService == nil {
		return nil, errors.New("lobby service cannot be nil")
	}
	if cfg.PlayService == nil {
		return nil, errors.New("play service cannot be nil")
	}
	if cfg.GameRepo == nil {
		return nil, errors.New("game repository cannot be nil")
	}
	if cfg.ProfileRepo == nil {
		return nil, errors.New("profile repository cannot be nil")
	}

	return &Handler{config: cfg}, nil
}

// Register wires the routes onto a gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/games", h.createGame)
	r.POST("/solitaire", h.newSolitaire)
	r.GET("/players/:uuid", h.getProfile)

	g := r.Group("/games/:code")
	g.GET("", h.getGame)
	g.GET("/stats", h.getStats)
	g.GET("/ws", h.streamGame)
	g.POST("/join", h.joinGame)
	g.POST("/leave", h.leaveGame)
	g.POST("/start", h.startGame)
	g.POST("/reset", h.resetGame)
	g.POST("/plays", h.playCard)
	g.POST("/end-turn", h.endTurn)
	g.POST("/undo", h.undo)
	g.POST("/likes", h.cycleLike)
}

func (h *Handler) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.LobbyService.CreateLobby(c.Request.Context(), &lobby.CreateLobbyInput{
		HostName: req.HostName,
		HostUUID: req.HostUUID,
		Settings: req.Settings,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, out.Game)
}

func (h *Handler) newSolitaire(c *gin.Context) {
	var req solitaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.LobbyService.NewSolitaireGame(c.Request.Context(), &lobby.NewSolitaireGameInput{
		PlayerName: req.PlayerName,
		PlayerUUID: req.PlayerUUID,
		Settings:   req.Settings,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, out.Game)
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.config.ProfileRepo.GetProfile(c.Request.Context(), &playerRepo.GetProfileInput{
		PlayerUUID: c.Param("uuid"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) getGame(c *gin.Context) {
	game, err := h.config.LobbyService.GetLobby(c.Request.Context(), &lobby.GetLobbyInput{
		GameID: c.Param("code"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (h *Handler) getStats(c *gin.Context) {
	game, err := h.config.LobbyService.GetLobby(c.Request.Context(), &lobby.GetLobbyInput{
		GameID: c.Param("code"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats.Summarize(game))
}

func (h *Handler) joinGame(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.LobbyService.JoinLobby(c.Request.Context(), &lobby.JoinLobbyInput{
		GameID:     c.Param("code"),
		PlayerName: req.PlayerName,
		PlayerUUID: req.PlayerUUID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playerUUID": out.PlayerUUID,
		"game":       out.Game,
	})
}

func (h *Handler) leaveGame(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.LobbyService.LeaveLobby(c.Request.Context(), &lobby.LeaveLobbyInput{
		GameID:     c.Param("code"),
		PlayerUUID: req.PlayerUUID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": out.Deleted,
		"game":    out.Game,
	})
}

func (h *Handler) startGame(c *gin.Context) {
	out, err := h.config.LobbyService.StartGame(c.Request.Context(), &lobby.StartGameInput{
		GameID: c.Param("code"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Game)
}

func (h *Handler) resetGame(c *gin.Context) {
	if _, err := h.config.LobbyService.ResetGame(c.Request.Context(), &lobby.ResetGameInput{
		GameID: c.Param("code"),
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) playCard(c *gin.Context) {
	var req playCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.PlayService.PlayCard(c.Request.Context(), &play.PlayCardInput{
		GameID:     c.Param("code"),
		PlayerUUID: req.PlayerUUID,
		CardIndex:  *req.CardIndex,
		PileID:     req.PileID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Game)
}

func (h *Handler) endTurn(c *gin.Context) {
	var req endTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.PlayService.EndTurn(c.Request.Context(), &play.EndTurnInput{
		GameID:     c.Param("code"),
		PlayerUUID: req.PlayerUUID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Game)
}

func (h *Handler) undo(c *gin.Context) {
	out, err := h.config.PlayService.Undo(c.Request.Context(), &play.UndoInput{
		GameID: c.Param("code"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Game)
}

func (h *Handler) cycleLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.config.PlayService.CycleLikeSignal(c.Request.Context(), &play.CycleLikeSignalInput{
		GameID: c.Param("code"),
		PileID: req.PileID,
		Seat:   *req.Seat,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Game)
}

// fail maps service and engine errors onto status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lobby.ErrGameNotFound),
		errors.Is(err, play.ErrGameNotFound),
		errors.Is(err, engine.ErrUnknownPlayer),
		errors.Is(err, engine.ErrUnknownPile),
		errors.Is(err, lobby.ErrPlayerNotInLobby),
		errors.Is(err, playerRepo.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, lobby.ErrGameAlreadyStarted),
		errors.Is(err, lobby.ErrGameFull),
		errors.Is(err, play.ErrGameNotInProgress),
		errors.Is(err, game.ErrTransactionConflict):
		return http.StatusConflict
	case errors.Is(err, lobby.ErrSettingsInvalid),
		errors.Is(err, engine.ErrInvalidCardIndex),
		errors.Is(err, engine.ErrIllegalMove),
		errors.Is(err, engine.ErrTurnNotComplete),
		errors.Is(err, engine.ErrWrongMode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
