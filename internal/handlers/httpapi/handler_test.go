package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/kcorless/UpNDown/internal/common/clock"
	"github.com/kcorless/UpNDown/internal/common/gamecode"
	"github.com/kcorless/UpNDown/internal/common/uuid"
	"github.com/kcorless/UpNDown/internal/deck"
	"github.com/kcorless/UpNDown/internal/models"
	gameRepo "github.com/kcorless/UpNDown/internal/repositories/game"
	playerRepo "github.com/kcorless/UpNDown/internal/repositories/player"
	"github.com/kcorless/UpNDown/internal/rules"
	"github.com/kcorless/UpNDown/internal/services/lobby"
	"github.com/kcorless/UpNDown/internal/services/play"
)

// HandlerTestSuite runs the full HTTP surface against a real repository on
// miniredis.
type HandlerTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	repo, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	profileRepo, err := playerRepo.NewRedis(&playerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	lobbySvc, err := lobby.New(&lobby.Config{
		GameRepo:      repo,
		ProfileRepo:   profileRepo,
		Shuffler:      deck.New(&deck.Config{Seed: 42}),
		CodeGenerator: gamecode.New(&gamecode.Config{Seed: 42}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	playSvc, err := play.New(&play.Config{
		GameRepo:    repo,
		ProfileRepo: profileRepo,
		Clock:       &clock.DefaultClock{},
	})
	s.Require().NoError(err)

	handler, err := New(&Config{
		LobbyService: lobbySvc,
		PlayService:  playSvc,
		GameRepo:     repo,
		ProfileRepo:  profileRepo,
	})
	s.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	handler.Register(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decodeGame(w *httptest.ResponseRecorder) *models.GameState {
	var game models.GameState
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &game))
	return &game
}

// createAndJoin builds a two-player lobby and returns its code.
func (s *HandlerTestSuite) createAndJoin() string {
	w := s.do(http.MethodPost, "/games", gin.H{"hostName": "Alice", "hostUUID": "alice"})
	s.Require().Equal(http.StatusCreated, w.Code)
	code := s.decodeGame(w).GameID
	s.Require().Len(code, gamecode.Length)

	w = s.do(http.MethodPost, "/games/"+code+"/join", gin.H{"playerName": "Bob", "playerUUID": "bob"})
	s.Require().Equal(http.StatusOK, w.Code)

	return code
}

func (s *HandlerTestSuite) TestLobbyLifecycle() {
	code := s.createAndJoin()

	w := s.do(http.MethodGet, "/games/"+code, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	game := s.decodeGame(w)
	s.Len(game.Players, 2)
	s.Equal(models.GameStatusWaiting, game.Status)

	// joining again under the same identity only renames
	w = s.do(http.MethodPost, "/games/"+code+"/join", gin.H{"playerName": "Robert", "playerUUID": "bob"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/games/"+code, nil)
	game = s.decodeGame(w)
	s.Len(game.Players, 2)
	s.Equal("Robert", game.Players["bob"].Name)
}

func (s *HandlerTestSuite) TestStartAndPlay() {
	code := s.createAndJoin()

	w := s.do(http.MethodPost, "/games/"+code+"/start", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	game := s.decodeGame(w)
	s.Equal(models.GameStatusInProgress, game.Status)
	s.Len(game.Players["alice"].Hand, models.DefaultTwoPlayerHandSize)

	// joining a started game conflicts
	w = s.do(http.MethodPost, "/games/"+code+"/join", gin.H{"playerName": "Carol", "playerUUID": "carol"})
	s.Equal(http.StatusConflict, w.Code)

	// play the first legal card of the current player
	current := game.Players[game.CurrentPlayerUUID]
	cardIndex, pileID := -1, ""
	for i, card := range current.Hand {
		for _, pile := range game.Piles {
			if rules.IsValidPlay(card, pile) {
				cardIndex, pileID = i, pile.ID
				break
			}
		}
		if cardIndex >= 0 {
			break
		}
	}
	s.Require().GreaterOrEqual(cardIndex, 0)

	w = s.do(http.MethodPost, "/games/"+code+"/plays", gin.H{
		"playerUUID": game.CurrentPlayerUUID,
		"cardIndex":  cardIndex,
		"pileID":     pileID,
	})
	s.Require().Equal(http.StatusOK, w.Code)
	game = s.decodeGame(w)
	s.Equal(1, game.CardsPlayedThisTurn)

	// ending the turn one play short is rejected
	w = s.do(http.MethodPost, "/games/"+code+"/end-turn", gin.H{"playerUUID": game.CurrentPlayerUUID})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	// undo reverts the play
	w = s.do(http.MethodPost, "/games/"+code+"/undo", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	game = s.decodeGame(w)
	s.Equal(0, game.CardsPlayedThisTurn)
}

func (s *HandlerTestSuite) TestLikeSignals() {
	code := s.createAndJoin()
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/games/"+code+"/start", nil).Code)

	w := s.do(http.MethodPost, "/games/"+code+"/likes", gin.H{"pileID": models.PileIDUp1, "seat": 0})
	s.Require().Equal(http.StatusOK, w.Code)
	game := s.decodeGame(w)
	s.Equal(models.SignalLike, game.Pile(models.PileIDUp1).LikeSignals.Top[0])
}

func (s *HandlerTestSuite) TestStatsEndpoint() {
	code := s.createAndJoin()

	w := s.do(http.MethodGet, "/games/"+code+"/stats", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var summary struct {
		GameID  string `json:"gameID"`
		Players []struct {
			PlayerUUID string `json:"playerUUID"`
		} `json:"players"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	s.Equal(code, summary.GameID)
	s.Len(summary.Players, 2)
}

func (s *HandlerTestSuite) TestResetRemovesGame() {
	code := s.createAndJoin()

	w := s.do(http.MethodPost, "/games/"+code+"/reset", nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/games/"+code, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestSolitaireEndpoint() {
	w := s.do(http.MethodPost, "/solitaire", gin.H{"playerName": "Alice"})
	s.Require().Equal(http.StatusCreated, w.Code)

	game := s.decodeGame(w)
	s.Equal(models.GameModeSolitaire, game.Mode)
	s.Equal(models.GameStatusInProgress, game.Status)
	s.Len(game.Players[models.SolitairePlayerUUID].Hand, models.DefaultSolitaireHandSize)
}

func (s *HandlerTestSuite) TestProfileEndpoint() {
	s.createAndJoin()

	w := s.do(http.MethodGet, "/players/bob", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var profile models.Profile
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &profile))
	s.Equal("bob", profile.UUID)
	s.Equal("Bob", profile.Name)

	w = s.do(http.MethodGet, "/players/nobody", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestValidationErrors() {
	w := s.do(http.MethodPost, "/games", gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/games/GGGGGG", nil)
	s.Equal(http.StatusNotFound, w.Code)

	settings := models.DefaultSettings()
	settings.CardMax = 500
	w = s.do(http.MethodPost, "/games", gin.H{"hostName": "Alice", "settings": settings})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *HandlerTestSuite) TestGameStream() {
	code := s.createAndJoin()

	server := httptest.NewServer(s.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/games/" + code + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	defer conn.Close()

	// initial snapshot
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var game models.GameState
	s.Require().NoError(conn.ReadJSON(&game))
	s.Equal(code, game.GameID)
	s.Len(game.Players, 2)

	// a committed write is pushed to the stream
	w := s.do(http.MethodPost, "/games/"+code+"/join", gin.H{"playerName": "Carol", "playerUUID": "carol"})
	s.Require().Equal(http.StatusOK, w.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	s.Require().NoError(conn.ReadJSON(&game))
	s.Len(game.Players, 3)
}
