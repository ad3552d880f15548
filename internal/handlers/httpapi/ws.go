package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kcorless/UpNDown/internal/common/gamecode"
	gamesync "github.com/kcorless/UpNDown/internal/sync"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is same-origin behind the app's own server.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamGame upgrades to a websocket and relays every committed game
// document as one JSON message. Deletion is relayed as the JSON null and
// closes the stream.
func (h *Handler) streamGame(c *gin.Context) {
	gameID := gamecode.Normalize(c.Param("code"))

	syncer, err := gamesync.New(c.Request.Context(), &gamesync.Config{GameRepo: h.config.GameRepo}, gameID)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer syncer.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Reads only service control frames; a read error means the peer has gone.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeState(conn, syncer.State()); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case game, ok := <-syncer.Updates():
			if !ok {
				return
			}
			if err := writeState(conn, game); err != nil {
				log.Printf("game stream %s: write failed: %v", gameID, err)
				return
			}
			if game == nil {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted"))
				return
			}
		}
	}
}

func writeState(conn *websocket.Conn, state interface{}) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}
