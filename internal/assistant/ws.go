package assistant

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClients tracks connected sockets so every open window sees the same
// dialogue log.
var wsClients = struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}{conns: make(map[*websocket.Conn]struct{})}

func addClient(ws *websocket.Conn) {
	wsClients.mu.Lock()
	wsClients.conns[ws] = struct{}{}
	wsClients.mu.Unlock()
}

func removeClient(ws *websocket.Conn) {
	wsClients.mu.Lock()
	delete(wsClients.conns, ws)
	wsClients.mu.Unlock()
	_ = ws.Close()
}

func broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	wsClients.mu.Lock()
	defer wsClients.mu.Unlock()
	for ws := range wsClients.conns {
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(wsClients.conns, ws)
		}
	}
}

type incomingQuery struct {
	Text string `json:"text"`
}

// WSHandler upgrades to a websocket chat session: the current log is
// replayed on join, then each incoming query produces two broadcast log
// entries (the user echo and the assistant reply).
func WSHandler(a *Assistant) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		addClient(ws)
		log.Println("[assistant] ws client connected")

		for _, msg := range a.Messages() {
			_ = ws.WriteJSON(msg)
		}

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			var incoming incomingQuery
			text := ""
			if err := json.Unmarshal(payload, &incoming); err == nil {
				text = incoming.Text
			} else {
				text = string(payload)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}

			userMsg, reply, err := a.Ask(text)
			if err != nil {
				continue
			}
			broadcast(userMsg)
			broadcast(reply)
		}

		removeClient(ws)
		log.Println("[assistant] ws client disconnected")
	}
}
