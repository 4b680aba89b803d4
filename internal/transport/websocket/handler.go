package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/game"
	"github.com/adaptiveplay/tictactoe/backend/pkg/auth"
	"github.com/adaptiveplay/tictactoe/backend/pkg/uid"
)

const guestTokenTTL = 24 * time.Hour

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	JWTSecret      string
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the connection and runs the message loop.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// Keep-alive pinger. WriteControl may run concurrently with the data
	// writes in SendMessage; WriteMessage may not.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
					return
				}
			}
		}
	}()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// 1. Wait for Initialization. A returning guest presents its token; a
	// new one gets a fresh session id and token.
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" {
		log.Printf("[WS] Missing or invalid initialization")
		conn.Close()
		return
	}

	var guestID string
	if message.JWT != "" {
		claims, err := auth.ValidateGuestToken(h.JWTSecret, message.JWT)
		if err != nil {
			log.Printf("[WS] Invalid token during init: %v", err)
			conn.WriteJSON(domain.ServerMessage{Type: "error", Message: "Invalid or expired token"})
			conn.Close()
			return
		}
		guestID = claims.SessionID
	} else {
		guestID = uid.GenerateGameID()
		token, err := auth.GenerateGuestToken(h.JWTSecret, guestID, guestTokenTTL)
		if err != nil {
			log.Printf("[WS] Failed to mint guest token: %v", err)
			conn.Close()
			return
		}
		conn.WriteJSON(domain.ServerMessage{Type: "session", JWT: token})
	}

	log.Printf("[WS] Connection initialized for guest %s", guestID)
	h.ConnManager.AddConnection(guestID, conn)

	// 2. Cleanup on exit
	defer func() {
		log.Printf("[WS] Connection closed for guest %s", guestID)
		h.ConnManager.RemoveConnectionIfMatching(guestID, conn)
	}()

	// 3. Main Message Loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Guest disconnected unexpectedly: %v", err)
			}
			break
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			continue
		}

		h.processMessage(guestID, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(guestID string, msg domain.ClientMessage) {
	switch msg.Type {
	case "start_game":
		variant := domain.Variant(msg.Variant)
		if variant != domain.VariantLimited {
			variant = domain.VariantClassic
		}
		difficulty := domain.Difficulty(msg.Difficulty)
		switch difficulty {
		case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		default:
			difficulty = domain.DifficultyMedium
		}

		session := h.SessionManager.StartGame(guestID, variant, difficulty, domain.ParseMark(msg.Mark))
		h.ConnManager.SendMessage(guestID, domain.ServerMessage{
			Type:    "game_started",
			Payload: session.OpeningUpdate(),
		})

	case "make_move":
		session, exists := h.SessionManager.GetSession(guestID)
		if !exists {
			h.ConnManager.SendMessage(guestID, domain.ServerMessage{Type: "error", Message: "Game not found"})
			return
		}

		update, err := session.HandleHumanMove(msg.Cell)
		if err != nil {
			h.ConnManager.SendMessage(guestID, domain.ServerMessage{Type: "error", Message: err.Error()})
			return
		}
		h.ConnManager.SendMessage(guestID, domain.ServerMessage{Type: "move_result", Payload: update})

	case "abandon_game":
		h.SessionManager.RemoveSession(guestID)
		h.ConnManager.SendMessage(guestID, domain.ServerMessage{Type: "game_abandoned"})
	}
}
