package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/internal/utils"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set Authorization on WebSocket dials, so the token
	// travels as a query parameter and origin checking is left to CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades portal clients to WebSocket and pumps hub events out.
type WSHandler struct {
	hub *services.Hub
}

func NewWSHandler(hub *services.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Stream handles WebSocket connections for real-time updates
// GET /api/ws?token=<jwt>
func (h *WSHandler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		response.Unauthorized(c, "token required")
		return
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, "invalid token")
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Connection id distinguishes multiple tabs of the same user in logs.
	connID := uuid.NewString()
	events := h.hub.Subscribe(claims.UserID)
	logger.Info().
		Str("conn_id", connID).
		Str("user_id", claims.UserID).
		Int("total", h.hub.ClientCount()).
		Msg("websocket client connected")

	go h.writePump(conn, claims.UserID, events)
	h.readPump(conn, connID, claims.UserID, events)
}

// readPump drains inbound frames so close and pong frames are processed;
// clients are not expected to send application data.
func (h *WSHandler) readPump(conn *websocket.Conn, connID, userID string, events chan services.Event) {
	defer func() {
		h.hub.Unsubscribe(userID, events)
		conn.Close()
		logger.Info().Str("conn_id", connID).Str("user_id", userID).Msg("websocket client disconnected")
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WSHandler) writePump(conn *websocket.Conn, userID string, events chan services.Event) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case ev, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
