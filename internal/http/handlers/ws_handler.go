package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/auth"
	"github.com/influencer-portal/backend/internal/config"
	"github.com/influencer-portal/backend/internal/events"
	"github.com/influencer-portal/backend/internal/middleware"
	"go.uber.org/zap"
)

type WSHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	sessions    middleware.SessionChecker
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, sessions middleware.SessionChecker, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:         cfg,
		subscriber:  subscriber,
		sessions:    sessions,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

// Start forwards portal events to their owner's sockets until ctx is done.
func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.StreamPortal, func(event events.Event) {
		h.SendToUser(event.UserEmail, event)
	})
}

func (h *WSHub) SendToUser(email string, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[email] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("ws write failed", zap.String("email", email), zap.Error(err))
		}
	}
}

// Connections reports how many sockets email has open.
func (h *WSHub) Connections(email string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[email])
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	// Browsers cannot set headers on an upgrade, so the token rides in the query.
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}
	if email, err := h.sessions.Authenticate(context.Background(), claims.SessionID); err != nil || email != claims.Email {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"session expired"}`))
		conn.Close()
		return
	}

	email := claims.Email

	h.mu.Lock()
	h.connections[email] = append(h.connections[email], conn)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		conns := h.connections[email]
		for i, c := range conns {
			if c == conn {
				h.connections[email] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.connections[email]) == 0 {
			delete(h.connections, email)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
