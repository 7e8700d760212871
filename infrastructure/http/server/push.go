package server

import (
	"chat-live/errors"
	"chat-live/sink"
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// clientFrame is the only message a client sends on the push channel.
type clientFrame struct {
	Event string `json:"event"`
}

const disconnectEvent = "disconnect"

// authorizePush checks the handshake: the userId parameter must be the token's owner.
func (s *Server) authorizePush(c *fiber.Ctx) error {
	claims, err := s.tokens.ValidateToken(tokenFrom(c))
	if err != nil {
		return fail(c, errors.ErrUnauthenticated)
	}
	if userID := c.Query("userId"); userID != "" && userID != claims.UserID {
		return fail(c, errors.ErrForbidden)
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals(localUserID, claims.UserID)
	return c.Next()
}

func (s *Server) pushHandler() fiber.Handler {
	return websocket.New(s.handlePush)
}

// handlePush owns one connection: it registers a sink for the user, pumps
// queued events out and reads until the client leaves.
func (s *Server) handlePush(conn *websocket.Conn) {
	userID, _ := conn.Locals(localUserID).(string)
	ctx, cancel := context.WithCancel(context.Background())
	session := sink.NewWebSocketSink(s.log, s.opts.ConnectionBufferSize)

	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		if err := session.WritePump(ctx, conn, s.opts.WriteTimeout, s.opts.PingInterval); err != nil {
			s.log.Debug("Write pump stopped", "user_id", userID, "session_id", session.ID(), "error", err)
			_ = conn.Close()
		}
	}()

	s.monitoring.ConnectionOpened()
	s.chatService.Connect(ctx, userID, session)

	defer func() {
		session.Close()
		s.chatService.Disconnect(context.Background(), userID, session)
		cancel()
		<-pumpDone
		s.monitoring.ConnectionClosed()
	}()

	s.readLoop(conn, userID)
}

func (s *Server) readLoop(conn *websocket.Conn, userID string) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("Push channel closed", "user_id", userID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Event == disconnectEvent {
			return
		}
	}
}
