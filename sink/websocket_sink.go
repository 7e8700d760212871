package sink

import (
	"chat-live/domain/event"
	"chat-live/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// FrameWriter is the part of a websocket connection the write pump needs.
type FrameWriter interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
}

// WebSocketSink is the session handle registered for a connected user.
// Producers enqueue through Consume; a single write pump owns the connection.
type WebSocketSink struct {
	id        string
	log       *slog.Logger
	events    chan event.PushEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewWebSocketSink(log *slog.Logger, bufferSize int) *WebSocketSink {
	return &WebSocketSink{
		id:     uuid.NewString(),
		log:    log,
		events: make(chan event.PushEvent, bufferSize),
		done:   make(chan struct{}),
	}
}

func (s *WebSocketSink) ID() string { return s.id }

// Consume queues the event for the write pump.
// It waits for room in the queue until ctx expires, then reports backpressure.
func (s *WebSocketSink) Consume(ctx context.Context, e event.PushEvent) error {
	select {
	case <-s.done:
		return errors.ErrSessionClosed
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-s.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", errors.ErrSessionBackpressure, ctx.Err())
	}
}

// Close stops the write pump. Safe to call more than once.
func (s *WebSocketSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *WebSocketSink) Done() <-chan struct{} { return s.done }

// WritePump drains queued events onto the connection and pings it every pingInterval.
// It returns on Close, on ctx cancellation or on the first write error.
func (s *WebSocketSink) WritePump(ctx context.Context, conn FrameWriter, writeTimeout, pingInterval time.Duration) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case e := <-s.events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event.ToFrame(e)); err != nil {
				s.Close()
				return fmt.Errorf("write %s: %w", e.Name(), err)
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}
