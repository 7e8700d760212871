package client

import (
	"chat-live/auth"
	"chat-live/domain/event"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fasthttp/websocket"
)

// PushListener holds the client end of the push channel.
type PushListener struct {
	log    *slog.Logger
	dialer *websocket.Dialer
}

func NewPushListener(log *slog.Logger, handshakeTimeout time.Duration) *PushListener {
	return &PushListener{
		log:    log,
		dialer: &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
	}
}

// PushURL builds the handshake URL from the server's http base URL.
func PushURL(baseURL, userID string, token auth.Token) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("token", string(token))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Listen connects and hands every decoded event to handle until ctx ends or
// the server closes the channel. Undecodable frames are logged and skipped.
func (l *PushListener) Listen(ctx context.Context, pushURL string, handle func(event.PushEvent)) error {
	conn, _, err := l.dialer.DialContext(ctx, pushURL, nil)
	if err != nil {
		return fmt.Errorf("push channel: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("push channel: %w", err)
		}
		e, err := event.Decode(data)
		if err != nil {
			l.log.Warn("Skipping push frame", "error", err)
			continue
		}
		handle(e)
	}
}
