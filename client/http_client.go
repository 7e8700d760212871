package client

import (
	"chat-live/auth"
	"chat-live/domain/chat"
	"chat-live/errors"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// APIClient talks to the REST surface. It keeps the session token after login.
type APIClient struct {
	mu      sync.RWMutex
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	token   auth.Token
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		http:    &fasthttp.Client{Name: "chat-live-client"},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

type envelope struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	Token          auth.Token       `json:"token"`
	User           chat.User        `json:"user"`
	Users          []chat.User      `json:"users"`
	UnseenMessages chat.UnseenMap   `json:"unseenMessages"`
	Messages       []chat.Message   `json:"messages"`
	NewMessage     chat.Message     `json:"newMessage"`
	Online         chat.PresenceSet `json:"online"`
}

func (c *APIClient) Token() auth.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges credentials for a token and remembers it.
func (c *APIClient) Login(ctx context.Context, email, password string) (chat.User, error) {
	var out envelope
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/auth/login", body, &out); err != nil {
		return chat.User{}, err
	}
	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	return out.User, nil
}

// UpdateProfile changes the non-empty fields of the logged in user's profile.
func (c *APIClient) UpdateProfile(ctx context.Context, fullName, bio, profilePic string) (chat.User, error) {
	var out envelope
	body := map[string]string{"fullName": fullName, "bio": bio, "profilePic": profilePic}
	if err := c.do(ctx, fasthttp.MethodPut, "/api/auth/update-profile", body, &out); err != nil {
		return chat.User{}, err
	}
	return out.User, nil
}

func (c *APIClient) ListCounterparts(ctx context.Context) (chat.Counterparts, error) {
	var out envelope
	if err := c.do(ctx, fasthttp.MethodGet, "/api/messages/users", nil, &out); err != nil {
		return chat.Counterparts{}, err
	}
	return chat.Counterparts{Users: out.Users, Unseen: out.UnseenMessages}, nil
}

func (c *APIClient) FetchThread(ctx context.Context, counterpartID string) ([]chat.Message, error) {
	var out envelope
	if err := c.do(ctx, fasthttp.MethodGet, "/api/messages/"+counterpartID, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *APIClient) MarkMessageSeen(ctx context.Context, messageID uuid.UUID) error {
	var out envelope
	return c.do(ctx, fasthttp.MethodGet, "/api/messages/mark/"+messageID.String(), nil, &out)
}

func (c *APIClient) SendMessage(ctx context.Context, recipientID, text, image string) (chat.Message, error) {
	var out envelope
	body := map[string]string{"text": text, "image": image}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/messages/send/"+recipientID, body, &out); err != nil {
		return chat.Message{}, err
	}
	return out.NewMessage, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, out *envelope) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if token := c.Token(); token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+string(token))
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(data)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode(), err)
	}
	if resp.StatusCode() >= fasthttp.StatusBadRequest || !out.Success {
		return statusError(resp.StatusCode(), out.Message)
	}
	return nil
}

// statusError maps an error response back to the sentinel the server started from.
func statusError(code int, message string) error {
	switch code {
	case fasthttp.StatusUnauthorized:
		return fmt.Errorf("%w: %s", errors.ErrUnauthenticated, message)
	case fasthttp.StatusForbidden:
		return fmt.Errorf("%w: %s", errors.ErrForbidden, message)
	case fasthttp.StatusBadRequest:
		return fmt.Errorf("%w: %s", errors.ErrInvalidPayload, message)
	case fasthttp.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", errors.ErrPersistence, message)
	default:
		return fmt.Errorf("server answered %d: %s", code, message)
	}
}
