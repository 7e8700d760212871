package e2e

import (
	"chat-live/client"
	"chat-live/domain/chat"
	"chat-live/domain/event"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/gookit/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/valyala/fasthttp"
)

const password = "E2ePassword123!"

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("E2E_SERVER_ADDR not set")
	}
}

// Step prints a colorized header for a scenario step in the logs
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// User is a freshly signed up account with its own REST client and push inbox.
type User struct {
	Profile chat.User
	API     *client.APIClient
	Inbox   chan event.PushEvent
	Leave   context.CancelFunc
}

// SignupAndConnect creates a unique account, logs it in and opens its push channel.
func (s *BaseSuite) SignupAndConnect(name string) *User {
	email := fmt.Sprintf("%s-%s@e2e.test", strings.ToLower(name), uuid.NewString()[:8])
	s.signup(name, email)

	ctx, cancel := context.WithCancel(context.Background())
	s.T().Cleanup(cancel)
	api := client.NewAPIClient(s.Config.ServerAddr, 5*time.Second)
	profile, err := api.Login(ctx, email, password)
	s.Require().NoError(err, "login failed for "+email)

	u := &User{Profile: profile, API: api, Inbox: make(chan event.PushEvent, 64), Leave: cancel}
	pushURL, err := client.PushURL(s.Config.ServerAddr, profile.ID, api.Token())
	s.Require().NoError(err)
	go func() {
		_ = client.NewPushListener(slog.Default(), 5*time.Second).Listen(ctx, pushURL, func(e event.PushEvent) {
			if s.Config.DebugJSON {
				data, _ := json.MarshalIndent(event.ToFrame(e), "", "  ")
				s.T().Logf("PUSH to %s:\n%s", name, data)
			}
			u.Inbox <- e
		})
	}()
	return u
}

func (s *BaseSuite) signup(name, email string) {
	body, err := json.Marshal(map[string]string{
		"fullName": name,
		"email":    email,
		"password": password,
		"bio":      "e2e",
	})
	s.Require().NoError(err)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)
	req.SetRequestURI(strings.TrimSuffix(s.Config.ServerAddr, "/") + "/api/auth/signup")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	s.Require().NoError(fasthttp.DoTimeout(req, resp, 5*time.Second))
	s.Require().Equal(fasthttp.StatusCreated, resp.StatusCode(), string(resp.Body()))
}

// Await returns the first inbox event accepted by match.
func (s *BaseSuite) Await(u *User, what string, match func(event.PushEvent) bool) event.PushEvent {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case e := <-u.Inbox:
			if match(e) {
				return e
			}
		case <-deadline:
			s.FailNow("timed out waiting for " + what)
			return nil
		}
	}
}

// ForeignHandshake checks that the push endpoint rejects a handshake for someone else.
func (s *BaseSuite) ForeignHandshake(u *User, foreignUserID string) error {
	pushURL, err := client.PushURL(s.Config.ServerAddr, foreignUserID, u.API.Token())
	s.Require().NoError(err)
	conn, _, err := websocket.DefaultDialer.Dial(pushURL, nil)
	if err == nil {
		_ = conn.Close()
	}
	return err
}
