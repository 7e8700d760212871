package server

import (
	"chat-live/auth"
	"chat-live/errors"
	"chat-live/observability"
	"chat-live/services"
	"chat-live/storage"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const localUserID = "userId"

type Options struct {
	BodyLimit            int
	ConnectionBufferSize int
	WriteTimeout         time.Duration
	PingInterval         time.Duration
	AssetsDir            string
}

// Server exposes the chat over REST and a websocket push channel.
type Server struct {
	log         *slog.Logger
	chatService services.IChatService
	authService services.IAuthService
	tokens      *auth.TokenIssuer
	monitoring  *observability.MonitoringManager
	opts        Options
	app         *fiber.App
}

func NewServer(log *slog.Logger, chatService services.IChatService, authService services.IAuthService,
	tokens *auth.TokenIssuer, monitoring *observability.MonitoringManager, opts Options) *Server {
	s := &Server{
		log:         log,
		chatService: chatService,
		authService: authService,
		tokens:      tokens,
		monitoring:  monitoring,
		opts:        opts,
	}
	s.app = fiber.New(fiber.Config{
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(cors.New())

	api := s.app.Group("/api")
	api.Get("/status", s.status)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", s.signup)
	authGroup.Post("/login", s.login)
	authGroup.Get("/check", s.requireAuth, s.check)
	authGroup.Put("/update-profile", s.requireAuth, s.updateProfile)

	messages := api.Group("/messages", s.requireAuth)
	messages.Get("/users", s.listCounterparts)
	messages.Get("/mark/:id", s.markMessageSeen)
	messages.Get("/:id", s.fetchThread)
	messages.Post("/send/:id", s.sendMessage)

	s.app.Get("/ws", s.authorizePush, s.pushHandler())

	if s.opts.AssetsDir != "" {
		s.app.Static(strings.TrimSuffix(storage.AssetRoute, "/"), s.opts.AssetsDir)
	}
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info("HTTP server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// requireAuth resolves the caller from its token and stores the user id in the request locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	claims, err := s.tokens.ValidateToken(tokenFrom(c))
	if err != nil {
		return fail(c, errors.ErrUnauthenticated)
	}
	c.Locals(localUserID, claims.UserID)
	return c.Next()
}

// tokenFrom accepts a bearer header, a bare token header or a token query parameter.
func tokenFrom(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if token := c.Get("token"); token != "" {
		return token
	}
	return c.Query("token")
}

func viewer(c *fiber.Ctx) string {
	userID, _ := c.Locals(localUserID).(string)
	return userID
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
	}
	s.log.Error("Unhandled request error", "path", c.Path(), "error", err)
	return fail(c, err)
}

// fail writes the error envelope. Server side failures are not detailed to the client.
func fail(c *fiber.Ctx, err error) error {
	code := errors.MapToHTTPStatus(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "message": message})
}
