package server

import (
	"chat-live/domain/chat"
	"chat-live/errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FullName   string `json:"fullName"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// GET /api/status
func (s *Server) status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Server is live",
		"online":  s.chatService.Online(),
		"stats":   s.monitoring.GetLatest(),
	})
}

// POST /api/auth/signup
func (s *Server) signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err))
	}
	user, token, err := s.authService.Signup(chat.SignupCommand{
		FullName: body.FullName,
		Email:    body.Email,
		Password: body.Password,
		Bio:      body.Bio,
	})
	if err != nil {
		return fail(c, err)
	}
	s.log.Info("User signed up", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created",
		"user":    user,
		"token":   token,
	})
}

// POST /api/auth/login
func (s *Server) login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err))
	}
	user, token, err := s.authService.Login(body.Email, body.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user, "token": token})
}

// GET /api/auth/check
func (s *Server) check(c *fiber.Ctx) error {
	user, err := s.authService.CurrentUser(viewer(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// PUT /api/auth/update-profile
func (s *Server) updateProfile(c *fiber.Ctx) error {
	var body updateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err))
	}
	user, err := s.authService.UpdateProfile(c.UserContext(), chat.UpdateProfileCommand{
		UserID:     viewer(c),
		FullName:   body.FullName,
		Bio:        body.Bio,
		ProfilePic: body.ProfilePic,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// GET /api/messages/users
func (s *Server) listCounterparts(c *fiber.Ctx) error {
	counterparts, err := s.chatService.ListCounterparts(viewer(c))
	if err != nil {
		return fail(c, err)
	}
	users := counterparts.Users
	if users == nil {
		users = []chat.User{}
	}
	unseen := counterparts.Unseen
	if unseen == nil {
		unseen = chat.UnseenMap{}
	}
	return c.JSON(fiber.Map{"success": true, "users": users, "unseenMessages": unseen})
}

// GET /api/messages/:id
func (s *Server) fetchThread(c *fiber.Ctx) error {
	messages, err := s.chatService.FetchThread(c.UserContext(), chat.FetchThreadCommand{
		ViewerID:      viewer(c),
		CounterpartID: c.Params("id"),
	})
	if err != nil {
		return fail(c, err)
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages})
}

// GET /api/messages/mark/:id
func (s *Server) markMessageSeen(c *fiber.Ctx) error {
	err := s.chatService.MarkMessageSeen(c.UserContext(), chat.MarkMessageSeenCommand{
		ViewerID:  viewer(c),
		MessageID: c.Params("id"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// POST /api/messages/send/:id
func (s *Server) sendMessage(c *fiber.Ctx) error {
	var body sendMessageRequest
	if err := c.BodyParser(&body); err != nil {
		s.monitoring.IncrRejectedSends()
		return fail(c, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err))
	}
	message, err := s.chatService.SendMessage(c.UserContext(), chat.SendMessageCommand{
		SenderID:    viewer(c),
		RecipientID: c.Params("id"),
		Text:        body.Text,
		Image:       body.Image,
	})
	if err != nil {
		s.monitoring.IncrRejectedSends()
		return fail(c, err)
	}
	s.monitoring.IncrMessagesSent()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "newMessage": message})
}
