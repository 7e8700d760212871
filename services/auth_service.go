//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"chat-live/auth"
	"chat-live/contract"
	"chat-live/domain/chat"
	"chat-live/errors"
	"chat-live/repositories"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
)

type IAuthService interface {
	Signup(cmd chat.SignupCommand) (chat.User, auth.Token, error)
	Login(email, password string) (chat.User, auth.Token, error)
	CurrentUser(userID string) (chat.User, error)
	UpdateProfile(ctx context.Context, cmd chat.UpdateProfileCommand) (chat.User, error)
}

type AuthService struct {
	log            *slog.Logger
	userRepository repositories.IUserRepository
	tokens         *auth.TokenIssuer
	assets         contract.AssetStore
}

// NewAuthService builds the account service. assets may be nil, profile
// pictures are then stored as given.
func NewAuthService(log *slog.Logger, repo repositories.IUserRepository, tokens *auth.TokenIssuer, assets contract.AssetStore) IAuthService {
	return &AuthService{log: log, userRepository: repo, tokens: tokens, assets: assets}
}

func (s *AuthService) Signup(cmd chat.SignupCommand) (chat.User, auth.Token, error) {
	cmd.Email = strings.TrimSpace(cmd.Email)

	// Validation runs before any expensive hashing
	if err := auth.ValidateSignup(cmd); err != nil {
		return chat.User{}, "", err
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return chat.User{}, "", fmt.Errorf("hashing failed: %w", err)
	}

	user := repositories.User{
		Email:        cmd.Email,
		FullName:     cmd.FullName,
		Bio:          cmd.Bio,
		PasswordHash: hashedPassword,
		Roles:        []string{"user"},
	}
	userID, err := s.userRepository.CreateUser(user)
	if err != nil {
		return chat.User{}, "", err
	}
	user.ID = userID

	token, err := s.tokens.GenerateToken(userID, user.Roles)
	if err != nil {
		return chat.User{}, "", errors.ErrTokenGeneration
	}
	return ToChatUser(user), auth.Token(token), nil
}

func (s *AuthService) Login(email, password string) (chat.User, auth.Token, error) {
	user, err := s.userRepository.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		// Same answer for unknown users and wrong passwords
		return chat.User{}, "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return chat.User{}, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return chat.User{}, "", errors.ErrTokenGeneration
	}
	return ToChatUser(user), auth.Token(token), nil
}

func (s *AuthService) CurrentUser(userID string) (chat.User, error) {
	user, err := s.userRepository.GetUser(userID)
	if stderrors.Is(err, errors.ErrUserNotFound) {
		return chat.User{}, errors.ErrUnauthenticated
	}
	if err != nil {
		return chat.User{}, err
	}
	return ToChatUser(user), nil
}

// UpdateProfile changes the fields set in cmd. A new picture is uploaded first
// and the one it replaces is discarded once the profile is saved.
func (s *AuthService) UpdateProfile(ctx context.Context, cmd chat.UpdateProfileCommand) (chat.User, error) {
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	cmd.Bio = strings.TrimSpace(cmd.Bio)
	if err := auth.ValidateProfileUpdate(cmd); err != nil {
		return chat.User{}, err
	}

	picture := cmd.ProfilePic
	if picture != "" && s.assets != nil {
		ref, err := s.assets.Resolve(ctx, picture)
		if err != nil {
			return chat.User{}, err
		}
		picture = ref
	}

	var previous string
	user, err := s.userRepository.UpdateUser(cmd.UserID, func(user *repositories.User) {
		previous = user.ProfilePic
		if cmd.FullName != "" {
			user.FullName = cmd.FullName
		}
		if cmd.Bio != "" {
			user.Bio = cmd.Bio
		}
		if picture != "" {
			user.ProfilePic = picture
		}
	})
	if err != nil {
		if picture != cmd.ProfilePic {
			s.discard(picture)
		}
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return chat.User{}, errors.ErrUnauthenticated
		}
		return chat.User{}, err
	}

	if picture != "" && previous != "" && previous != picture {
		s.discard(previous)
	}
	s.log.Info("Profile updated", "user_id", user.ID)
	return ToChatUser(user), nil
}

func (s *AuthService) discard(ref string) {
	if s.assets == nil {
		return
	}
	if err := s.assets.Discard(ref); err != nil {
		s.log.Warn("Orphan profile picture left behind", "image", ref, "error", err)
	}
}
