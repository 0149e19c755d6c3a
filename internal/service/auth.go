package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KehaoC/GF/internal/crypto"
	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two must stay indistinguishable to callers so login
	// cannot be used to enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated covers every token failure on protected routes:
	// missing, malformed, expired, or naming a user that no longer exists.
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrInactiveUser    = errors.New("inactive user")

	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameTaken    = errors.New("username already taken")
)

// UserRepository is the persistence surface the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// AuthService handles registration, login and token resolution.
type AuthService struct {
	repo   UserRepository
	tokens *crypto.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserRepository, tokens *crypto.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user account and returns an access token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.TokenResponse, error) {
	if req.Username == "" {
		return model.TokenResponse{}, ErrUsernameRequired
	}
	if req.Password == "" {
		return model.TokenResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.TokenResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.TokenResponse{}, ErrUsernameTaken
		}
		return model.TokenResponse{}, err
	}

	return s.issue(user.Username)
}

// Login verifies credentials and returns an access token. Unknown usernames
// and wrong passwords produce the identical error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	return s.issue(user.Username)
}

// ResolveToken validates a bearer token and returns the user it names. Every
// failure collapses to ErrUnauthenticated; the underlying cause is logged
// server-side only.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	username, err := s.tokens.Validate(token)
	if err != nil {
		slog.Debug("token rejected", "reason", err)
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			slog.Debug("token subject unknown", "subject", username)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

// RequireActive rejects users whose account has been deactivated. Only
// reachable after successful authentication, so the error is distinguishable.
func (s *AuthService) RequireActive(user *model.User) error {
	if !user.IsActive {
		return ErrInactiveUser
	}
	return nil
}

func (s *AuthService) issue(username string) (model.TokenResponse, error) {
	token, err := s.tokens.Issue(username)
	if err != nil {
		return model.TokenResponse{}, err
	}
	return model.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
