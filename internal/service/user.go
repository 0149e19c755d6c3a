package service

import (
	"context"

	"github.com/KehaoC/GF/internal/crypto"
	"github.com/KehaoC/GF/internal/model"
)

// UserService handles profile reads and updates for the authenticated user.
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Get returns the user's profile.
func (s *UserService) Get(user *model.User) model.UserResponse {
	return model.UserToResponse(user)
}

// Update changes the user's email and/or password. A new password is
// re-hashed before it is stored.
func (s *UserService) Update(ctx context.Context, user *model.User, req model.UpdateUserRequest) (model.UserResponse, error) {
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Password != nil {
		if *req.Password == "" {
			return model.UserResponse{}, ErrPasswordRequired
		}
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return model.UserResponse{}, err
	}

	return model.UserToResponse(user), nil
}
