// Package service holds the business logic between the HTTP handlers and the
// repositories. Services return typed AppErrors; handlers translate those
// into the wire shapes.
package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/token"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	codec    *token.Codec
}

func NewUserService(userRepo repository.UserRepository, codec *token.Codec) *UserService {
	return &UserService{userRepo: userRepo, codec: codec}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an identity with a bcrypt password hash and a gravatar
// avatar derived from the email, then issues a token for it. The duplicate
// check races with concurrent registrations; the unique email index is the
// authority and its violation also maps to ErrUserExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Avatar:   models.GravatarURL(in.Email),
		Date:     now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.codec.Issue(user.ID.Hex())
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password collapse to the same error so the response does not leak which
// half failed.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", models.NewInvalidCredentialsError()
	}

	return s.codec.Issue(user.ID.Hex())
}

// GetCurrentUser loads the authenticated identity. The password hash stays
// out of responses via the model's json tag.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}
