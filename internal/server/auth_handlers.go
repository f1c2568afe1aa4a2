package server

import (
	"errors"

	"devconnector/internal/models"
	"devconnector/internal/service"
	"devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users. A successful registration immediately
// issues a session token.
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if !bodyParser(c, &req) {
		return nil
	}

	var msgs []string
	if req.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		msgs = append(msgs, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return models.RespondErrors(c, fiber.StatusBadRequest, msgs...)
	}

	tok, err := s.userService.Register(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return models.RespondErrors(c, fiber.StatusBadRequest, models.ErrUserExists.Message)
		}
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// Login handles POST /api/auth.
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if !bodyParser(c, &req) {
		return nil
	}

	var msgs []string
	if err := validation.ValidateEmail(req.Email); err != nil {
		msgs = append(msgs, err.Error())
	}
	if req.Password == "" {
		msgs = append(msgs, "password is required")
	}
	if len(msgs) > 0 {
		return models.RespondErrors(c, fiber.StatusBadRequest, msgs...)
	}

	tok, err := s.userService.Login(c.UserContext(), req)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// GetCurrentUser handles GET /api/auth, returning the authenticated identity
// without its password hash.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetCurrentUser(c.UserContext(), userIDFromCtx(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}
