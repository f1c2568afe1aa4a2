package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUpstream           = "UPSTREAM_FAILURE"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is a typed application error carried from the service layer to
// the handlers, which translate it into the endpoint's wire shape.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is matching on code, so sentinel AppErrors compare by
// taxonomy rather than by pointer.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "invalid credentials"}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Code: CodeUpstream, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "server error", Err: err}
}

// Sentinel errors shared between services and handlers.
var (
	ErrProfileNotFound = NewNotFoundError("there is no profile for this user")
	ErrProfileMissing  = NewNotFoundError("profile not found")
	ErrPostNotFound    = NewNotFoundError("post not found")
	ErrUserNotFound    = NewNotFoundError("user not found")
	ErrCommentNotFound = NewNotFoundError("comment does not exist")
	ErrNotAuthorized   = NewForbiddenError("user not authorized")
	ErrAlreadyLiked    = NewConflictError("post already liked")
	ErrNotYetLiked     = NewConflictError("post has not yet been liked")
	ErrUserExists      = NewConflictError("user already exists")
	ErrNoGithubProfile = NewNotFoundError("no github profile found")
)

// ErrMsg is the single-message error body used across the API.
type ErrMsg struct {
	Msg string `json:"msg"`
}

// ErrList is the validation-style error body: a list of {msg} objects.
type ErrList struct {
	Errors []ErrMsg `json:"errors"`
}

// RespondMsg writes a `{"msg": ...}` error body with the given status.
func RespondMsg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrMsg{Msg: msg})
}

// RespondErrors writes a `{"errors":[{"msg": ...}, ...]}` body with the
// given status, as produced by request validation.
func RespondErrors(c *fiber.Ctx, status int, msgs ...string) error {
	body := ErrList{Errors: make([]ErrMsg, 0, len(msgs))}
	for _, m := range msgs {
		body.Errors = append(body.Errors, ErrMsg{Msg: m})
	}
	return c.Status(status).JSON(body)
}

// RespondServerError writes the generic 500 body used for unhandled failures.
func RespondServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("server error")
}
