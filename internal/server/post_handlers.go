package server

import (
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

type postBody struct {
	Text string `json:"text"`
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postBody
	if !bodyParser(c, &req) {
		return nil
	}
	if req.Text == "" {
		return models.RespondErrors(c, fiber.StatusBadRequest, "text is required")
	}

	post, err := s.postService.CreatePost(c.UserContext(), userIDFromCtx(c), req.Text)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// ListPosts handles GET /api/posts, newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.DeletePost(c.UserContext(), userIDFromCtx(c), c.Params("id")); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "post removed"})
}

// LikePost handles PUT /api/posts/like/:id and returns the updated like list.
func (s *Server) LikePost(c *fiber.Ctx) error {
	likes, err := s.postService.LikePost(c.UserContext(), userIDFromCtx(c), c.Params("id"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	likes, err := s.postService.UnlikePost(c.UserContext(), userIDFromCtx(c), c.Params("id"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id and returns the updated
// comment list.
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req postBody
	if !bodyParser(c, &req) {
		return nil
	}
	if req.Text == "" {
		return models.RespondErrors(c, fiber.StatusBadRequest, "text is required")
	}

	comments, err := s.postService.AddComment(c.UserContext(), userIDFromCtx(c), c.Params("id"), req.Text)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:commentId. Only the
// comment's author may remove it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comments, err := s.postService.DeleteComment(
		c.UserContext(), userIDFromCtx(c), c.Params("id"), c.Params("commentId"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(comments)
}
