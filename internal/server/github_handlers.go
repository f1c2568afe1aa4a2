package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos handles GET /api/profile/github/:username. Any upstream
// failure collapses to 404 "no github profile found".
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.githubClient.UserRepos(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(repos)
}
