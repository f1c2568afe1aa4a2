package server

import (
	"errors"

	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentProfile handles GET /api/profile/me. A caller without a profile
// gets 400, matching the rest of the profile endpoints.
func (s *Server) GetCurrentProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetCurrentProfile(c.UserContext(), userIDFromCtx(c))
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			return models.RespondMsg(c, fiber.StatusBadRequest, models.ErrProfileNotFound.Message)
		}
		return respondAppError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile, creating the caller's profile or
// replacing its scalar fields.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req service.UpsertProfileInput
	if !bodyParser(c, &req) {
		return nil
	}

	var msgs []string
	if req.Status == "" {
		msgs = append(msgs, "status is required")
	}
	if req.Skills == "" {
		msgs = append(msgs, "skills is required")
	}
	if len(msgs) > 0 {
		return models.RespondErrors(c, fiber.StatusBadRequest, msgs...)
	}

	profile, err := s.profileService.UpsertProfile(c.UserContext(), userIDFromCtx(c), req)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile, the public directory.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:id. Both a malformed id
// and a missing profile return 400, not 404.
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfileByUserID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, models.ErrProfileMissing) {
			return models.RespondMsg(c, fiber.StatusBadRequest, models.ErrProfileMissing.Message)
		}
		return respondAppError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience handles PUT /api/profile/experience.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req service.ExperienceInput
	if !bodyParser(c, &req) {
		return nil
	}

	var msgs []string
	if req.Title == "" {
		msgs = append(msgs, "title is required")
	}
	if req.Company == "" {
		msgs = append(msgs, "company is required")
	}
	if req.From == "" {
		msgs = append(msgs, "from date is required")
	}
	if len(msgs) > 0 {
		return models.RespondErrors(c, fiber.StatusBadRequest, msgs...)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), userIDFromCtx(c), req)
	if err != nil {
		return s.respondProfileMutationError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:id. Removing an
// unknown entry id succeeds and returns the unchanged profile.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	profile, err := s.profileService.DeleteExperience(c.UserContext(), userIDFromCtx(c), c.Params("id"))
	if err != nil {
		return s.respondProfileMutationError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req service.EducationInput
	if !bodyParser(c, &req) {
		return nil
	}

	var msgs []string
	if req.School == "" {
		msgs = append(msgs, "school is required")
	}
	if req.Degree == "" {
		msgs = append(msgs, "degree is required")
	}
	if req.FieldOfStudy == "" {
		msgs = append(msgs, "field of study is required")
	}
	if req.From == "" {
		msgs = append(msgs, "from date is required")
	}
	if len(msgs) > 0 {
		return models.RespondErrors(c, fiber.StatusBadRequest, msgs...)
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), userIDFromCtx(c), req)
	if err != nil {
		return s.respondProfileMutationError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:id.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	profile, err := s.profileService.DeleteEducation(c.UserContext(), userIDFromCtx(c), c.Params("id"))
	if err != nil {
		return s.respondProfileMutationError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile, removing the caller's posts,
// profile, and identity.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.UserContext(), userIDFromCtx(c)); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "user deleted"})
}

// respondProfileMutationError keeps the list-mutation endpoints on 400 for a
// missing profile instead of the generic 404.
func (s *Server) respondProfileMutationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrProfileNotFound) {
		return models.RespondMsg(c, fiber.StatusBadRequest, models.ErrProfileNotFound.Message)
	}
	return respondAppError(c, err)
}
