package service

import (
	"context"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		postRepo:    postRepo,
	}
}

type UpsertProfileInput struct {
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	YouTube        string `json:"youtube"`
	Instagram      string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetCurrentProfile returns the caller's profile, or ErrProfileNotFound when
// they have none yet.
func (s *ProfileService) GetCurrentProfile(ctx context.Context, userID string) (*models.ProfileWithUser, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrProfileNotFound
	}
	profile, err := s.profileRepo.GetWithUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// UpsertProfile creates the caller's profile or overwrites its scalar fields.
// Experience and education lists are untouched on update.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID string, in UpsertProfileInput) (*models.Profile, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	fields := repository.ProfileFields{
		Status:         in.Status,
		Skills:         validation.ParseSkills(in.Skills),
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social: models.Social{
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			LinkedIn:  in.LinkedIn,
			YouTube:   in.YouTube,
			Instagram: in.Instagram,
		},
	}

	return s.profileRepo.Upsert(ctx, id, fields)
}

// ListProfiles returns the public directory, cached briefly since it is the
// most-hit read and tolerates slightly stale entries.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.ProfileWithUser, error) {
	var profiles []models.ProfileWithUser
	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		var fetchErr error
		profiles, fetchErr = s.profileRepo.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfileByUserID returns a profile for the public directory. A malformed
// id collapses to the same not-found error as a missing profile.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID string) (*models.ProfileWithUser, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrProfileMissing
	}
	profile, err := s.profileRepo.GetWithUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileMissing
	}
	return profile, nil
}

// AddExperience prepends a work history entry to the caller's profile and
// returns the updated profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrProfileNotFound
	}

	from, err := validation.ParseDate(in.From)
	if err != nil {
		return nil, models.NewValidationError("from date is invalid")
	}
	to, err := validation.ParseOptionalDate(in.To)
	if err != nil {
		return nil, models.NewValidationError("to date is invalid")
	}

	entry := models.Experience{
		ID:          newObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}

	profile, err := s.profileRepo.PushExperience(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// DeleteExperience removes an entry by id. A nonexistent or malformed id is a
// successful no-op; the current profile is returned either way.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrProfileNotFound
	}

	eid, err := parseObjectID(entryID)
	if err != nil {
		return s.requireProfile(ctx, id)
	}

	profile, err := s.profileRepo.PullExperience(ctx, id, eid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrProfileNotFound
	}

	from, err := validation.ParseDate(in.From)
	if err != nil {
		return nil, models.NewValidationError("from date is invalid")
	}
	to, err := validation.ParseOptionalDate(in.To)
	if err != nil {
		return nil, models.NewValidationError("to date is invalid")
	}

	entry := models.Education{
		ID:           newObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}

	profile, err := s.profileRepo.PushEducation(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// DeleteEducation removes an entry by id with the same no-op contract as
// DeleteExperience.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrProfileNotFound
	}

	eid, err := parseObjectID(entryID)
	if err != nil {
		return s.requireProfile(ctx, id)
	}

	profile, err := s.profileRepo.PullEducation(ctx, id, eid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// DeleteAccount removes the caller's posts, then profile, then identity, in
// that order so post cleanup happens while the identity still exists.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	id, err := parseObjectID(userID)
	if err != nil {
		return models.ErrUserNotFound
	}

	if err := s.postRepo.DeleteByAuthor(ctx, id); err != nil {
		return err
	}
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateProfileList(ctx)
	return nil
}

func (s *ProfileService) requireProfile(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}
