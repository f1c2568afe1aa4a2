package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository stubs with swappable function fields. Unset methods panic so a
// test that touches an unexpected repository call fails loudly.

type stubUserRepo struct {
	create     func(ctx context.Context, user *models.User) error
	getByID    func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	getByEmail func(ctx context.Context, email string) (*models.User, error)
	delete     func(ctx context.Context, id primitive.ObjectID) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getByID(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmail(ctx, email)
}

func (s *stubUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.delete(ctx, id)
}

type stubProfileRepo struct {
	getByUserID    func(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	upsert         func(ctx context.Context, userID primitive.ObjectID, fields repository.ProfileFields) (*models.Profile, error)
	list           func(ctx context.Context) ([]models.ProfileWithUser, error)
	getWithUser    func(ctx context.Context, userID primitive.ObjectID) (*models.ProfileWithUser, error)
	pushExperience func(ctx context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error)
	pullExperience func(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	pushEducation  func(ctx context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error)
	pullEducation  func(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	delete         func(ctx context.Context, userID primitive.ObjectID) error
}

func (s *stubProfileRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return s.getByUserID(ctx, userID)
}

func (s *stubProfileRepo) Upsert(ctx context.Context, userID primitive.ObjectID, fields repository.ProfileFields) (*models.Profile, error) {
	return s.upsert(ctx, userID, fields)
}

func (s *stubProfileRepo) List(ctx context.Context) ([]models.ProfileWithUser, error) {
	return s.list(ctx)
}

func (s *stubProfileRepo) GetWithUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileWithUser, error) {
	return s.getWithUser(ctx, userID)
}

func (s *stubProfileRepo) PushExperience(ctx context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error) {
	return s.pushExperience(ctx, userID, entry)
}

func (s *stubProfileRepo) PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.pullExperience(ctx, userID, entryID)
}

func (s *stubProfileRepo) PushEducation(ctx context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error) {
	return s.pushEducation(ctx, userID, entry)
}

func (s *stubProfileRepo) PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.pullEducation(ctx, userID, entryID)
}

func (s *stubProfileRepo) Delete(ctx context.Context, userID primitive.ObjectID) error {
	return s.delete(ctx, userID)
}

type stubPostRepo struct {
	create         func(ctx context.Context, post *models.Post) error
	getByID        func(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	list           func(ctx context.Context) ([]models.Post, error)
	deleteFn       func(ctx context.Context, id primitive.ObjectID) error
	deleteByAuthor func(ctx context.Context, userID primitive.ObjectID) error
	addLike        func(ctx context.Context, postID primitive.ObjectID, like models.Like) (bool, error)
	removeLike     func(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	addComment     func(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (bool, error)
	removeComment  func(ctx context.Context, postID, commentID primitive.ObjectID) (bool, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.create(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.getByID(ctx, id)
}

func (s *stubPostRepo) List(ctx context.Context) ([]models.Post, error) {
	return s.list(ctx)
}

func (s *stubPostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubPostRepo) DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error {
	return s.deleteByAuthor(ctx, userID)
}

func (s *stubPostRepo) AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) (bool, error) {
	return s.addLike(ctx, postID, like)
}

func (s *stubPostRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	return s.removeLike(ctx, postID, userID)
}

func (s *stubPostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (bool, error) {
	return s.addComment(ctx, postID, comment)
}

func (s *stubPostRepo) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (bool, error) {
	return s.removeComment(ctx, postID, commentID)
}
