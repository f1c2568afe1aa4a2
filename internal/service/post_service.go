package service

import (
	"context"

	"devconnector/internal/models"
	"devconnector/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost creates a feed post, snapshotting the author's current name and
// avatar so the byline survives later account changes.
func (s *PostService) CreatePost(ctx context.Context, userID, text string) (*models.Post, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	author, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.ErrUserNotFound
	}

	post := &models.Post{
		UserID:   id,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns the full feed, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost loads a post by id. Malformed ids collapse to not-found, same as
// absent ones.
func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	id, err := parseObjectID(postID)
	if err != nil {
		return nil, models.ErrPostNotFound
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}
	return post, nil
}

// DeletePost removes a post after checking the caller owns it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	uid, err := parseObjectID(userID)
	if err != nil {
		return models.ErrNotAuthorized
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != uid {
		return models.ErrNotAuthorized
	}

	return s.postRepo.Delete(ctx, post.ID)
}

// LikePost records the caller's like at the head of the post's like list and
// returns the updated list. Liking twice is a conflict; the conditional
// update makes concurrent duplicates lose cleanly.
func (s *PostService) LikePost(ctx context.Context, userID, postID string) ([]models.Like, error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	like := models.Like{ID: newObjectID(), UserID: uid}
	added, err := s.postRepo.AddLike(ctx, post.ID, like)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.ErrAlreadyLiked
	}

	return s.refreshLikes(ctx, post.ID)
}

// UnlikePost removes the caller's like and returns the updated list.
// Unliking a post that is not liked is a conflict.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID string) ([]models.Like, error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	removed, err := s.postRepo.RemoveLike(ctx, post.ID, uid)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.ErrNotYetLiked
	}

	return s.refreshLikes(ctx, post.ID)
}

// AddComment prepends a comment with the caller's name/avatar snapshot and
// returns the updated comment list.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) ([]models.Comment, error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrUserNotFound
	}

	author, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.ErrUserNotFound
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:     newObjectID(),
		UserID: uid,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   now(),
	}
	added, err := s.postRepo.AddComment(ctx, post.ID, comment)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.ErrPostNotFound
	}

	return s.refreshComments(ctx, post.ID)
}

// DeleteComment removes a comment by its id after checking the caller wrote
// it, and returns the updated comment list.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, models.ErrNotAuthorized
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	cid, err := parseObjectID(commentID)
	if err != nil {
		return nil, models.ErrCommentNotFound
	}
	comment := post.CommentByID(cid)
	if comment == nil {
		return nil, models.ErrCommentNotFound
	}
	if comment.UserID != uid {
		return nil, models.ErrNotAuthorized
	}

	if _, err := s.postRepo.RemoveComment(ctx, post.ID, cid); err != nil {
		return nil, err
	}

	return s.refreshComments(ctx, post.ID)
}

func (s *PostService) refreshLikes(ctx context.Context, postID primitive.ObjectID) ([]models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}
	return post.Likes, nil
}

func (s *PostService) refreshComments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.ErrPostNotFound
	}
	return post.Comments, nil
}
