package service

import (
	"context"
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authorRepo(author *models.User) *stubUserRepo {
	return &stubUserRepo{
		getByID: func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
			if id == author.ID {
				return author, nil
			}
			return nil, nil
		},
	}
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	author := &models.User{
		ID:     primitive.NewObjectID(),
		Name:   "Jane Dev",
		Avatar: "https://www.gravatar.com/avatar/abc?s=200&r=pg&d=mm",
	}
	posts := &stubPostRepo{
		create: func(_ context.Context, post *models.Post) error {
			post.ID = primitive.NewObjectID()
			return nil
		},
	}
	svc := NewPostService(posts, authorRepo(author))

	post, err := svc.CreatePost(context.Background(), author.ID.Hex(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, author.Name, post.Name)
	assert.Equal(t, author.Avatar, post.Avatar)
	assert.Equal(t, author.ID, post.UserID)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
	assert.False(t, post.Date.IsZero())
}

func TestGetPostNotFound(t *testing.T) {
	posts := &stubPostRepo{
		getByID: func(_ context.Context, _ primitive.ObjectID) (*models.Post, error) {
			return nil, nil
		},
	}
	svc := NewPostService(posts, nil)

	_, err := svc.GetPost(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrPostNotFound)

	// Malformed ids are indistinguishable from absent posts.
	_, err = svc.GetPost(context.Background(), "12345")
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}

func TestDeletePostOwnership(t *testing.T) {
	owner := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: owner}

	deleted := false
	posts := &stubPostRepo{
		getByID: func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			if id == post.ID {
				return post, nil
			}
			return nil, nil
		},
		deleteFn: func(_ context.Context, id primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}
	svc := NewPostService(posts, nil)

	err := svc.DeletePost(context.Background(), primitive.NewObjectID().Hex(), post.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
	assert.False(t, deleted)

	err = svc.DeletePost(context.Background(), owner.Hex(), post.ID.Hex())
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestLikePost(t *testing.T) {
	liker := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), Likes: []models.Like{}}

	posts := &stubPostRepo{
		getByID: func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			if id == post.ID {
				return post, nil
			}
			return nil, nil
		},
		addLike: func(_ context.Context, _ primitive.ObjectID, like models.Like) (bool, error) {
			if post.LikedBy(like.UserID) {
				return false, nil
			}
			post.Likes = append([]models.Like{like}, post.Likes...)
			return true, nil
		},
	}
	svc := NewPostService(posts, nil)

	likes, err := svc.LikePost(context.Background(), liker.Hex(), post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, liker, likes[0].UserID)

	// Liking the same post again is a conflict, and the list is unchanged.
	_, err = svc.LikePost(context.Background(), liker.Hex(), post.ID.Hex())
	assert.ErrorIs(t, err, models.ErrAlreadyLiked)
	assert.Len(t, post.Likes, 1)
}

func TestUnlikePost(t *testing.T) {
	liker := primitive.NewObjectID()
	post := &models.Post{
		ID:    primitive.NewObjectID(),
		Likes: []models.Like{{ID: primitive.NewObjectID(), UserID: liker}},
	}

	posts := &stubPostRepo{
		getByID: func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			if id == post.ID {
				return post, nil
			}
			return nil, nil
		},
		removeLike: func(_ context.Context, _ primitive.ObjectID, userID primitive.ObjectID) (bool, error) {
			for i, l := range post.Likes {
				if l.UserID == userID {
					post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
					return true, nil
				}
			}
			return false, nil
		},
	}
	svc := NewPostService(posts, nil)

	likes, err := svc.UnlikePost(context.Background(), liker.Hex(), post.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = svc.UnlikePost(context.Background(), liker.Hex(), post.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotYetLiked)
}

func TestLikeUnlikeRestoresState(t *testing.T) {
	liker := primitive.NewObjectID()
	original := models.Like{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	post := &models.Post{ID: primitive.NewObjectID(), Likes: []models.Like{original}}

	posts := &stubPostRepo{
		getByID: func(_ context.Context, _ primitive.ObjectID) (*models.Post, error) {
			return post, nil
		},
		addLike: func(_ context.Context, _ primitive.ObjectID, like models.Like) (bool, error) {
			post.Likes = append([]models.Like{like}, post.Likes...)
			return true, nil
		},
		removeLike: func(_ context.Context, _ primitive.ObjectID, userID primitive.ObjectID) (bool, error) {
			for i, l := range post.Likes {
				if l.UserID == userID {
					post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
					return true, nil
				}
			}
			return false, nil
		},
	}
	svc := NewPostService(posts, nil)

	_, err := svc.LikePost(context.Background(), liker.Hex(), post.ID.Hex())
	require.NoError(t, err)
	likes, err := svc.UnlikePost(context.Background(), liker.Hex(), post.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, []models.Like{original}, likes)
}

func TestAddCommentPrepends(t *testing.T) {
	author := &models.User{ID: primitive.NewObjectID(), Name: "Jane Dev", Avatar: "avatar-url"}
	post := &models.Post{
		ID:       primitive.NewObjectID(),
		Comments: []models.Comment{{ID: primitive.NewObjectID(), Text: "first!"}},
	}

	posts := &stubPostRepo{
		getByID: func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			if id == post.ID {
				return post, nil
			}
			return nil, nil
		},
		addComment: func(_ context.Context, _ primitive.ObjectID, comment models.Comment) (bool, error) {
			post.Comments = append([]models.Comment{comment}, post.Comments...)
			return true, nil
		},
	}
	svc := NewPostService(posts, authorRepo(author))

	comments, err := svc.AddComment(context.Background(), author.ID.Hex(), post.ID.Hex(), "nice post")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "nice post", comments[0].Text)
	assert.Equal(t, author.Name, comments[0].Name)
	assert.Equal(t, "first!", comments[1].Text)
}

func TestDeleteComment(t *testing.T) {
	commenter := primitive.NewObjectID()
	comment := models.Comment{ID: primitive.NewObjectID(), UserID: commenter, Text: "mine"}
	post := &models.Post{ID: primitive.NewObjectID(), Comments: []models.Comment{comment}}

	posts := &stubPostRepo{
		getByID: func(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
			if id == post.ID {
				return post, nil
			}
			return nil, nil
		},
		removeComment: func(_ context.Context, _ primitive.ObjectID, commentID primitive.ObjectID) (bool, error) {
			for i, c := range post.Comments {
				if c.ID == commentID {
					post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)
					return true, nil
				}
			}
			return false, nil
		},
	}
	svc := NewPostService(posts, nil)

	// Someone else's comment is forbidden.
	_, err := svc.DeleteComment(context.Background(), primitive.NewObjectID().Hex(), post.ID.Hex(), comment.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
	assert.Len(t, post.Comments, 1)

	// Unknown comment id.
	_, err = svc.DeleteComment(context.Background(), commenter.Hex(), post.ID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrCommentNotFound)

	comments, err := svc.DeleteComment(context.Background(), commenter.Hex(), post.ID.Hex(), comment.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, comments)
}
