package repository

import (
	"context"
	"errors"

	"devconnector/internal/database"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations. Like and
// comment mutations are conditional atomic updates: the filter encodes the
// precondition (not yet liked, still liked) so racing writers cannot
// double-apply, and the boolean result reports whether a document matched.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error
	AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) (bool, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (bool, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (bool, error)
}

type postRepository struct {
	coll *mongo.Collection
}

// NewPostRepository creates a post repository backed by the given database.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{coll: db.Collection(database.PostsCollection)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = id
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", database.PostsCollection)
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *postRepository) DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

func (r *postRepository) AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) (bool, error) {
	// The filter excludes posts already liked by this user, so a concurrent
	// duplicate like matches nothing instead of double-inserting.
	filter := bson.M{
		"_id":        postID,
		"likes.user": bson.M{"$ne": like.UserID},
	}
	update := bson.M{
		"$push": bson.M{
			"likes": bson.M{
				"$each":     bson.A{like},
				"$position": 0,
			},
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *postRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$push": bson.M{
				"comments": bson.M{
					"$each":     bson.A{comment},
					"$position": 0,
				},
			},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
