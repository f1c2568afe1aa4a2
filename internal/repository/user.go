// Package repository provides data access implementations over MongoDB.
package repository

import (
	"context"
	"errors"

	"devconnector/internal/database"
	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for identity data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a user repository backed by the given database.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(database.UsersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		// The unique email index backs up the API-layer existence check.
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrUserExists
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
