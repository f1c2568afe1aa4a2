package repository

import (
	"context"
	"errors"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/database"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileFields is the upsert payload for a profile write. Status and Skills
// are always written; optional fields are written only when non-empty, and
// Social is replaced wholesale with only its provided links.
type ProfileFields struct {
	Status         string
	Skills         []string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Social         models.Social
}

// ProfileRepository defines the interface for profile data operations.
// All embedded-list mutations are single atomic update documents, so two
// concurrent writers cannot lose each other's entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*models.Profile, error)
	List(ctx context.Context) ([]models.ProfileWithUser, error)
	GetWithUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileWithUser, error)
	PushExperience(ctx context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error)
	PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	PushEducation(ctx context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error)
	PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

type profileRepository struct {
	coll *mongo.Collection
}

// NewProfileRepository creates a profile repository backed by the given database.
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{coll: db.Collection(database.ProfilesCollection)}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*models.Profile, error) {
	set := bson.M{
		"user":   userID,
		"status": fields.Status,
		"skills": fields.Skills,
		"social": fields.Social,
	}
	// Optional fields are only written when provided; an existing value is
	// left in place rather than nulled out.
	if fields.Company != "" {
		set["company"] = fields.Company
	}
	if fields.Website != "" {
		set["website"] = fields.Website
	}
	if fields.Location != "" {
		set["location"] = fields.Location
	}
	if fields.Bio != "" {
		set["bio"] = fields.Bio
	}
	if fields.GithubUsername != "" {
		set["githubusername"] = fields.GithubUsername
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"date":       time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile); err != nil {
		return nil, err
	}

	cache.InvalidateProfileList(ctx)
	return &profile, nil
}

// userJoinStages joins the owning user's name and avatar into the result
// under "author", dropping sensitive user fields.
func userJoinStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "author.password", Value: 0},
			{Key: "author.email", Value: 0},
			{Key: "author.date", Value: 0},
		}}},
	}
}

func (r *profileRepository) List(ctx context.Context) ([]models.ProfileWithUser, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", database.ProfilesCollection)
	defer span.End()

	cursor, err := r.coll.Aggregate(ctx, userJoinStages())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []models.ProfileWithUser{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) GetWithUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileWithUser, error) {
	pipeline := append(mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "user", Value: userID}}}},
	}, userJoinStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.ProfileWithUser
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// prependTo builds a $push update inserting the entry at the head of the
// named list, preserving the newest-first ordering contract.
func prependTo(list string, entry any) bson.M {
	return bson.M{
		"$push": bson.M{
			list: bson.M{
				"$each":     bson.A{entry},
				"$position": 0,
			},
		},
	}
}

func (r *profileRepository) PushExperience(ctx context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error) {
	return r.findAndUpdate(ctx, userID, prependTo("experience", entry))
}

func (r *profileRepository) PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return r.findAndUpdate(ctx, userID, bson.M{
		"$pull": bson.M{"experience": bson.M{"_id": entryID}},
	})
}

func (r *profileRepository) PushEducation(ctx context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error) {
	return r.findAndUpdate(ctx, userID, prependTo("education", entry))
}

func (r *profileRepository) PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return r.findAndUpdate(ctx, userID, bson.M{
		"$pull": bson.M{"education": bson.M{"_id": entryID}},
	})
}

// findAndUpdate applies update to the caller's profile and returns the
// post-image, or (nil, nil) when no profile exists.
func (r *profileRepository) findAndUpdate(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	if err == nil {
		cache.InvalidateProfileList(ctx)
	}
	return err
}
