// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"devconnector/internal/database"
	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// Options controls the shape of the seeded data set.
type Options struct {
	Users    int
	Posts    int
	Password string // plaintext password shared by all seeded users
}

// Seeder persists generated users, profiles and posts.
type Seeder struct {
	db  *mongo.Database
	rng *rand.Rand
}

func NewSeeder(db *mongo.Database) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll drops all seeded collections.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, name := range []string{
		database.UsersCollection,
		database.ProfilesCollection,
		database.PostsCollection,
	} {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
	}
	return nil
}

// Run seeds users with profiles, then a feed of posts with likes and
// comments spread across those users.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	users, err := s.createUsers(ctx, opts.Users, opts.Password)
	if err != nil {
		return err
	}
	if err := s.createProfiles(ctx, users); err != nil {
		return err
	}
	return s.createPosts(ctx, users, opts.Posts)
}

func (s *Seeder) createUsers(ctx context.Context, count int, password string) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	docs := make([]any, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%d.%s", i, gofakeit.Email())
		user := models.User{
			ID:       newID(),
			Name:     name,
			Email:    email,
			Password: string(hash),
			Avatar:   models.GravatarURL(email),
			Date:     s.pastDate(365),
		}
		users = append(users, user)
		docs = append(docs, user)
	}

	if _, err := s.db.Collection(database.UsersCollection).InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	return users, nil
}

func (s *Seeder) createProfiles(ctx context.Context, users []models.User) error {
	statuses := []string{
		"Developer", "Senior Developer", "Junior Developer",
		"Student or Learning", "Instructor or Teacher", "Intern",
	}
	skillPool := []string{
		"Go", "JavaScript", "TypeScript", "Python", "Rust",
		"React", "MongoDB", "Redis", "PostgreSQL", "Docker", "Kubernetes",
	}

	docs := make([]any, 0, len(users))
	for _, user := range users {
		profile := models.Profile{
			ID:             newID(),
			UserID:         user.ID,
			Status:         statuses[s.rng.Intn(len(statuses))],
			Company:        gofakeit.Company(),
			Location:       gofakeit.City(),
			Bio:            gofakeit.Sentence(12),
			GithubUsername: gofakeit.Username(),
			Skills:         s.pickSkills(skillPool),
			Social: models.Social{
				Twitter: "https://twitter.com/" + gofakeit.Username(),
			},
			Experience: []models.Experience{s.experience()},
			Education:  []models.Education{s.education()},
			Date:       s.pastDate(365),
		}
		docs = append(docs, profile)
	}

	if _, err := s.db.Collection(database.ProfilesCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seeding profiles: %w", err)
	}
	return nil
}

func (s *Seeder) createPosts(ctx context.Context, users []models.User, count int) error {
	docs := make([]any, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			ID:       newID(),
			UserID:   author.ID,
			Text:     gofakeit.Paragraph(1, 3, 8, " "),
			Name:     author.Name,
			Avatar:   author.Avatar,
			Likes:    s.likes(users),
			Comments: s.comments(users),
			Date:     s.pastDate(90),
		}
		docs = append(docs, post)
	}

	if _, err := s.db.Collection(database.PostsCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	return nil
}

// likes picks a random subset of users, at most one like per user.
func (s *Seeder) likes(users []models.User) []models.Like {
	n := s.rng.Intn(len(users)/2 + 1)
	likes := make([]models.Like, 0, n)
	for _, idx := range s.rng.Perm(len(users))[:n] {
		likes = append(likes, models.Like{ID: newID(), UserID: users[idx].ID})
	}
	return likes
}

func (s *Seeder) comments(users []models.User) []models.Comment {
	n := s.rng.Intn(5)
	comments := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		comments = append(comments, models.Comment{
			ID:     newID(),
			UserID: author.ID,
			Text:   gofakeit.Sentence(10),
			Name:   author.Name,
			Avatar: author.Avatar,
			Date:   s.pastDate(30),
		})
	}
	return comments
}

func (s *Seeder) experience() models.Experience {
	from := s.pastDate(5 * 365)
	return models.Experience{
		ID:          newID(),
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Current:     true,
		Description: gofakeit.Sentence(15),
	}
}

func (s *Seeder) education() models.Education {
	from := s.pastDate(10 * 365)
	to := from.AddDate(4, 0, 0)
	return models.Education{
		ID:           newID(),
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(10),
	}
}

func (s *Seeder) pastDate(maxDays int) time.Time {
	back := time.Duration(s.rng.Intn(maxDays*24)) * time.Hour
	return time.Now().Add(-back)
}

func (s *Seeder) pickSkills(pool []string) []string {
	n := 3 + s.rng.Intn(4)
	perm := s.rng.Perm(len(pool))[:n]
	skills := make([]string, 0, n)
	for _, idx := range perm {
		skills = append(skills, pool[idx])
	}
	return skills
}
