package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the developer profile document. At most one exists per user;
// experience and education are embedded, newest entry first.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Status         string             `bson:"status" json:"status"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Social         Social             `bson:"social" json:"social"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Date           time.Time          `bson:"date" json:"date"`
}

// Social holds optional profile links. Absent links are omitted, not nulled.
type Social struct {
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is an embedded work history entry.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is an embedded education history entry.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// ProfileWithUser is a Profile with the owning user's name and avatar joined
// in, as returned by the public directory endpoints. The outer User field
// shadows the embedded raw user id in JSON output, so clients see the joined
// `{_id, name, avatar}` object under "user".
type ProfileWithUser struct {
	Profile `bson:",inline"`
	User    *UserSummary `bson:"author" json:"user"`
}
