// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered identity. The password hash is persisted but
// never serialized into API responses.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Date     time.Time          `bson:"date" json:"date"`
}

// UserSummary is the slice of a User joined into public resources
// (profile directory, profile-by-id). Never carries the password hash.
type UserSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
}

// GravatarURL derives the deterministic avatar for an email address.
// Size 200, pg rating, "mystery man" fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
