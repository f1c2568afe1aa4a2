package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed post. Author name and avatar are snapshotted at creation
// time so the byline survives later identity edits or deletion.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID   primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// Like marks a post as liked by a user. Presence in the list is the signal;
// at most one per (post, user) is enforced at mutation time.
type Like struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an embedded post comment, newest first, with the same author
// snapshot contract as Post.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}

// LikedBy reports whether userID is present in the post's like list.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the embedded comment with the given id, or nil.
func (p *Post) CommentByID(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}
