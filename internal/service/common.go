package service

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// now is swappable in tests for deterministic timestamps.
var now = time.Now

func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

func newObjectID() primitive.ObjectID {
	return primitive.NewObjectID()
}
