package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a subdocument on updates and applications, never a top-level
// entity. Text must be non-empty.
type Comment struct {
	CommenterID primitive.ObjectID `bson:"commenterId" json:"commenterId"`
	Text        string             `bson:"text" json:"text"`
	PostedAt    time.Time          `bson:"postedAt" json:"postedAt"`
}
