package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Update is a newsfeed post about a project. Comments live as subdocuments in
// the updates collection.
type Update struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PosterID   primitive.ObjectID `bson:"posterId" json:"posterId"`
	Subject    Subject            `bson:"subject" json:"subject"`
	Content    string             `bson:"content" json:"content"`
	ProjectID  primitive.ObjectID `bson:"projectId" json:"projectId"`
	PostedDate time.Time          `bson:"postedDate" json:"postedDate"`
	Comments   []Comment          `bson:"comments,omitempty" json:"comments,omitempty"`

	// Derived: len(Comments), recomputed on every read.
	NumOfComments int `bson:"-" json:"numOfComments"`
}
