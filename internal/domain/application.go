package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application is an account's request to join a project. Status starts as
// PENDING; LastUpdatedDate is refreshed by the service on every edit.
type Application struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicantID     primitive.ObjectID `bson:"applicantId" json:"applicantId"`
	ProjectID       primitive.ObjectID `bson:"projectId" json:"projectId"`
	ApplicationDate time.Time          `bson:"applicationDate" json:"applicationDate"`
	LastUpdatedDate time.Time          `bson:"lastUpdatedDate" json:"lastUpdatedDate"`
	Status          Status             `bson:"status" json:"status"`
	Comments        []Comment          `bson:"comments,omitempty" json:"comments,omitempty"`
}
