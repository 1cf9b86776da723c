// Package mongo implements the store interfaces over a MongoDB database.
// Collection queries that match nothing return empty slices; point lookups
// translate mongo.ErrNoDocuments into sentinel.ErrNotFound, and acknowledged
// zero-effect writes into sentinel.ErrNoEffect.
package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collAccounts     = "accounts"
	collProjects     = "projects"
	collUpdates      = "updates"
	collApplications = "applications"
	collAuditEvents  = "audit_events"
)

// Stores bundles the five collection-backed stores over one database handle.
type Stores struct {
	Accounts     *AccountStore
	Projects     *ProjectStore
	Updates      *UpdateStore
	Applications *ApplicationStore
	Audit        *AuditStore
}

func NewStores(db *mongo.Database) *Stores {
	return &Stores{
		Accounts:     &AccountStore{coll: db.Collection(collAccounts)},
		Projects:     &ProjectStore{coll: db.Collection(collProjects)},
		Updates:      &UpdateStore{coll: db.Collection(collUpdates)},
		Applications: &ApplicationStore{coll: db.Collection(collApplications)},
		Audit:        &AuditStore{coll: db.Collection(collAuditEvents)},
	}
}
