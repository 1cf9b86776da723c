// Package store declares the durable-store interfaces the services depend on.
// Stores are interface-driven to keep the domain logic testable and to allow
// swapping the in-memory and mongo-backed implementations without rewiring
// business code.
//
// Implementations return pkg/platform/sentinel errors for infrastructure
// facts: ErrNotFound when a filter matches nothing on a point lookup,
// ErrNoEffect when an update/delete was acknowledged but changed nothing.
// Collection queries that match nothing return empty slices, not errors.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
)

// AccountStore persists accounts. Insert assigns the identifier.
type AccountStore interface {
	Insert(ctx context.Context, account domain.Account) (domain.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Account, error)
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	SearchByName(ctx context.Context, term string) ([]domain.Account, error)
	Update(ctx context.Context, id primitive.ObjectID, account domain.Account) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProjectStore persists projects and answers the membership queries that back
// account-side derived fields.
type ProjectStore interface {
	Insert(ctx context.Context, project domain.Project) (domain.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Project, error)
	FindAll(ctx context.Context) ([]domain.Project, error)
	ByDepartment(ctx context.Context, dep domain.Department) ([]domain.Project, error)
	ByYearRange(ctx context.Context, min, max int) ([]domain.Project, error)
	SearchByTitle(ctx context.Context, term string) ([]domain.Project, error)
	FindByMember(ctx context.Context, accountID primitive.ObjectID) ([]domain.Project, error)
	CountByMember(ctx context.Context, accountID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, project domain.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UpdateStore persists project updates.
type UpdateStore interface {
	Insert(ctx context.Context, update domain.Update) (domain.Update, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Update, error)
	FindAll(ctx context.Context) ([]domain.Update, error)
	BySubject(ctx context.Context, subject domain.Subject) ([]domain.Update, error)
	CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.Update) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ApplicationStore persists applications and answers the applicant/project
// queries the cascades and derived fields need.
type ApplicationStore interface {
	Insert(ctx context.Context, app domain.Application) (domain.Application, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Application, error)
	FindAll(ctx context.Context) ([]domain.Application, error)
	FindByApplicant(ctx context.Context, accountID primitive.ObjectID) ([]domain.Application, error)
	CountByApplicant(ctx context.Context, accountID primitive.ObjectID) (int64, error)
	CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	DeleteByApplicant(ctx context.Context, accountID primitive.ObjectID) (int64, error)
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, app domain.Application) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
