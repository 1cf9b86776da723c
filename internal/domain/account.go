package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account is a platform member: student, professor, or admin.
//
// PasswordHash is never serialized outward and is cleared before an account is
// cached or returned (see Sanitize). The derived fields are computed against
// current store state at read time and never trusted from storage.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Department   Department         `bson:"department" json:"department"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`

	// Derived, never authoritative in storage.
	Applications      []Application `bson:"-" json:"applications"`
	Projects          []Project     `bson:"-" json:"projects"`
	NumOfApplications int           `bson:"-" json:"numOfApplications"`
	NumOfProjects     int           `bson:"-" json:"numOfProjects"`
}

// Sanitize returns a copy with the credential hash stripped. Every read and
// write path returns sanitized accounts only.
func (a Account) Sanitize() Account {
	a.PasswordHash = ""
	return a
}
