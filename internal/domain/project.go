package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Project is a research effort led by one or more professors. Membership is
// stored as ordered ID lists on the project; the account-side projects list is
// a read-time projection of these.
type Project struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	CreatedYear  int                  `bson:"createdYear" json:"createdYear"`
	Department   Department           `bson:"department" json:"department"`
	ProfessorIDs []primitive.ObjectID `bson:"professorIds" json:"professorIds"`
	StudentIDs   []primitive.ObjectID `bson:"studentIds,omitempty" json:"studentIds,omitempty"`

	// Derived at read time.
	NumOfApplications int `bson:"-" json:"numOfApplications"`
	NumOfUpdates      int `bson:"-" json:"numOfUpdates"`
}

// HasMember reports whether the account appears in either membership list.
func (p Project) HasMember(id primitive.ObjectID) bool {
	for _, pid := range p.ProfessorIDs {
		if pid == id {
			return true
		}
	}
	for _, sid := range p.StudentIDs {
		if sid == id {
			return true
		}
	}
	return false
}
