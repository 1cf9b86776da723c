package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
)

type ProjectStoreSuite struct {
	suite.Suite
	store *ProjectStore
}

func (s *ProjectStoreSuite) SetupTest() {
	s.store = NewProjectStore()
}

func (s *ProjectStoreSuite) seed(p domain.Project) domain.Project {
	inserted, err := s.store.Insert(context.Background(), p)
	require.NoError(s.T(), err)
	return inserted
}

func (s *ProjectStoreSuite) TestByDepartment() {
	s.seed(domain.Project{Title: "Solar Sails", Department: domain.DeptPhysics})
	s.seed(domain.Project{Title: "Gene Maps", Department: domain.DeptBiomedicalEngineering})

	hits, err := s.store.ByDepartment(context.Background(), domain.DeptPhysics)
	require.NoError(s.T(), err)
	require.Len(s.T(), hits, 1)
	assert.Equal(s.T(), "Solar Sails", hits[0].Title)
}

func (s *ProjectStoreSuite) TestByYearRangeIsInclusive() {
	s.seed(domain.Project{Title: "Old", CreatedYear: 2018})
	s.seed(domain.Project{Title: "Mid", CreatedYear: 2020})
	s.seed(domain.Project{Title: "New", CreatedYear: 2023})

	hits, err := s.store.ByYearRange(context.Background(), 2018, 2020)
	require.NoError(s.T(), err)
	assert.Len(s.T(), hits, 2)

	none, err := s.store.ByYearRange(context.Background(), 2010, 2015)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), none)
}

func (s *ProjectStoreSuite) TestSearchByTitle() {
	s.seed(domain.Project{Title: "Machine Learning for Robotics"})
	s.seed(domain.Project{Title: "Bridge Materials"})

	hits, err := s.store.SearchByTitle(context.Background(), "learning")
	require.NoError(s.T(), err)
	require.Len(s.T(), hits, 1)
	assert.Equal(s.T(), "Machine Learning for Robotics", hits[0].Title)
}

func (s *ProjectStoreSuite) TestFindByMemberSpansBothRoles() {
	professor := primitive.NewObjectID()
	student := primitive.NewObjectID()

	s.seed(domain.Project{Title: "A", ProfessorIDs: []primitive.ObjectID{professor}})
	s.seed(domain.Project{Title: "B", StudentIDs: []primitive.ObjectID{student}})
	s.seed(domain.Project{Title: "C"})

	profHits, err := s.store.FindByMember(context.Background(), professor)
	require.NoError(s.T(), err)
	require.Len(s.T(), profHits, 1)
	assert.Equal(s.T(), "A", profHits[0].Title)

	count, err := s.store.CountByMember(context.Background(), student)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, count)
}

func TestProjectStoreSuite(t *testing.T) {
	suite.Run(t, new(ProjectStoreSuite))
}
