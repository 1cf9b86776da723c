package update

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/audit"
	"scholarhub/internal/cache"
	"scholarhub/internal/coordinator"
	"scholarhub/internal/domain"
	"scholarhub/internal/store/memory"
	"scholarhub/internal/validate"
	"scholarhub/pkg/domerrors"
)

type UpdateServiceSuite struct {
	suite.Suite
	updates  *memory.UpdateStore
	accounts *memory.AccountStore
	projects *memory.ProjectStore
	cache    *cache.Memory
	svc      *Service

	poster  domain.Account
	project domain.Project
}

func (s *UpdateServiceSuite) SetupTest() {
	s.updates = memory.NewUpdateStore()
	s.accounts = memory.NewAccountStore()
	s.projects = memory.NewProjectStore()
	s.cache = cache.NewMemory()
	coord := coordinator.New(s.updates, memory.NewApplicationStore(), s.cache,
		audit.NewPublisher(memory.NewAuditStore()), zerolog.Nop())
	s.svc = NewService(s.updates, s.accounts, s.projects, s.cache, coord, zerolog.Nop())
	s.svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	var err error
	s.poster, err = s.accounts.Insert(context.Background(), domain.Account{
		FirstName: "Grace", Role: domain.RoleProfessor,
	})
	require.NoError(s.T(), err)
	s.project, err = s.projects.Insert(context.Background(), domain.Project{Title: "Compilers"})
	require.NoError(s.T(), err)
}

func (s *UpdateServiceSuite) createArgs() validate.Args {
	return validate.Args{
		"posterId":  s.poster.ID.Hex(),
		"subject":   "team_update",
		"content":   "We onboarded two new students this week.",
		"projectId": s.project.ID.Hex(),
	}
}

func (s *UpdateServiceSuite) TestCreateStampsPostedDate() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), domain.SubjectTeamUpdate, created.Subject)
	assert.Equal(s.T(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), created.PostedDate)
	assert.Equal(s.T(), 0, created.NumOfComments)
}

func (s *UpdateServiceSuite) TestCreateRejectsDanglingPoster() {
	args := s.createArgs()
	args["posterId"] = primitive.NewObjectID().Hex()

	_, err := s.svc.Create(context.Background(), args)
	require.Error(s.T(), err)
	assert.True(s.T(), domerrors.HasCode(err, domerrors.CodeNotFound))
	assert.Equal(s.T(), "posterId", domerrors.FieldOf(err))
}

func (s *UpdateServiceSuite) TestCreateRejectsUnknownSubject() {
	args := s.createArgs()
	args["subject"] = "gossip"

	_, err := s.svc.Create(context.Background(), args)
	require.Error(s.T(), err)
	assert.Equal(s.T(), "subject", domerrors.FieldOf(err))
}

func (s *UpdateServiceSuite) TestEditDoesNotTouchPostedDate() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	s.svc.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	edited, err := s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"content": "Revised progress summary.",
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), created.PostedDate, edited.PostedDate)
	assert.Equal(s.T(), "Revised progress summary.", edited.Content)
}

func (s *UpdateServiceSuite) TestEditRejectsPostedDate() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	_, err = s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"postedDate": "01/01/2020",
	})
	require.Error(s.T(), err)
	assert.True(s.T(), domerrors.HasCode(err, domerrors.CodeUnexpectedField))
}

func (s *UpdateServiceSuite) TestEditCommentsRecountsOnRead() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	edited, err := s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"comments": []any{
			map[string]any{"commenterId": s.poster.ID.Hex(), "text": "Nice progress"},
			map[string]any{"text": "Congrats"},
		},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, edited.NumOfComments)

	fresh, err := s.svc.GetByID(context.Background(), created.ID.Hex())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, fresh.NumOfComments)
}

func (s *UpdateServiceSuite) TestBySubjectFiltersAndCaches() {
	_, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	args := s.createArgs()
	args["subject"] = "funding_update"
	_, err = s.svc.Create(context.Background(), args)
	require.NoError(s.T(), err)

	team, err := s.svc.BySubject(context.Background(), "team_update")
	require.NoError(s.T(), err)
	require.Len(s.T(), team, 1)
	assert.Equal(s.T(), domain.SubjectTeamUpdate, team[0].Subject)

	_, err = s.svc.BySubject(context.Background(), "gossip")
	require.Error(s.T(), err)
}

func (s *UpdateServiceSuite) TestEditSubjectInvalidatesBothSubjectLists() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	// Populate both subject list entries.
	_, err = s.svc.BySubject(context.Background(), "team_update")
	require.NoError(s.T(), err)

	_, err = s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"subject": "funding_update",
	})
	require.NoError(s.T(), err)

	_, err = s.cache.Get(context.Background(), cache.SubjectKey(domain.SubjectTeamUpdate))
	assert.ErrorIs(s.T(), err, cache.ErrMiss)

	team, err := s.svc.BySubject(context.Background(), "team_update")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), team)
}

func (s *UpdateServiceSuite) TestRemove() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	removed, err := s.svc.Remove(context.Background(), created.ID.Hex())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, removed.ID)

	_, err = s.svc.GetByID(context.Background(), created.ID.Hex())
	assert.True(s.T(), domerrors.HasCode(err, domerrors.CodeNotFound))
}

func TestUpdateServiceSuite(t *testing.T) {
	suite.Run(t, new(UpdateServiceSuite))
}
