package application

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

type ApplicationServiceSuite struct {
	suite.Suite
	applications *memory.ApplicationStore
	accounts     *memory.AccountStore
	projects     *memory.ProjectStore
	cache        *cache.Memory
	svc          *Service

	applicant domain.Account
	project   domain.Project
}

func (s *ApplicationServiceSuite) SetupTest() {
	s.applications = memory.NewApplicationStore()
	s.accounts = memory.NewAccountStore()
	s.projects = memory.NewProjectStore()
	s.cache = cache.NewMemory()
	coord := coordinator.New(memory.NewUpdateStore(), s.applications, s.cache,
		audit.NewPublisher(memory.NewAuditStore()), zerolog.Nop())
	s.svc = NewService(s.applications, s.accounts, s.projects, s.cache, coord, zerolog.Nop())
	s.svc.now = func() time.Time { return time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC) }

	var err error
	s.applicant, err = s.accounts.Insert(context.Background(), domain.Account{
		FirstName: "Ada", Role: domain.RoleStudent,
	})
	require.NoError(s.T(), err)
	s.project, err = s.projects.Insert(context.Background(), domain.Project{Title: "Compilers"})
	require.NoError(s.T(), err)
}

func (s *ApplicationServiceSuite) createArgs() validate.Args {
	return validate.Args{
		"applicantId": s.applicant.ID.Hex(),
		"projectId":   s.project.ID.Hex(),
	}
}

func (s *ApplicationServiceSuite) TestCreateStartsPending() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), domain.StatusPending, created.Status)
	assert.Equal(s.T(), created.ApplicationDate, created.LastUpdatedDate)
	assert.False(s.T(), created.ApplicationDate.IsZero())
}

func (s *ApplicationServiceSuite) TestCreateRejectsStatusField() {
	args := s.createArgs()
	args["status"] = "approved"

	_, err := s.svc.Create(context.Background(), args)
	require.Error(s.T(), err)
	assert.True(s.T(), domerrors.HasCode(err, domerrors.CodeUnexpectedField))
}

func (s *ApplicationServiceSuite) TestCreateRejectsDanglingReferences() {
	args := s.createArgs()
	args["applicantId"] = primitive.NewObjectID().Hex()
	_, err := s.svc.Create(context.Background(), args)
	require.Error(s.T(), err)
	assert.Equal(s.T(), "applicantId", domerrors.FieldOf(err))

	args = s.createArgs()
	args["projectId"] = primitive.NewObjectID().Hex()
	_, err = s.svc.Create(context.Background(), args)
	require.Error(s.T(), err)
	assert.Equal(s.T(), "projectId", domerrors.FieldOf(err))
}

func (s *ApplicationServiceSuite) TestEditStatusRefreshesLastUpdated() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	s.svc.now = func() time.Time { return time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC) }
	edited, err := s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"status": "approved",
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), domain.StatusApproved, edited.Status)
	assert.Equal(s.T(), created.ApplicationDate, edited.ApplicationDate)
	assert.True(s.T(), edited.LastUpdatedDate.After(edited.ApplicationDate))
}

func (s *ApplicationServiceSuite) TestEditRejectsUnknownStatus() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	_, err = s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"status": "maybe",
	})
	require.Error(s.T(), err)
	assert.Equal(s.T(), "status", domerrors.FieldOf(err))
}

func (s *ApplicationServiceSuite) TestEditApplicantInvalidatesBothAccountEntries() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	other, err := s.accounts.Insert(context.Background(), domain.Account{
		FirstName: "Alan", Role: domain.RoleStudent,
	})
	require.NoError(s.T(), err)

	// Seed stale account entries for both applicants.
	require.NoError(s.T(), s.cache.Set(context.Background(), cache.AccountKey(s.applicant.ID.Hex()), []byte("{}"), 0))
	require.NoError(s.T(), s.cache.Set(context.Background(), cache.AccountKey(other.ID.Hex()), []byte("{}"), 0))

	_, err = s.svc.Edit(context.Background(), created.ID.Hex(), validate.Args{
		"applicantId": other.ID.Hex(),
	})
	require.NoError(s.T(), err)

	_, err = s.cache.Get(context.Background(), cache.AccountKey(s.applicant.ID.Hex()))
	assert.ErrorIs(s.T(), err, cache.ErrMiss)
	_, err = s.cache.Get(context.Background(), cache.AccountKey(other.ID.Hex()))
	assert.ErrorIs(s.T(), err, cache.ErrMiss)
}

func (s *ApplicationServiceSuite) TestRemoveInvalidatesApplicantEntry() {
	created, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.cache.Set(context.Background(), cache.AccountKey(s.applicant.ID.Hex()), []byte("{}"), 0))

	_, err = s.svc.Remove(context.Background(), created.ID.Hex())
	require.NoError(s.T(), err)

	_, err = s.svc.GetByID(context.Background(), created.ID.Hex())
	assert.True(s.T(), domerrors.HasCode(err, domerrors.CodeNotFound))

	_, err = s.cache.Get(context.Background(), cache.AccountKey(s.applicant.ID.Hex()))
	assert.ErrorIs(s.T(), err, cache.ErrMiss)
}

func (s *ApplicationServiceSuite) TestListUsesCacheUntilInvalidated() {
	_, err := s.svc.Create(context.Background(), s.createArgs())
	require.NoError(s.T(), err)

	first, err := s.svc.List(context.Background())
	require.NoError(s.T(), err)
	require.Len(s.T(), first, 1)

	// A second application invalidates the cached list through the
	// coordinator, so the next read reflects it.
	other, err := s.accounts.Insert(context.Background(), domain.Account{
		FirstName: "Alan", Role: domain.RoleStudent,
	})
	require.NoError(s.T(), err)
	args := validate.Args{"applicantId": other.ID.Hex(), "projectId": s.project.ID.Hex()}
	_, err = s.svc.Create(context.Background(), args)
	require.NoError(s.T(), err)

	second, err := s.svc.List(context.Background())
	require.NoError(s.T(), err)
	assert.Len(s.T(), second, 2)
}

func TestApplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceSuite))
}
