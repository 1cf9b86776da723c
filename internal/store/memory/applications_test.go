package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
)

func TestApplicationStoreCascadeHelpers(t *testing.T) {
	ctx := context.Background()
	store := NewApplicationStore()

	applicant := primitive.NewObjectID()
	project := primitive.NewObjectID()
	otherProject := primitive.NewObjectID()

	for _, app := range []domain.Application{
		{ApplicantID: applicant, ProjectID: project},
		{ApplicantID: applicant, ProjectID: otherProject},
		{ApplicantID: primitive.NewObjectID(), ProjectID: project},
	} {
		_, err := store.Insert(ctx, app)
		require.NoError(t, err)
	}

	t.Run("counts per applicant and project", func(t *testing.T) {
		byApplicant, err := store.CountByApplicant(ctx, applicant)
		require.NoError(t, err)
		assert.EqualValues(t, 2, byApplicant)

		byProject, err := store.CountByProject(ctx, project)
		require.NoError(t, err)
		assert.EqualValues(t, 2, byProject)
	})

	t.Run("delete by applicant leaves other applicants alone", func(t *testing.T) {
		n, err := store.DeleteByApplicant(ctx, applicant)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		remaining, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.NotEqual(t, applicant, remaining[0].ApplicantID)
	})

	t.Run("delete by project removes the rest", func(t *testing.T) {
		n, err := store.DeleteByProject(ctx, project)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		remaining, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}

func TestUpdateStoreDeleteByProject(t *testing.T) {
	ctx := context.Background()
	store := NewUpdateStore()

	project := primitive.NewObjectID()
	_, err := store.Insert(ctx, domain.Update{ProjectID: project, Subject: domain.SubjectTeamUpdate})
	require.NoError(t, err)
	_, err = store.Insert(ctx, domain.Update{ProjectID: primitive.NewObjectID(), Subject: domain.SubjectTeamUpdate})
	require.NoError(t, err)

	n, err := store.DeleteByProject(ctx, project)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	remaining, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestUpdateStoreBySubject(t *testing.T) {
	ctx := context.Background()
	store := NewUpdateStore()

	_, err := store.Insert(ctx, domain.Update{Subject: domain.SubjectFundingUpdate})
	require.NoError(t, err)
	_, err = store.Insert(ctx, domain.Update{Subject: domain.SubjectTeamUpdate})
	require.NoError(t, err)

	hits, err := store.BySubject(ctx, domain.SubjectFundingUpdate)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, domain.SubjectFundingUpdate, hits[0].Subject)
}
