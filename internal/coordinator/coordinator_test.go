package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"scholarhub/internal/audit"
	"scholarhub/internal/cache"
	"scholarhub/internal/cache/mocks"
	"scholarhub/internal/domain"
	"scholarhub/internal/store/memory"
	"scholarhub/pkg/domerrors"
)

func newFixture(t *testing.T) (*Coordinator, *memory.UpdateStore, *memory.ApplicationStore, *cache.Memory, *memory.AuditStore) {
	t.Helper()
	updates := memory.NewUpdateStore()
	applications := memory.NewApplicationStore()
	c := cache.NewMemory()
	auditStore := memory.NewAuditStore()
	coord := New(updates, applications, c, audit.NewPublisher(auditStore), zerolog.Nop())
	return coord, updates, applications, c, auditStore
}

func TestCommittedCreateRefreshesPerIDEntry(t *testing.T) {
	ctx := context.Background()
	coord, _, _, c, auditStore := newFixture(t)

	require.NoError(t, c.Set(ctx, cache.KeyAllAccounts, []byte("[]"), 0))

	id := primitive.NewObjectID()
	err := coord.Committed(ctx, KindAccount, ActionCreate, id, []byte(`{"firstName":"Ada"}`))
	require.NoError(t, err)

	got, err := c.Get(ctx, cache.AccountKey(id.Hex()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"Ada"}`, string(got))

	_, err = c.Get(ctx, cache.KeyAllAccounts)
	assert.ErrorIs(t, err, cache.ErrMiss)

	events, err := auditStore.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "account", events[0].Kind)
	assert.Equal(t, "create", events[0].Action)
	assert.Equal(t, id.Hex(), events[0].EntityID)
}

func TestCommittedNilPayloadDeletesPerIDEntry(t *testing.T) {
	ctx := context.Background()
	coord, _, _, c, _ := newFixture(t)

	id := primitive.NewObjectID()
	require.NoError(t, c.Set(ctx, cache.AccountKey(id.Hex()), []byte("{}"), 0))

	require.NoError(t, coord.Committed(ctx, KindAccount, ActionEdit, id, nil))

	_, err := c.Get(ctx, cache.AccountKey(id.Hex()))
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestCommittedAccountRemoveCascadesApplications(t *testing.T) {
	ctx := context.Background()
	coord, _, applications, c, _ := newFixture(t)

	accountID := primitive.NewObjectID()
	_, err := applications.Insert(ctx, domain.Application{ApplicantID: accountID})
	require.NoError(t, err)
	_, err = applications.Insert(ctx, domain.Application{ApplicantID: primitive.NewObjectID()})
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, cache.KeyAllApplications, []byte("[]"), 0))

	require.NoError(t, coord.Committed(ctx, KindAccount, ActionRemove, accountID, nil))

	remaining, err := applications.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	_, err = c.Get(ctx, cache.KeyAllApplications)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestCommittedProjectRemoveCascadesUpdatesAndApplications(t *testing.T) {
	ctx := context.Background()
	coord, updates, applications, c, _ := newFixture(t)

	projectID := primitive.NewObjectID()
	_, err := updates.Insert(ctx, domain.Update{ProjectID: projectID})
	require.NoError(t, err)
	_, err = applications.Insert(ctx, domain.Application{ProjectID: projectID})
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, cache.KeyAllUpdates, []byte("[]"), 0))
	require.NoError(t, c.Set(ctx, cache.KeyAllApplications, []byte("[]"), 0))
	require.NoError(t, c.Set(ctx, cache.ProjectKey(projectID.Hex()), []byte("{}"), 0))

	require.NoError(t, coord.Committed(ctx, KindProject, ActionRemove, projectID, nil))

	remainingUpdates, err := updates.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remainingUpdates)

	remainingApps, err := applications.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remainingApps)

	assert.Equal(t, 0, c.Len())
}

func TestCommittedExtraKeysAreInvalidated(t *testing.T) {
	ctx := context.Background()
	coord, _, _, c, _ := newFixture(t)

	stale := cache.AccountKey("someApplicant")
	require.NoError(t, c.Set(ctx, stale, []byte("{}"), 0))

	id := primitive.NewObjectID()
	require.NoError(t, coord.Committed(ctx, KindApplication, ActionCreate, id, []byte("{}"), stale))

	_, err := c.Get(ctx, stale)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestCommittedCacheFailureSurfacesAsCacheSync(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache(ctrl)

	coord := New(memory.NewUpdateStore(), memory.NewApplicationStore(), mockCache, nil, zerolog.Nop())

	id := primitive.NewObjectID()
	mockCache.EXPECT().Set(gomock.Any(), cache.AccountKey(id.Hex()), gomock.Any(), gomock.Any()).Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	err := coord.Committed(ctx, KindAccount, ActionCreate, id, []byte("{}"))
	require.Error(t, err)
	assert.True(t, domerrors.HasCode(err, domerrors.CodeCacheSync))
}

func TestCommittedAuditFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	coord := New(memory.NewUpdateStore(), memory.NewApplicationStore(), cache.NewMemory(),
		audit.NewPublisher(failingAuditStore{}), zerolog.Nop())

	err := coord.Committed(ctx, KindUpdate, ActionCreate, primitive.NewObjectID(), []byte("{}"))
	assert.NoError(t, err)
}

type failingAuditStore struct{}

func (failingAuditStore) Append(context.Context, audit.Event) error { return errors.New("sink down") }
func (failingAuditStore) List(context.Context) ([]audit.Event, error) {
	return nil, errors.New("sink down")
}
