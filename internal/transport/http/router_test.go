package httptransport

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/account"
	"scholarhub/internal/application"
	"scholarhub/internal/audit"
	"scholarhub/internal/cache"
	"scholarhub/internal/coordinator"
	"scholarhub/internal/domain"
	"scholarhub/internal/project"
	"scholarhub/internal/store/memory"
	"scholarhub/internal/update"
	"scholarhub/pkg/testutil"
)

type stubHasher struct{}

func (stubHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }
func (stubHasher) Verify(secret, hash string) bool    { return hash == "hashed:"+secret }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zerolog.Nop()
	accounts := memory.NewAccountStore()
	projects := memory.NewProjectStore()
	updates := memory.NewUpdateStore()
	applications := memory.NewApplicationStore()
	c := cache.NewMemory()
	auditor := audit.NewPublisher(memory.NewAuditStore())
	coord := coordinator.New(updates, applications, c, auditor, log)

	return NewRouter(Deps{
		Accounts:     account.NewService(accounts, projects, applications, c, coord, stubHasher{}, log),
		Projects:     project.NewService(projects, accounts, updates, applications, c, coord, log),
		Updates:      update.NewService(updates, accounts, projects, c, coord, log),
		Applications: application.NewService(applications, accounts, projects, c, coord, log),
		Audit:        auditor,
		Log:          log,
	})
}

func createAccountBody() map[string]any {
	return map[string]any{
		"firstName":  "Ada",
		"lastName":   "Lovelace",
		"email":      "ada@example.edu",
		"password":   "Str0ng!pass",
		"role":       "student",
		"department": "computer_science",
	}
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/accounts", createAccountBody()))
	require.Equal(t, http.StatusCreated, rr.Code)

	created := testutil.UnmarshalResponse[domain.Account](t, rr)
	assert.Equal(t, domain.RoleStudent, created.Role)
	assert.False(t, created.ID.IsZero())

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/accounts/"+created.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, rr.Code)
	fetched := testutil.UnmarshalResponse[domain.Account](t, rr)
	assert.Equal(t, created.Email, fetched.Email)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/accounts/"+created.ID.Hex(),
		map[string]any{"bio": "Pioneer of computing"}))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodDelete, "/accounts/"+created.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/accounts/"+created.ID.Hex(), nil))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestCreateAccountNeverEchoesCredential(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/accounts", createAccountBody()))
	require.Equal(t, http.StatusCreated, rr.Code)

	raw := testutil.UnmarshalResponse[map[string]any](t, rr)
	_, hasPassword := (*raw)["password"]
	assert.False(t, hasPassword)
	_, hasHash := (*raw)["passwordHash"]
	assert.False(t, hasHash)
}

func TestValidationErrorsMapToBadRequest(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknown role", func(t *testing.T) {
		body := createAccountBody()
		body["role"] = "teacher"
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/accounts", body))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_argument")
	})

	t.Run("unexpected field", func(t *testing.T) {
		body := createAccountBody()
		body["nickname"] = "ada"
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/accounts", body))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "unexpected_field")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/accounts", "not an object")
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProjectEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/accounts", map[string]any{
		"firstName": "Grace", "lastName": "Hopper", "email": "grace@example.edu",
		"password": "Str0ng!pass", "role": "professor", "department": "computer_science",
	}))
	require.Equal(t, http.StatusCreated, rr.Code)
	professor := testutil.UnmarshalResponse[domain.Account](t, rr)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/projects", map[string]any{
		"title":        "Compiler Research",
		"createdYear":  2022,
		"department":   "computer_science",
		"professorIds": []string{professor.ID.Hex()},
	}))
	require.Equal(t, http.StatusCreated, rr.Code)
	created := testutil.UnmarshalResponse[domain.Project](t, rr)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/projects/department/computer_science", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	byDept := testutil.UnmarshalResponse[[]domain.Project](t, rr)
	assert.Len(t, *byDept, 1)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/projects/"+created.ID.Hex()+"/professors", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	professors := testutil.UnmarshalResponse[[]domain.Account](t, rr)
	require.Len(t, *professors, 1)
	assert.Equal(t, "Grace", (*professors)[0].FirstName)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/projects/created-year?min=abc&max=2024", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuditTrailEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/accounts", createAccountBody()))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/audit/events", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	events := testutil.UnmarshalResponse[[]audit.Event](t, rr)
	require.Len(t, *events, 1)
	assert.Equal(t, "account", (*events)[0].Kind)
	assert.Equal(t, "create", (*events)[0].Action)
}

func TestHealthEndpointWithoutCheckers(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUnknownUpdateReturns404(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/updates/"+primitive.NewObjectID().Hex(), nil))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}
