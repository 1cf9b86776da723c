// Package account implements the account entity service: validation, the
// cache-aside read paths, and the write protocol that hands committed
// mutations to the coordinator.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/cache"
	"scholarhub/internal/coordinator"
	"scholarhub/internal/domain"
	"scholarhub/internal/store"
	"scholarhub/internal/validate"
	"scholarhub/pkg/domerrors"
	"scholarhub/pkg/password"
	"scholarhub/pkg/platform/sentinel"
)

var (
	createSchema = validate.NewSchema(
		validate.Field{Name: "firstName", Required: true, Rule: validate.RuleName},
		validate.Field{Name: "lastName", Required: true, Rule: validate.RuleName},
		validate.Field{Name: "email", Required: true, Rule: validate.RuleEmail},
		validate.Field{Name: "password", Required: true, Rule: validate.RulePassword},
		validate.Field{Name: "role", Required: true, Rule: validate.RuleRole},
		validate.Field{Name: "department", Required: true, Rule: validate.RuleDepartment},
		validate.Field{Name: "bio", Rule: validate.RuleBio},
	)
	editSchema = validate.NewSchema(
		validate.Field{Name: "firstName", Rule: validate.RuleName},
		validate.Field{Name: "lastName", Rule: validate.RuleName},
		validate.Field{Name: "email", Rule: validate.RuleEmail},
		validate.Field{Name: "password", Rule: validate.RulePassword},
		validate.Field{Name: "role", Rule: validate.RuleRole},
		validate.Field{Name: "department", Rule: validate.RuleDepartment},
		validate.Field{Name: "bio", Rule: validate.RuleBio},
	)
)

// Service orchestrates account lifecycle and reads.
type Service struct {
	accounts     store.AccountStore
	projects     store.ProjectStore
	applications store.ApplicationStore
	cache        cache.Cache
	coord        *coordinator.Coordinator
	hasher       password.Hasher
	log          zerolog.Logger
}

func NewService(accounts store.AccountStore, projects store.ProjectStore, applications store.ApplicationStore, c cache.Cache, coord *coordinator.Coordinator, hasher password.Hasher, log zerolog.Logger) *Service {
	return &Service{
		accounts:     accounts,
		projects:     projects,
		applications: applications,
		cache:        c,
		coord:        coord,
		hasher:       hasher,
		log:          log,
	}
}

// List returns all accounts with derived fields resolved. Cached for an hour.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return cache.ReadList(ctx, s.cache, s.log, cache.KeyAllAccounts, cache.ListTTL,
		func(ctx context.Context) ([]domain.Account, error) {
			accounts, err := s.accounts.FindAll(ctx)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to list accounts")
			}
			return s.resolveAll(ctx, accounts)
		})
}

// GetByID returns one account by identifier. Cached without expiration.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Account, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Account{}, err
	}
	return cache.ReadOne(ctx, s.cache, s.log, cache.AccountKey(oid.Hex()),
		func(ctx context.Context) (domain.Account, error) {
			account, err := s.accounts.FindByID(ctx, oid)
			if err != nil {
				return domain.Account{}, translate(err, "account")
			}
			return s.resolve(ctx, account)
		})
}

// SearchByName returns accounts whose first or last name contains the term,
// case-insensitively.
func (s *Service) SearchByName(ctx context.Context, term string) ([]domain.Account, error) {
	if err := validate.Check("searchTerm", validate.RuleContent, term); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	return cache.ReadList(ctx, s.cache, s.log, cache.AccountSearchKey(term), cache.ListTTL,
		func(ctx context.Context) ([]domain.Account, error) {
			accounts, err := s.accounts.SearchByName(ctx, term)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to search accounts")
			}
			return s.resolveAll(ctx, accounts)
		})
}

// Create validates the field bag, hashes the credential, persists the account,
// and hands the committed write to the coordinator. The returned account never
// carries the credential hash.
func (s *Service) Create(ctx context.Context, args validate.Args) (domain.Account, error) {
	if err := createSchema.Check(args); err != nil {
		return domain.Account{}, err
	}

	email, _ := args.String("email")
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return domain.Account{}, domerrors.NewField(domerrors.CodeInvalidArgument, "email", "is already in use")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to check email uniqueness")
	}

	plain, _ := args.String("password")
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to hash credential")
	}

	firstName, _ := args.String("firstName")
	lastName, _ := args.String("lastName")
	roleRaw, _ := args.String("role")
	role, _ := domain.ParseRole(roleRaw)
	depRaw, _ := args.String("department")
	dep, _ := domain.ParseDepartment(depRaw)
	bio, _ := args.String("bio")

	account := domain.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Department:   dep,
		Bio:          bio,
	}

	inserted, err := s.accounts.Insert(ctx, account)
	if err != nil {
		return domain.Account{}, translateWrite(err, "account could not be added")
	}

	resolved, err := s.resolve(ctx, inserted)
	if err != nil {
		return domain.Account{}, err
	}
	return resolved, s.committed(ctx, coordinator.ActionCreate, resolved)
}

// Edit applies only the supplied fields over the stored account. The
// identifier is immutable and absent from the allow-list.
func (s *Service) Edit(ctx context.Context, id string, args validate.Args) (domain.Account, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Account{}, err
	}
	if err := editSchema.Check(args); err != nil {
		return domain.Account{}, err
	}

	current, err := s.accounts.FindByID(ctx, oid)
	if err != nil {
		return domain.Account{}, translate(err, "account")
	}

	if v, ok := args.String("firstName"); ok {
		current.FirstName = v
	}
	if v, ok := args.String("lastName"); ok {
		current.LastName = v
	}
	if v, ok := args.String("email"); ok && !strings.EqualFold(v, current.Email) {
		if _, err := s.accounts.FindByEmail(ctx, v); err == nil {
			return domain.Account{}, domerrors.NewField(domerrors.CodeInvalidArgument, "email", "is already in use")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to check email uniqueness")
		}
		current.Email = v
	}
	if v, ok := args.String("password"); ok {
		hash, err := s.hasher.Hash(v)
		if err != nil {
			return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to hash credential")
		}
		current.PasswordHash = hash
	}
	if v, ok := args.String("role"); ok {
		current.Role, _ = domain.ParseRole(v)
	}
	if v, ok := args.String("department"); ok {
		current.Department, _ = domain.ParseDepartment(v)
	}
	if v, ok := args.String("bio"); ok {
		current.Bio = v
	}

	if err := s.accounts.Update(ctx, oid, current); err != nil {
		return domain.Account{}, translateWrite(err, "account could not be updated")
	}

	resolved, err := s.resolve(ctx, current)
	if err != nil {
		return domain.Account{}, err
	}
	return resolved, s.committed(ctx, coordinator.ActionEdit, resolved)
}

// Remove deletes the account. Applications the account submitted are removed
// by the coordinator's cascade; projects and updates it participated in are
// left untouched.
func (s *Service) Remove(ctx context.Context, id string) (domain.Account, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Account{}, err
	}

	removed, err := s.accounts.FindByID(ctx, oid)
	if err != nil {
		return domain.Account{}, translate(err, "account")
	}
	if err := s.accounts.Delete(ctx, oid); err != nil {
		return domain.Account{}, translateWrite(err, "account could not be deleted")
	}

	sanitized := removed.Sanitize()
	return sanitized, s.coord.Committed(ctx, coordinator.KindAccount, coordinator.ActionRemove, oid, nil)
}

// resolve recomputes derived fields against current store state and strips
// the credential hash. Counts come from count queries and lists from filter
// queries so neither is ever trusted from storage.
func (s *Service) resolve(ctx context.Context, account domain.Account) (domain.Account, error) {
	apps, err := s.applications.FindByApplicant(ctx, account.ID)
	if err != nil {
		return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve applications")
	}
	projs, err := s.projects.FindByMember(ctx, account.ID)
	if err != nil {
		return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve projects")
	}
	numApps, err := s.applications.CountByApplicant(ctx, account.ID)
	if err != nil {
		return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to count applications")
	}
	numProjs, err := s.projects.CountByMember(ctx, account.ID)
	if err != nil {
		return domain.Account{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to count projects")
	}
	account.Applications = apps
	account.Projects = projs
	account.NumOfApplications = int(numApps)
	account.NumOfProjects = int(numProjs)
	return account.Sanitize(), nil
}

func (s *Service) resolveAll(ctx context.Context, accounts []domain.Account) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		resolved, err := s.resolve(ctx, account)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (s *Service) committed(ctx context.Context, action coordinator.Action, account domain.Account) error {
	var payload []byte
	if action == coordinator.ActionCreate {
		// Edits delete the per-id key instead of rewriting it so the next
		// read re-derives the computed fields.
		payload, _ = json.Marshal(account)
	}
	return s.coord.Committed(ctx, coordinator.KindAccount, action, account.ID, payload)
}

func checkID(id string) (primitive.ObjectID, error) {
	if err := validate.Check("id", validate.RuleID, id); err != nil {
		return primitive.NilObjectID, err
	}
	return validate.ParseID("id", strings.TrimSpace(id))
}

func translate(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return domerrors.Newf(domerrors.CodeNotFound, "%s not found", what)
	}
	return domerrors.Wrap(err, domerrors.CodeInternal, "store read failed")
}

func translateWrite(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNoEffect) {
		return domerrors.New(domerrors.CodePersistence, msg)
	}
	return domerrors.Wrap(err, domerrors.CodeInternal, msg)
}
