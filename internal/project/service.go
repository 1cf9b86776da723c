// Package project implements the project entity service. Membership lists
// (professorIds, studentIds) are authoritative on the project; account-side
// projections derive from them.
package project

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
	"scholarhub/pkg/platform/sentinel"
	platformstrings "scholarhub/pkg/platform/strings"
)

var (
	createSchema = validate.NewSchema(
		validate.Field{Name: "title", Required: true, Rule: validate.RuleTitle},
		validate.Field{Name: "createdYear", Required: true, Rule: validate.RuleYear},
		validate.Field{Name: "department", Required: true, Rule: validate.RuleDepartment},
		validate.Field{Name: "professorIds", Required: true, Rule: validate.RuleIDList},
		validate.Field{Name: "studentIds", Rule: validate.RuleIDList},
	)
	editSchema = validate.NewSchema(
		validate.Field{Name: "title", Rule: validate.RuleTitle},
		validate.Field{Name: "department", Rule: validate.RuleDepartment},
		validate.Field{Name: "professorIds", Rule: validate.RuleIDList},
		validate.Field{Name: "studentIds", Rule: validate.RuleIDList},
	)
)

type Service struct {
	projects     store.ProjectStore
	accounts     store.AccountStore
	updates      store.UpdateStore
	applications store.ApplicationStore
	cache        cache.Cache
	coord        *coordinator.Coordinator
	log          zerolog.Logger
}

func NewService(projects store.ProjectStore, accounts store.AccountStore, updates store.UpdateStore, applications store.ApplicationStore, c cache.Cache, coord *coordinator.Coordinator, log zerolog.Logger) *Service {
	return &Service{
		projects:     projects,
		accounts:     accounts,
		updates:      updates,
		applications: applications,
		cache:        c,
		coord:        coord,
		log:          log,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return cache.ReadList(ctx, s.cache, s.log, cache.KeyAllProjects, cache.ListTTL,
		func(ctx context.Context) ([]domain.Project, error) {
			projects, err := s.projects.FindAll(ctx)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to list projects")
			}
			return s.resolveAll(ctx, projects)
		})
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Project, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Project{}, err
	}
	return cache.ReadOne(ctx, s.cache, s.log, cache.ProjectKey(oid.Hex()),
		func(ctx context.Context) (domain.Project, error) {
			project, err := s.projects.FindByID(ctx, oid)
			if err != nil {
				return domain.Project{}, translate(err, "project")
			}
			return s.resolve(ctx, project)
		})
}

// ByDepartment filters projects by department. The input is normalized before
// the enum check so "computer_science" and "COMPUTER_SCIENCE" share a key.
func (s *Service) ByDepartment(ctx context.Context, department string) ([]domain.Project, error) {
	if err := validate.Check("department", validate.RuleDepartment, department); err != nil {
		return nil, err
	}
	dep, _ := domain.ParseDepartment(department)
	return cache.ReadList(ctx, s.cache, s.log, cache.DepartmentKey(dep), cache.ListTTL,
		func(ctx context.Context) ([]domain.Project, error) {
			projects, err := s.projects.ByDepartment(ctx, dep)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to filter projects")
			}
			return s.resolveAll(ctx, projects)
		})
}

// ByCreatedYearRange returns projects created in [min, max] inclusive.
func (s *Service) ByCreatedYearRange(ctx context.Context, min, max int) ([]domain.Project, error) {
	if err := validate.ValidateYearRange(min, max); err != nil {
		return nil, err
	}
	return cache.ReadList(ctx, s.cache, s.log, cache.YearRangeKey(min, max), cache.ListTTL,
		func(ctx context.Context) ([]domain.Project, error) {
			projects, err := s.projects.ByYearRange(ctx, min, max)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to filter projects")
			}
			return s.resolveAll(ctx, projects)
		})
}

func (s *Service) SearchByTitle(ctx context.Context, term string) ([]domain.Project, error) {
	if err := validate.Check("searchTerm", validate.RuleContent, term); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	return cache.ReadList(ctx, s.cache, s.log, cache.ProjectSearchKey(term), cache.ListTTL,
		func(ctx context.Context) ([]domain.Project, error) {
			projects, err := s.projects.SearchByTitle(ctx, term)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to search projects")
			}
			return s.resolveAll(ctx, projects)
		})
}

// ProfessorsOf resolves a project's professor list, silently excluding ids of
// since-deleted accounts.
func (s *Service) ProfessorsOf(ctx context.Context, projectID string) ([]domain.Account, error) {
	return s.members(ctx, projectID, cache.ProfessorsKey, func(p domain.Project) []primitive.ObjectID {
		return p.ProfessorIDs
	})
}

// StudentsOf resolves a project's student list, silently excluding dangling
// ids.
func (s *Service) StudentsOf(ctx context.Context, projectID string) ([]domain.Account, error) {
	return s.members(ctx, projectID, cache.StudentsKey, func(p domain.Project) []primitive.ObjectID {
		return p.StudentIDs
	})
}

func (s *Service) members(ctx context.Context, projectID string, key func(string) string, pick func(domain.Project) []primitive.ObjectID) ([]domain.Account, error) {
	oid, err := checkID(projectID)
	if err != nil {
		return nil, err
	}
	return cache.ReadList(ctx, s.cache, s.log, key(oid.Hex()), cache.ListTTL,
		func(ctx context.Context) ([]domain.Account, error) {
			project, err := s.projects.FindByID(ctx, oid)
			if err != nil {
				return nil, translate(err, "project")
			}
			members := []domain.Account{}
			for _, id := range pick(project) {
				account, err := s.accounts.FindByID(ctx, id)
				if errors.Is(err, sentinel.ErrNotFound) {
					continue // dangling membership id, excluded from the projection
				}
				if err != nil {
					return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve member")
				}
				members = append(members, account.Sanitize())
			}
			return members, nil
		})
}

func (s *Service) Create(ctx context.Context, args validate.Args) (domain.Project, error) {
	if err := createSchema.Check(args); err != nil {
		return domain.Project{}, err
	}

	professorIDs, err := s.resolveMembers(ctx, args, "professorIds", domain.RoleProfessor, true)
	if err != nil {
		return domain.Project{}, err
	}
	studentIDs, err := s.resolveMembers(ctx, args, "studentIds", domain.RoleStudent, false)
	if err != nil {
		return domain.Project{}, err
	}

	title, _ := args.String("title")
	year, _ := args.Int("createdYear")
	depRaw, _ := args.String("department")
	dep, _ := domain.ParseDepartment(depRaw)

	project := domain.Project{
		Title:        title,
		CreatedYear:  year,
		Department:   dep,
		ProfessorIDs: professorIDs,
		StudentIDs:   studentIDs,
	}

	inserted, err := s.projects.Insert(ctx, project)
	if err != nil {
		return domain.Project{}, translateWrite(err, "project could not be added")
	}
	resolved, err := s.resolve(ctx, inserted)
	if err != nil {
		return domain.Project{}, err
	}
	return resolved, s.committed(ctx, coordinator.ActionCreate, resolved)
}

func (s *Service) Edit(ctx context.Context, id string, args validate.Args) (domain.Project, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Project{}, err
	}
	if err := editSchema.Check(args); err != nil {
		return domain.Project{}, err
	}

	current, err := s.projects.FindByID(ctx, oid)
	if err != nil {
		return domain.Project{}, translate(err, "project")
	}

	if v, ok := args.String("title"); ok {
		current.Title = v
	}
	if v, ok := args.String("department"); ok {
		current.Department, _ = domain.ParseDepartment(v)
	}
	if args.Has("professorIds") {
		ids, err := s.resolveMembers(ctx, args, "professorIds", domain.RoleProfessor, true)
		if err != nil {
			return domain.Project{}, err
		}
		current.ProfessorIDs = ids
	}
	if args.Has("studentIds") {
		ids, err := s.resolveMembers(ctx, args, "studentIds", domain.RoleStudent, false)
		if err != nil {
			return domain.Project{}, err
		}
		current.StudentIDs = ids
	}

	if err := s.projects.Update(ctx, oid, current); err != nil {
		return domain.Project{}, translateWrite(err, "project could not be updated")
	}
	resolved, err := s.resolve(ctx, current)
	if err != nil {
		return domain.Project{}, err
	}
	return resolved, s.committed(ctx, coordinator.ActionEdit, resolved)
}

// Remove deletes the project. The coordinator cascades deletion of every
// update and application referencing it before touching the cache.
func (s *Service) Remove(ctx context.Context, id string) (domain.Project, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Project{}, err
	}
	removed, err := s.projects.FindByID(ctx, oid)
	if err != nil {
		return domain.Project{}, translate(err, "project")
	}
	if err := s.projects.Delete(ctx, oid); err != nil {
		return domain.Project{}, translateWrite(err, "project could not be deleted")
	}
	return removed, s.coord.Committed(ctx, coordinator.KindProject, coordinator.ActionRemove, oid, nil,
		cache.ProfessorsKey(oid.Hex()), cache.StudentsKey(oid.Hex()))
}

// resolveMembers parses an id-list field and verifies every reference resolves
// to an account of the expected role. Dangling references are never persisted.
func (s *Service) resolveMembers(ctx context.Context, args validate.Args, field string, role domain.Role, requireNonEmpty bool) ([]primitive.ObjectID, error) {
	raw, present := args.StringList(field)
	if !present {
		return nil, nil
	}
	raw = platformstrings.DedupeAndTrim(raw)
	if requireNonEmpty && len(raw) == 0 {
		return nil, domerrors.NewField(domerrors.CodeInvalidArgument, field, "must not be empty")
	}
	out := make([]primitive.ObjectID, 0, len(raw))
	for _, idStr := range raw {
		oid, err := validate.ParseID(field, idStr)
		if err != nil {
			return nil, err
		}
		account, err := s.accounts.FindByID(ctx, oid)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domerrors.NewField(domerrors.CodeNotFound, field, "references an account that does not exist")
		}
		if err != nil {
			return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve member")
		}
		if account.Role != role {
			return nil, domerrors.NewField(domerrors.CodeInvalidArgument, field, "references an account with the wrong role")
		}
		out = append(out, oid)
	}
	return out, nil
}

// resolve recomputes the derived counts against the current store state.
func (s *Service) resolve(ctx context.Context, project domain.Project) (domain.Project, error) {
	numApps, err := s.applications.CountByProject(ctx, project.ID)
	if err != nil {
		return domain.Project{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to count applications")
	}
	numUpdates, err := s.updates.CountByProject(ctx, project.ID)
	if err != nil {
		return domain.Project{}, domerrors.Wrap(err, domerrors.CodeInternal, "failed to count updates")
	}
	project.NumOfApplications = int(numApps)
	project.NumOfUpdates = int(numUpdates)
	return project, nil
}

func (s *Service) resolveAll(ctx context.Context, projects []domain.Project) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(projects))
	for _, project := range projects {
		resolved, err := s.resolve(ctx, project)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (s *Service) committed(ctx context.Context, action coordinator.Action, project domain.Project) error {
	payload, _ := json.Marshal(project)
	return s.coord.Committed(ctx, coordinator.KindProject, action, project.ID, payload,
		cache.ProfessorsKey(project.ID.Hex()), cache.StudentsKey(project.ID.Hex()))
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
