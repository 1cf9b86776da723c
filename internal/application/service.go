// Package application implements the project-application entity service.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/cache"
	"scholarhub/internal/coordinator"
	"scholarhub/internal/domain"
	"scholarhub/internal/store"
	"scholarhub/internal/validate"
	"scholarhub/pkg/domerrors"
	"scholarhub/pkg/platform/sentinel"
)

var (
	createSchema = validate.NewSchema(
		validate.Field{Name: "applicantId", Required: true, Rule: validate.RuleID},
		validate.Field{Name: "projectId", Required: true, Rule: validate.RuleID},
	)
	editSchema = validate.NewSchema(
		validate.Field{Name: "applicantId", Rule: validate.RuleID},
		validate.Field{Name: "projectId", Rule: validate.RuleID},
		validate.Field{Name: "status", Rule: validate.RuleStatus},
	)
)

type Service struct {
	applications store.ApplicationStore
	accounts     store.AccountStore
	projects     store.ProjectStore
	cache        cache.Cache
	coord        *coordinator.Coordinator
	log          zerolog.Logger
	now          func() time.Time
}

func NewService(applications store.ApplicationStore, accounts store.AccountStore, projects store.ProjectStore, c cache.Cache, coord *coordinator.Coordinator, log zerolog.Logger) *Service {
	return &Service{
		applications: applications,
		accounts:     accounts,
		projects:     projects,
		cache:        c,
		coord:        coord,
		log:          log,
		now:          time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Application, error) {
	return cache.ReadList(ctx, s.cache, s.log, cache.KeyAllApplications, cache.ListTTL,
		func(ctx context.Context) ([]domain.Application, error) {
			applications, err := s.applications.FindAll(ctx)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to list applications")
			}
			return applications, nil
		})
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Application, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Application{}, err
	}
	return cache.ReadOne(ctx, s.cache, s.log, cache.ApplicationKey(oid.Hex()),
		func(ctx context.Context) (domain.Application, error) {
			application, err := s.applications.FindByID(ctx, oid)
			if err != nil {
				return domain.Application{}, translate(err, "application")
			}
			return application, nil
		})
}

// Create records a new application. The status always starts as PENDING and
// both date fields are stamped server-side. Neither appears in the allow-list.
func (s *Service) Create(ctx context.Context, args validate.Args) (domain.Application, error) {
	if err := createSchema.Check(args); err != nil {
		return domain.Application{}, err
	}

	applicantID, err := s.resolveApplicant(ctx, args)
	if err != nil {
		return domain.Application{}, err
	}
	projectID, err := s.resolveProject(ctx, args)
	if err != nil {
		return domain.Application{}, err
	}

	created := s.now()
	application := domain.Application{
		ApplicantID:     applicantID,
		ProjectID:       projectID,
		ApplicationDate: created,
		LastUpdatedDate: created,
		Status:          domain.StatusPending,
	}

	inserted, err := s.applications.Insert(ctx, application)
	if err != nil {
		return domain.Application{}, translateWrite(err, "application could not be added")
	}
	// The new applicant's derived fields (application list, counts) changed.
	return inserted, s.committed(ctx, coordinator.ActionCreate, inserted, cache.AccountKey(applicantID.Hex()))
}

// Edit applies supplied fields and refreshes the last-updated date. The
// application date is immutable.
func (s *Service) Edit(ctx context.Context, id string, args validate.Args) (domain.Application, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Application{}, err
	}
	if err := editSchema.Check(args); err != nil {
		return domain.Application{}, err
	}

	current, err := s.applications.FindByID(ctx, oid)
	if err != nil {
		return domain.Application{}, translate(err, "application")
	}
	previousApplicant := current.ApplicantID

	if args.Has("applicantId") {
		applicantID, err := s.resolveApplicant(ctx, args)
		if err != nil {
			return domain.Application{}, err
		}
		current.ApplicantID = applicantID
	}
	if args.Has("projectId") {
		projectID, err := s.resolveProject(ctx, args)
		if err != nil {
			return domain.Application{}, err
		}
		current.ProjectID = projectID
	}
	if v, ok := args.String("status"); ok {
		current.Status, _ = domain.ParseStatus(v)
	}
	current.LastUpdatedDate = s.now()

	if err := s.applications.Update(ctx, oid, current); err != nil {
		return domain.Application{}, translateWrite(err, "application could not be updated")
	}

	extra := []string{cache.AccountKey(current.ApplicantID.Hex())}
	if previousApplicant != current.ApplicantID {
		extra = append(extra, cache.AccountKey(previousApplicant.Hex()))
	}
	return current, s.committed(ctx, coordinator.ActionEdit, current, extra...)
}

func (s *Service) Remove(ctx context.Context, id string) (domain.Application, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Application{}, err
	}
	removed, err := s.applications.FindByID(ctx, oid)
	if err != nil {
		return domain.Application{}, translate(err, "application")
	}
	if err := s.applications.Delete(ctx, oid); err != nil {
		return domain.Application{}, translateWrite(err, "application could not be deleted")
	}
	return removed, s.coord.Committed(ctx, coordinator.KindApplication, coordinator.ActionRemove, oid, nil,
		cache.AccountKey(removed.ApplicantID.Hex()))
}

func (s *Service) resolveApplicant(ctx context.Context, args validate.Args) (primitive.ObjectID, error) {
	idStr, _ := args.String("applicantId")
	oid, err := validate.ParseID("applicantId", idStr)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.accounts.FindByID(ctx, oid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return primitive.NilObjectID, domerrors.NewField(domerrors.CodeNotFound, "applicantId", "references an account that does not exist")
		}
		return primitive.NilObjectID, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve applicant")
	}
	return oid, nil
}

func (s *Service) resolveProject(ctx context.Context, args validate.Args) (primitive.ObjectID, error) {
	idStr, _ := args.String("projectId")
	oid, err := validate.ParseID("projectId", idStr)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.projects.FindByID(ctx, oid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return primitive.NilObjectID, domerrors.NewField(domerrors.CodeNotFound, "projectId", "references a project that does not exist")
		}
		return primitive.NilObjectID, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve project")
	}
	return oid, nil
}

func (s *Service) committed(ctx context.Context, action coordinator.Action, application domain.Application, extra ...string) error {
	payload, _ := json.Marshal(application)
	return s.coord.Committed(ctx, coordinator.KindApplication, action, application.ID, payload, extra...)
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
