// Package update implements the project-update (newsfeed) entity service.
package update

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
		validate.Field{Name: "posterId", Required: true, Rule: validate.RuleID},
		validate.Field{Name: "subject", Required: true, Rule: validate.RuleSubject},
		validate.Field{Name: "content", Required: true, Rule: validate.RuleContent},
		validate.Field{Name: "projectId", Required: true, Rule: validate.RuleID},
	)
	editSchema = validate.NewSchema(
		validate.Field{Name: "posterId", Rule: validate.RuleID},
		validate.Field{Name: "subject", Rule: validate.RuleSubject},
		validate.Field{Name: "content", Rule: validate.RuleContent},
		validate.Field{Name: "projectId", Rule: validate.RuleID},
		validate.Field{Name: "comments", Rule: validate.RuleComments},
	)
)

type Service struct {
	updates  store.UpdateStore
	accounts store.AccountStore
	projects store.ProjectStore
	cache    cache.Cache
	coord    *coordinator.Coordinator
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(updates store.UpdateStore, accounts store.AccountStore, projects store.ProjectStore, c cache.Cache, coord *coordinator.Coordinator, log zerolog.Logger) *Service {
	return &Service{
		updates:  updates,
		accounts: accounts,
		projects: projects,
		cache:    c,
		coord:    coord,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Update, error) {
	return cache.ReadList(ctx, s.cache, s.log, cache.KeyAllUpdates, cache.ListTTL,
		func(ctx context.Context) ([]domain.Update, error) {
			updates, err := s.updates.FindAll(ctx)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to list updates")
			}
			return resolveAll(updates), nil
		})
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Update, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Update{}, err
	}
	return cache.ReadOne(ctx, s.cache, s.log, cache.UpdateKey(oid.Hex()),
		func(ctx context.Context) (domain.Update, error) {
			update, err := s.updates.FindByID(ctx, oid)
			if err != nil {
				return domain.Update{}, translate(err, "update")
			}
			return resolve(update), nil
		})
}

func (s *Service) BySubject(ctx context.Context, subject string) ([]domain.Update, error) {
	if err := validate.Check("subject", validate.RuleSubject, subject); err != nil {
		return nil, err
	}
	sub, _ := domain.ParseSubject(subject)
	return cache.ReadList(ctx, s.cache, s.log, cache.SubjectKey(sub), cache.ListTTL,
		func(ctx context.Context) ([]domain.Update, error) {
			updates, err := s.updates.BySubject(ctx, sub)
			if err != nil {
				return nil, domerrors.Wrap(err, domerrors.CodeInternal, "failed to filter updates")
			}
			return resolveAll(updates), nil
		})
}

// Create validates the field bag, resolves both foreign references, and
// persists the update with its posted date stamped server-side.
func (s *Service) Create(ctx context.Context, args validate.Args) (domain.Update, error) {
	if err := createSchema.Check(args); err != nil {
		return domain.Update{}, err
	}

	posterID, err := s.resolvePoster(ctx, args)
	if err != nil {
		return domain.Update{}, err
	}
	projectID, err := s.resolveProject(ctx, args)
	if err != nil {
		return domain.Update{}, err
	}

	subjectRaw, _ := args.String("subject")
	subject, _ := domain.ParseSubject(subjectRaw)
	content, _ := args.String("content")

	update := domain.Update{
		PosterID:   posterID,
		Subject:    subject,
		Content:    content,
		ProjectID:  projectID,
		PostedDate: s.now(),
	}

	inserted, err := s.updates.Insert(ctx, update)
	if err != nil {
		return domain.Update{}, translateWrite(err, "update could not be added")
	}
	resolved := resolve(inserted)
	return resolved, s.committed(ctx, coordinator.ActionCreate, resolved, cache.SubjectKey(resolved.Subject))
}

// Edit applies supplied fields over the stored update. The posted date is
// immutable and absent from the allow-list.
func (s *Service) Edit(ctx context.Context, id string, args validate.Args) (domain.Update, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Update{}, err
	}
	if err := editSchema.Check(args); err != nil {
		return domain.Update{}, err
	}

	current, err := s.updates.FindByID(ctx, oid)
	if err != nil {
		return domain.Update{}, translate(err, "update")
	}
	previousSubject := current.Subject

	if args.Has("posterId") {
		posterID, err := s.resolvePoster(ctx, args)
		if err != nil {
			return domain.Update{}, err
		}
		current.PosterID = posterID
	}
	if args.Has("projectId") {
		projectID, err := s.resolveProject(ctx, args)
		if err != nil {
			return domain.Update{}, err
		}
		current.ProjectID = projectID
	}
	if v, ok := args.String("subject"); ok {
		current.Subject, _ = domain.ParseSubject(v)
	}
	if v, ok := args.String("content"); ok {
		current.Content = v
	}
	if args.Has("comments") {
		comments, err := parseComments(args)
		if err != nil {
			return domain.Update{}, err
		}
		current.Comments = comments
	}

	if err := s.updates.Update(ctx, oid, current); err != nil {
		return domain.Update{}, translateWrite(err, "update could not be updated")
	}
	resolved := resolve(current)
	extra := []string{cache.SubjectKey(resolved.Subject)}
	if previousSubject != resolved.Subject {
		extra = append(extra, cache.SubjectKey(previousSubject))
	}
	return resolved, s.committed(ctx, coordinator.ActionEdit, resolved, extra...)
}

func (s *Service) Remove(ctx context.Context, id string) (domain.Update, error) {
	oid, err := checkID(id)
	if err != nil {
		return domain.Update{}, err
	}
	removed, err := s.updates.FindByID(ctx, oid)
	if err != nil {
		return domain.Update{}, translate(err, "update")
	}
	if err := s.updates.Delete(ctx, oid); err != nil {
		return domain.Update{}, translateWrite(err, "update could not be deleted")
	}
	return resolve(removed), s.coord.Committed(ctx, coordinator.KindUpdate, coordinator.ActionRemove, oid, nil, cache.SubjectKey(removed.Subject))
}

func (s *Service) resolvePoster(ctx context.Context, args validate.Args) (primitive.ObjectID, error) {
	idStr, _ := args.String("posterId")
	oid, err := validate.ParseID("posterId", idStr)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.accounts.FindByID(ctx, oid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return primitive.NilObjectID, domerrors.NewField(domerrors.CodeNotFound, "posterId", "references an account that does not exist")
		}
		return primitive.NilObjectID, domerrors.Wrap(err, domerrors.CodeInternal, "failed to resolve poster")
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

func parseComments(args validate.Args) ([]domain.Comment, error) {
	raw, ok := args["comments"].([]any)
	if !ok {
		return nil, domerrors.NewField(domerrors.CodeInvalidArgument, "comments", "is not a valid array")
	}
	out := make([]domain.Comment, 0, len(raw))
	for _, elem := range raw {
		obj, _ := elem.(map[string]any)
		text, _ := obj["text"].(string)
		comment := domain.Comment{Text: strings.TrimSpace(text), PostedAt: time.Now()}
		if idStr, ok := obj["commenterId"].(string); ok {
			oid, err := validate.ParseID("comments", idStr)
			if err != nil {
				return nil, err
			}
			comment.CommenterID = oid
		}
		out = append(out, comment)
	}
	return out, nil
}

// resolve recomputes the comment count; it is always the live length of the
// comment list, never a stored number.
func resolve(update domain.Update) domain.Update {
	update.NumOfComments = len(update.Comments)
	return update
}

func resolveAll(updates []domain.Update) []domain.Update {
	out := make([]domain.Update, 0, len(updates))
	for _, update := range updates {
		out = append(out, resolve(update))
	}
	return out
}

func (s *Service) committed(ctx context.Context, action coordinator.Action, update domain.Update, extra ...string) error {
	payload, _ := json.Marshal(update)
	return s.coord.Committed(ctx, coordinator.KindUpdate, action, update.ID, payload, extra...)
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
