package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
	"scholarhub/pkg/platform/sentinel"
)

type ApplicationStore struct {
	mu   sync.RWMutex
	apps map[primitive.ObjectID]domain.Application
}

func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{apps: make(map[primitive.ObjectID]domain.Application)}
}

func (s *ApplicationStore) Insert(_ context.Context, app domain.Application) (domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app.ID = primitive.NewObjectID()
	s.apps[app.ID] = app
	return app, nil
}

func (s *ApplicationStore) FindByID(_ context.Context, id primitive.ObjectID) (domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.apps[id]; ok {
		return app, nil
	}
	return domain.Application{}, sentinel.ErrNotFound
}

func (s *ApplicationStore) FindAll(_ context.Context) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Application, 0, len(s.apps))
	for _, app := range s.apps {
		out = append(out, app)
	}
	return out, nil
}

func (s *ApplicationStore) FindByApplicant(_ context.Context, accountID primitive.ObjectID) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Application{}
	for _, app := range s.apps {
		if app.ApplicantID == accountID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *ApplicationStore) CountByApplicant(_ context.Context, accountID primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, app := range s.apps {
		if app.ApplicantID == accountID {
			n++
		}
	}
	return n, nil
}

func (s *ApplicationStore) CountByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, app := range s.apps {
		if app.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (s *ApplicationStore) DeleteByApplicant(_ context.Context, accountID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, app := range s.apps {
		if app.ApplicantID == accountID {
			delete(s.apps, id)
			n++
		}
	}
	return n, nil
}

func (s *ApplicationStore) DeleteByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, app := range s.apps {
		if app.ProjectID == projectID {
			delete(s.apps, id)
			n++
		}
	}
	return n, nil
}

func (s *ApplicationStore) Update(_ context.Context, id primitive.ObjectID, app domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return sentinel.ErrNoEffect
	}
	app.ID = id
	s.apps[id] = app
	return nil
}

func (s *ApplicationStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return sentinel.ErrNoEffect
	}
	delete(s.apps, id)
	return nil
}
