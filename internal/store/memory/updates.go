package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
	"scholarhub/pkg/platform/sentinel"
)

type UpdateStore struct {
	mu      sync.RWMutex
	updates map[primitive.ObjectID]domain.Update
}

func NewUpdateStore() *UpdateStore {
	return &UpdateStore{updates: make(map[primitive.ObjectID]domain.Update)}
}

func (s *UpdateStore) Insert(_ context.Context, update domain.Update) (domain.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update.ID = primitive.NewObjectID()
	s.updates[update.ID] = update
	return update, nil
}

func (s *UpdateStore) FindByID(_ context.Context, id primitive.ObjectID) (domain.Update, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if update, ok := s.updates[id]; ok {
		return update, nil
	}
	return domain.Update{}, sentinel.ErrNotFound
}

func (s *UpdateStore) FindAll(_ context.Context) ([]domain.Update, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Update, 0, len(s.updates))
	for _, update := range s.updates {
		out = append(out, update)
	}
	return out, nil
}

func (s *UpdateStore) BySubject(_ context.Context, subject domain.Subject) ([]domain.Update, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Update{}
	for _, update := range s.updates {
		if update.Subject == subject {
			out = append(out, update)
		}
	}
	return out, nil
}

func (s *UpdateStore) CountByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, update := range s.updates {
		if update.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (s *UpdateStore) DeleteByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, update := range s.updates {
		if update.ProjectID == projectID {
			delete(s.updates, id)
			n++
		}
	}
	return n, nil
}

func (s *UpdateStore) Update(_ context.Context, id primitive.ObjectID, update domain.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.updates[id]; !ok {
		return sentinel.ErrNoEffect
	}
	update.ID = id
	s.updates[id] = update
	return nil
}

func (s *UpdateStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.updates[id]; !ok {
		return sentinel.ErrNoEffect
	}
	delete(s.updates, id)
	return nil
}
