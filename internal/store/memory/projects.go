package memory

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
	"scholarhub/pkg/platform/sentinel"
)

type ProjectStore struct {
	mu       sync.RWMutex
	projects map[primitive.ObjectID]domain.Project
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[primitive.ObjectID]domain.Project)}
}

func (s *ProjectStore) Insert(_ context.Context, project domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = primitive.NewObjectID()
	s.projects[project.ID] = project
	return project, nil
}

func (s *ProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if project, ok := s.projects[id]; ok {
		return project, nil
	}
	return domain.Project{}, sentinel.ErrNotFound
}

func (s *ProjectStore) FindAll(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, project := range s.projects {
		out = append(out, project)
	}
	return out, nil
}

func (s *ProjectStore) ByDepartment(_ context.Context, dep domain.Department) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Project{}
	for _, project := range s.projects {
		if project.Department == dep {
			out = append(out, project)
		}
	}
	return out, nil
}

func (s *ProjectStore) ByYearRange(_ context.Context, min, max int) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Project{}
	for _, project := range s.projects {
		if project.CreatedYear >= min && project.CreatedYear <= max {
			out = append(out, project)
		}
	}
	return out, nil
}

func (s *ProjectStore) SearchByTitle(_ context.Context, term string) ([]domain.Project, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Project{}
	for _, project := range s.projects {
		if strings.Contains(strings.ToLower(project.Title), needle) {
			out = append(out, project)
		}
	}
	return out, nil
}

func (s *ProjectStore) FindByMember(_ context.Context, accountID primitive.ObjectID) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Project{}
	for _, project := range s.projects {
		if project.HasMember(accountID) {
			out = append(out, project)
		}
	}
	return out, nil
}

func (s *ProjectStore) CountByMember(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	projects, err := s.FindByMember(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return int64(len(projects)), nil
}

func (s *ProjectStore) Update(_ context.Context, id primitive.ObjectID, project domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return sentinel.ErrNoEffect
	}
	project.ID = id
	s.projects[id] = project
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return sentinel.ErrNoEffect
	}
	delete(s.projects, id)
	return nil
}
