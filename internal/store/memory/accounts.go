// Package memory provides in-process store implementations used by tests and
// single-node development. They intentionally favor clarity over performance;
// identifiers are assigned on insert just as the mongo stores do.
package memory

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
	"scholarhub/pkg/platform/sentinel"
)

type AccountStore struct {
	mu       sync.RWMutex
	accounts map[primitive.ObjectID]domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[primitive.ObjectID]domain.Account)}
}

func (s *AccountStore) Insert(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.ID = primitive.NewObjectID()
	s.accounts[account.ID] = account
	return account, nil
}

func (s *AccountStore) FindByID(_ context.Context, id primitive.ObjectID) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if account, ok := s.accounts[id]; ok {
		return account, nil
	}
	return domain.Account{}, sentinel.ErrNotFound
}

func (s *AccountStore) FindByEmail(_ context.Context, email string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return domain.Account{}, sentinel.ErrNotFound
}

func (s *AccountStore) FindAll(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		out = append(out, account)
	}
	return out, nil
}

func (s *AccountStore) SearchByName(_ context.Context, term string) ([]domain.Account, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Account{}
	for _, account := range s.accounts {
		full := strings.ToLower(account.FirstName + " " + account.LastName)
		if strings.Contains(full, needle) {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *AccountStore) Update(_ context.Context, id primitive.ObjectID, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return sentinel.ErrNoEffect
	}
	account.ID = id
	s.accounts[id] = account
	return nil
}

func (s *AccountStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return sentinel.ErrNoEffect
	}
	delete(s.accounts, id)
	return nil
}
