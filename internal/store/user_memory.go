package store

import (
	"context"
	"sync"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
)

// MemoryUserStore keeps users in maps guarded by a single RWMutex. The
// username and email indexes are updated under the same lock as the primary
// map, so uniqueness can never be violated by interleaved writers.
type MemoryUserStore struct {
	mu         sync.RWMutex
	seq        Sequence
	byID       map[int64]*models.User
	byUsername map[string]int64
	byEmail    map[string]int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:       make(map[int64]*models.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
	}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		return apperrors.Conflict("username %q is already registered", user.Username)
	}
	if _, taken := s.byEmail[user.Email]; taken {
		return apperrors.Conflict("email %q is already registered", user.Email)
	}

	user.ID = s.seq.Next()
	s.byID[user.ID] = user.Clone()
	s.byUsername[user.Username] = user.ID
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return user.Clone(), nil
}

func (s *MemoryUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return s.byID[id].Clone(), nil
}

func (s *MemoryUserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[user.ID]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	if user.Email != existing.Email {
		if owner, taken := s.byEmail[user.Email]; taken && owner != user.ID {
			return apperrors.Conflict("email %q is already registered", user.Email)
		}
		delete(s.byEmail, existing.Email)
		s.byEmail[user.Email] = user.ID
	}
	s.byID[user.ID] = user.Clone()
	return nil
}
