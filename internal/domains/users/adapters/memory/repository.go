package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory Repository implementation for tests and
// development without PostgreSQL.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	now := time.Now()
	if clone.ID == 0 {
		for _, existing := range r.users {
			if existing.Email == clone.Email {
				return nil, ports.ErrEmailTaken
			}
			if existing.Username == clone.Username {
				return nil, ports.ErrUsernameTaken
			}
		}
		clone.ID = r.nextID
		r.nextID++
		clone.CreatedAt = now
	} else {
		current, ok := r.users[clone.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		for id, existing := range r.users {
			if id == clone.ID {
				continue
			}
			if existing.Email == clone.Email {
				return nil, ports.ErrEmailTaken
			}
			if existing.Username == clone.Username {
				return nil, ports.ErrUsernameTaken
			}
		}
		clone.CreatedAt = current.CreatedAt
	}
	clone.UpdatedAt = now
	stored := clone
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context, offset, limit int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		clone := *r.users[id]
		users = append(users, &clone)
	}
	if offset >= len(users) {
		return []*domain.User{}, nil
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
