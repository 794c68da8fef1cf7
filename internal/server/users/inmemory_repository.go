package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// InMemoryRepository keeps accounts in a map. The mutex covers the whole
// check+insert, giving the same exactly-one-winner guarantee under
// concurrent registration that the Postgres UNIQUE constraint provides.
type InMemoryRepository struct {
	mu      sync.Mutex
	byEmail map[string]User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byEmail: make(map[string]User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorEmailExists
	}

	stored := *user
	stored.CreatedAt = time.Now()
	r.byEmail[stored.Email] = stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	result := stored
	return &result, nil
}
