package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// InMemoryRepository keeps tasks in a map with a store-assigned sequential
// id, mirroring the BIGSERIAL column of the Postgres variant.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]Task
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[int64]Task)}
}

func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Task, 0)
	for _, task := range r.byID {
		if task.UserID == userID {
			result = append(result, task)
		}
	}

	// newest first, matching the Postgres ordering
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *task
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) SetCompleted(ctx context.Context, userID string, id int64, completed bool) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok || stored.UserID != userID {
		return nil, common.ErrorNotFound
	}

	stored.Completed = completed
	r.byID[id] = stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok || stored.UserID != userID {
		return common.ErrorNotFound
	}

	delete(r.byID, id)
	return nil
}
