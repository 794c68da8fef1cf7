package tasks

import (
	"context"
)

// Repository persists tasks. Every operation is scoped to an owner:
// SetCompleted and Delete match the row on both id and user id and return
// common.ErrorNotFound when nothing matches, so another account's task is
// indistinguishable from a missing one.
type Repository interface {
	List(ctx context.Context, userID string) ([]Task, error)
	Create(ctx context.Context, task *Task) (*Task, error)
	SetCompleted(ctx context.Context, userID string, id int64, completed bool) (*Task, error)
	Delete(ctx context.Context, userID string, id int64) error
}
