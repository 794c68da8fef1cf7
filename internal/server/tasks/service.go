package tasks

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// Service owns the task business rules on top of a Repository. The caller's
// authenticated account id is threaded into every repository call; the
// service itself never decides ownership.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]Task, error) {
	result, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Create adds a task for the given owner. The title must be non-empty after
// trimming, else common.ErrorInvalidInput. New tasks start uncompleted.
func (s *Service) Create(ctx context.Context, userID string, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrorInvalidInput
	}

	task := &Task{
		UserID:    userID,
		Title:     title,
		Completed: false,
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return task, nil
}

// SetCompleted flips the completion flag of one of the owner's tasks.
// A task that does not exist, or belongs to another account, yields
// common.ErrorNotFound.
func (s *Service) SetCompleted(ctx context.Context, userID string, id int64, completed bool) (*Task, error) {
	if id <= 0 {
		return nil, common.ErrorInvalidInput
	}

	task, err := s.repo.SetCompleted(ctx, userID, id, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return task, nil
}

// Delete removes one of the owner's tasks, with the same not-found
// semantics as SetCompleted.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if id <= 0 {
		return common.ErrorInvalidInput
	}

	err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
