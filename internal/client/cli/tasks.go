package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
)

// List prints the user's tasks, newest first.
func (a *App) List(ctx context.Context) error {
	list, err := a.api.ListTasks(ctx)
	if err != nil {
		reportTaskError(err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No tasks yet")
		return nil
	}

	for _, task := range list {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("[%s] %d: %s", mark, task.ID, task.Title))
	}
	return nil
}

// Add creates a task with the given title.
func (a *App) Add(ctx context.Context, title string) error {
	task, err := a.api.AddTask(ctx, title)
	if err != nil {
		if errors.Is(err, client.ErrInvalidInput) {
			log.Printf("Title must not be empty")
			return err
		}
		reportTaskError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Added task %d: %s", task.ID, task.Title))
	return nil
}

// SetDone marks the task with the given id as done or not done.
func (a *App) SetDone(ctx context.Context, arg string, done bool) error {
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}

	task, err := a.api.SetCompleted(ctx, id, done)
	if err != nil {
		reportTaskError(err)
		return err
	}

	state := "not done"
	if task.Completed {
		state = "done"
	}
	printlnFn(fmt.Sprintf("Task %d is now %s", task.ID, state))
	return nil
}

// Remove deletes the task with the given id.
func (a *App) Remove(ctx context.Context, arg string) error {
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		reportTaskError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Deleted task %d", id))
	return nil
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		log.Printf("Invalid task id: %s", arg)
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

func reportTaskError(err error) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		log.Printf("Session expired, please login again")
	case errors.Is(err, client.ErrNotFound):
		log.Printf("No such task")
	case errors.Is(err, client.ErrUnavailable):
		log.Printf("Server unavailable")
	default:
		log.Printf("Request failed: %s", err.Error())
	}
}
