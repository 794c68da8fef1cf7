package tasks

import "time"

// Task is a single to-do item. The id is assigned by the store; UserID ties
// the row to its owner and scopes every read and write.
type Task struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
