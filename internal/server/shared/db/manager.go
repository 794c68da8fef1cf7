package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophtasks/internal/server/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Tasks() tasks.Repository
}
