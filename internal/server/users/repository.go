package users

import (
	"context"
)

// Repository persists accounts. Create must enforce email uniqueness at the
// storage layer and return common.ErrorEmailExists when the email is taken,
// so concurrent registrations cannot both succeed. GetUserByEmail returns
// common.ErrorNotFound for unknown emails.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
