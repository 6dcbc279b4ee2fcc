package users

import (
	"context"
)

// Repository is the account store. Implementations must enforce email
// uniqueness themselves: Insert returns common.ErrConflict for a duplicate
// email and leaves existing data untouched. Lookups of absent users return
// common.ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, user *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
