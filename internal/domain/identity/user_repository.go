package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists admin and operator accounts. Find methods
// return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// UserFilter narrows FindAll. Keyword matches username or display name.
type UserFilter struct {
	Keyword  string
	Status   *UserStatus
	Role     *Role
	Page     int
	PageSize int
}
