package users

import "context"

// Repo defines persistence operations for user accounts.
type Repo interface {
	Create(ctx context.Context, user User) (int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	DeleteByID(ctx context.Context, id int64) error
	CountByRole(ctx context.Context, role string) (int, error)
}
