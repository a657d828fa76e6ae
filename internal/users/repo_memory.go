package users

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used when no database is
// configured and in tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	users  []User
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// Create stores a new user.
func (r *MemoryRepo) Create(ctx context.Context, user User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Username == user.Username {
			return 0, ErrUsernameTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return user.ID, nil
}

// GetByID fetches a user by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			return r.users[i], nil
		}
	}
	return User{}, ErrNotFound
}

// GetByUsername fetches a user by username.
func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Username == username {
			return r.users[i], nil
		}
	}
	return User{}, ErrNotFound
}

// List returns all users in creation order.
func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// DeleteByID removes a user.
func (r *MemoryRepo) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CountByRole returns how many users carry the given role.
func (r *MemoryRepo) CountByRole(ctx context.Context, role string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for i := range r.users {
		if r.users[i].Role == role {
			count++
		}
	}
	return count, nil
}

var _ Repo = (*MemoryRepo)(nil)
