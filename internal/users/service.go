package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"docrepo-backend/internal/shared/telemetry"
)

const minPasswordLength = 6

// Service contains account management logic.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password, role string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, fmt.Errorf("%w: username required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password too short (min %d)", ErrInvalidInput, minPasswordLength)
	}
	if role == "" {
		role = RoleUser
	}
	if !ValidRole(role) {
		return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.ID = id
	return user, nil
}

// Authenticate verifies a username/password pair. It returns ErrInvalidCredentials
// for unknown users and wrong passwords alike.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// Delete removes an account. Deleting the sole remaining admin is refused so the
// system can never lose all administrative access.
func (s *Service) Delete(ctx context.Context, id int64) error {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == RoleAdmin {
		admins, err := s.Repo.CountByRole(ctx, RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	return s.Repo.DeleteByID(ctx, id)
}

// EnsureAdmin seeds an admin account when no users exist yet. With no configured
// password a random one is generated and logged once, forcing a reset on first use.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	existing, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	generated := false
	if password == "" {
		password = randomPassword()
		generated = true
	}
	if _, err := s.Register(ctx, username, password, RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	fields := map[string]any{"username": username}
	if generated {
		fields["password"] = password
	}
	telemetry.Info("users.admin_seeded", fields)
	return nil
}

func randomPassword() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("admin-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
