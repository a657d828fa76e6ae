package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "s3cret-pass", RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 || user.Role != RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Register(ctx, "alice", "another-pass", RoleUser); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "short", RoleUser); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}

	authed, err := svc.Authenticate(ctx, "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, authed.ID)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestDeleteKeepsLastAdmin(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	admin, err := svc.Register(ctx, "root", "rootpass", RoleAdmin)
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	regular, err := svc.Register(ctx, "carol", "carolpass", RoleUser)
	if err != nil {
		t.Fatalf("register user: %v", err)
	}

	// The sole admin cannot be removed.
	if err := svc.Delete(ctx, admin.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if _, err := svc.Repo.GetByID(ctx, admin.ID); err != nil {
		t.Fatalf("admin should still exist: %v", err)
	}

	// A second admin makes the first deletable.
	second, err := svc.Register(ctx, "root2", "root2pass", RoleAdmin)
	if err != nil {
		t.Fatalf("register second admin: %v", err)
	}
	if err := svc.Delete(ctx, admin.ID); err != nil {
		t.Fatalf("delete first admin with another present: %v", err)
	}
	if err := svc.Delete(ctx, second.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin for the remaining admin, got %v", err)
	}

	// Regular users delete freely.
	if err := svc.Delete(ctx, regular.ID); err != nil {
		t.Fatalf("delete regular user: %v", err)
	}
	if err := svc.Delete(ctx, regular.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestEnsureAdminSeedsOnlyOnce(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "bootpass1"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "admin", "bootpass1"); err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].Role != RoleAdmin {
		t.Fatalf("expected exactly one seeded admin, got %+v", all)
	}

	if _, err := svc.Authenticate(ctx, "admin", "bootpass1"); err != nil {
		t.Fatalf("seeded admin should authenticate: %v", err)
	}
}
