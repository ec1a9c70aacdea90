package users_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dkrasnove/bloghub/internal/domain/user"
	"github.com/dkrasnove/bloghub/internal/repo/memory"
	"github.com/dkrasnove/bloghub/internal/security"
	"github.com/dkrasnove/bloghub/internal/users"
	"golang.org/x/crypto/bcrypt"
)

type fakeIssuer struct {
	issueFn func(userID int64, username, role string) (string, error)
}

func (f *fakeIssuer) Issue(userID int64, username, role string) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(userID, username, role)
	}
	return fmt.Sprintf("Bearer token-for-%d", userID), nil
}

func newService() (*users.Service, *memory.UsersRepo) {
	repo := memory.NewUsersRepo()
	hasher := security.NewHasher(bcrypt.MinCost)

	return users.NewService(repo, hasher, &fakeIssuer{}), repo
}

func TestCreateDefaultsRoleAndHashesPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if u.Role != user.RoleWriter {
		t.Fatalf("got role %q, want default %q", u.Role, user.RoleWriter)
	}

	if u.PasswordHash == "hunter2hunter2" {
		t.Fatal("password must be stored hashed")
	}
}

func TestCreateKeepsExplicitRole(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, user.CreateUserRequest{Username: "mod", Password: "hunter2hunter2", Role: user.RoleModerator})

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if u.Role != user.RoleModerator {
		t.Fatalf("got role %q, want %q", u.Role, user.RoleModerator)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "another-password"})

	if !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
}

func TestFindByUsernameSoftMiss(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.FindByUsername(ctx, "nobody")

	if err != nil {
		t.Fatalf("soft lookup must not fail on absence: %v", err)
	}

	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "alice", password: "hunter2hunter2"},
		{name: "wrong password", username: "alice", password: "wrong", wantErr: user.ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "hunter2hunter2", wantErr: user.ErrInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := svc.Login(ctx, user.LoginRequest{Username: tc.username, Password: tc.password})

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v, want %v", err, tc.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("login failed: %v", err)
			}

			want := fmt.Sprintf("Bearer token-for-%d", created.ID)
			if token != want {
				t.Fatalf("got token %q, want %q", token, want)
			}
		})
	}
}

// The failure must not reveal which factor was wrong.
func TestLoginErrorIsIndistinguishable(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, errMissing := svc.Login(ctx, user.LoginRequest{Username: "ghost", Password: "hunter2hunter2"})
	_, errWrongPw := svc.Login(ctx, user.LoginRequest{Username: "alice", Password: "wrong"})

	if errMissing == nil || errWrongPw == nil {
		t.Fatal("both logins should fail")
	}

	if errMissing.Error() != errWrongPw.Error() {
		t.Fatalf("error messages differ: %q vs %q", errMissing, errWrongPw)
	}
}

func TestRoundTripCreateThenLogin(t *testing.T) {
	repo := memory.NewUsersRepo()
	hasher := security.NewHasher(bcrypt.MinCost)
	svc := users.NewService(repo, hasher, &fakeIssuer{})
	ctx := context.Background()

	_, err := svc.Create(ctx, user.CreateUserRequest{Username: "x", Password: "p-long-enough"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Login(ctx, user.LoginRequest{Username: "x", Password: "p-long-enough"}); err != nil {
		t.Fatalf("login with the signup password should succeed: %v", err)
	}

	if _, err := svc.Login(ctx, user.LoginRequest{Username: "x", Password: "wrong"}); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("login with a wrong password should fail with invalid credentials, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newName := "alice2"
	updated, err := svc.Update(ctx, created.ID, user.UpdateUserRequest{Username: &newName})

	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Username != "alice2" {
		t.Fatalf("got username %q, want alice2", updated.Username)
	}

	if updated.Role != created.Role {
		t.Fatalf("untouched role changed: %q -> %q", created.Role, updated.Role)
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPassword := "a-brand-new-password"
	updated, err := svc.Update(ctx, created.ID, user.UpdateUserRequest{Password: &newPassword})

	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.PasswordHash == newPassword {
		t.Fatal("updated password must be stored hashed")
	}

	if _, err := svc.Login(ctx, user.LoginRequest{Username: "alice", Password: newPassword}); err != nil {
		t.Fatalf("login with the new password should succeed: %v", err)
	}

	if _, err := svc.Login(ctx, user.LoginRequest{Username: "alice", Password: "hunter2hunter2"}); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("login with the old password should fail, got %v", err)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	name := "ghost"
	_, err := svc.Update(ctx, 404, user.UpdateUserRequest{Username: &name})

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRemoveReturnsSnapshot(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateUserRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	removed, err := svc.Remove(ctx, created.ID)

	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if removed.ID != created.ID || removed.Username != "alice" {
		t.Fatalf("snapshot mismatch: %+v", removed)
	}

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
}

func TestRemoveMissingUser(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Remove(ctx, 404)

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
