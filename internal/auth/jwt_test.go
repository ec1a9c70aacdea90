package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dkrasnove/bloghub/internal/auth"
	"github.com/dkrasnove/bloghub/internal/domain/user"
)

func TestIssueAndAuthenticate(t *testing.T) {
	m := auth.NewManager("test-secret", time.Minute)

	token, err := m.Issue(42, "alice", user.RoleWriter)

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if !strings.HasPrefix(token, "Bearer ") {
		t.Fatalf("issued credential should carry the scheme marker, got %q", token)
	}

	caller, err := m.Authenticate(token)

	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if caller.UserID != 42 {
		t.Fatalf("got userID %d, want 42", caller.UserID)
	}
	if caller.Username != "alice" {
		t.Fatalf("got username %q, want alice", caller.Username)
	}
	if caller.Role != user.RoleWriter {
		t.Fatalf("got role %q, want %q", caller.Role, user.RoleWriter)
	}
}

func TestAuthenticateRawTokenWithoutScheme(t *testing.T) {
	m := auth.NewManager("test-secret", time.Minute)

	token, err := m.Issue(7, "bob", user.RoleModerator)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	raw := strings.TrimPrefix(token, "Bearer ")

	caller, err := m.Authenticate(raw)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if caller.UserID != 7 || caller.Role != user.RoleModerator {
		t.Fatalf("unexpected identity: %+v", caller)
	}
}

func TestAuthenticateFailsClosed(t *testing.T) {
	m := auth.NewManager("test-secret", time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "scheme only", token: "Bearer "},
		{name: "garbage", token: "Bearer not.a.jwt"},
		{name: "truncated", token: "Bearer eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Authenticate(tc.token)

			if err == nil {
				t.Fatal("expected authentication to fail")
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute)

	token, err := m.Issue(1, "carol", user.RoleWriter)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = m.Authenticate(token)

	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-one", time.Minute)
	verifier := auth.NewManager("secret-two", time.Minute)

	token, err := issuer.Issue(1, "dave", user.RoleWriter)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = verifier.Authenticate(token)

	if err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}
