// Package authz holds the single ownership/role decision shared by the
// blog and post registries.
package authz

import (
	"errors"

	"github.com/dkrasnove/bloghub/internal/domain/user"
)

// Identity is the authenticated caller attached to a mutation after token
// verification.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

var ErrForbidden = errors.New("forbidden")

// CanMutate reports whether the caller may mutate an entity owned by
// ownerID. Moderators bypass the ownership check.
func CanMutate(caller Identity, ownerID int64) bool {
	if caller.Role == user.RoleModerator {
		return true
	}
	return caller.UserID == ownerID
}

// CanCreateUnder reports whether the caller may create a child entity under
// a parent owned by ownerID. There is no moderator bypass here: only the
// owner of a blog may publish posts to it.
func CanCreateUnder(caller Identity, ownerID int64) bool {
	return caller.UserID == ownerID
}
