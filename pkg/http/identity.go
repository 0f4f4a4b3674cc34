package http

import (
	"net/http"
	"strings"

	apperrors "roomly/pkg/errors"
)

// Identity headers set by the authenticating proxy in front of this service.
// The service trusts them; authentication itself happens upstream.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// ExtractIdentity reads the caller identity headers. The user id is
// mandatory for every mutating operation; the role defaults to employee.
func ExtractIdentity(r *http.Request) (Identity, error) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if userID == "" {
		return Identity{}, apperrors.Unauthorized("User ID is required. Please provide the " + HeaderUserID + " header")
	}

	role := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
	if role == "" {
		role = RoleEmployee
	}

	return Identity{UserID: userID, Role: role}, nil
}
