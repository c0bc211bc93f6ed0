package domain

import (
	"strings"
	"time"
)

const (
	RoleMaster = "MASTER"
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
	RoleUser   = "USER"
)

// MasterSubjectID is the sentinel subject reserved for the configuration-held
// master identity. It is never assigned to a stored user.
const MasterSubjectID int64 = 0

// NormalizeRole upper-cases a stored or claimed role string. An empty role
// defaults to USER.
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	if r == "" {
		return RoleUser
	}
	return r
}

// AssignableRoles lists the roles an admin may store on a user record.
// MASTER is configuration-held and deliberately not assignable.
var AssignableRoles = []string{RoleAdmin, RoleClient, RoleUser}

// AssignableRole reports whether role may be stored on a user record.
func AssignableRole(role string) bool {
	r := NormalizeRole(role)
	for _, a := range AssignableRoles {
		if r == a {
			return true
		}
	}
	return false
}

// User models an authenticated actor. Either Email or Username identifies it;
// ClientID links platform users to the tenant they operate for.
type User struct {
	ID           uint            `json:"id"`
	Email        string          `json:"email,omitempty"`
	Username     string          `json:"username,omitempty"`
	PasswordHash string          `json:"-"`
	Role         string          `json:"role"`
	ClientID     *uint           `json:"client_id,omitempty"`
	Permissions  map[string]bool `json:"permissions,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Identity returns the user's login identity, preferring email.
func (u *User) Identity() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}
