package types

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role uint8

const (
	RoleMember Role = iota
	RoleModerator
	RoleAdmin
	RoleInfluencer
	RoleGovernment
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleMember, RoleModerator, RoleAdmin, RoleInfluencer, RoleGovernment}

// String returns the lowercase name of the role.
func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	case RoleInfluencer:
		return "influencer"
	case RoleGovernment:
		return "government"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin, RoleInfluencer, RoleGovernment:
		return true
	}
	return false
}

// CanRespondToComplaints reports whether accounts with this role may attach
// an official response to a complaint post.
func (r Role) CanRespondToComplaints() bool {
	switch r {
	case RoleGovernment:
		return true
	case RoleMember, RoleModerator, RoleAdmin, RoleInfluencer:
		return false
	}
	return false
}

// ParseRole parses the lowercase name produced by String.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Roles {
		if r.String() == name {
			return r, nil
		}
	}
	return RoleMember, fmt.Errorf("unknown role %q", s)
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText mirrors MarshalText.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
