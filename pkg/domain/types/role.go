package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Role represents the role of an authenticated subject
type Role string

const (
	RoleInvestigator Role = "investigator"
	RoleAdmin        Role = "admin"
	RoleForensics    Role = "forensics"
	RoleJudge        Role = "judge"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleInvestigator,
		RoleAdmin,
		RoleForensics,
		RoleJudge,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleInvestigator, RoleAdmin, RoleForensics, RoleJudge:
		return true
	default:
		return false
	}
}

// Validate checks if the role is a known role
func (r Role) Validate() error {
	if r == "" {
		return goerr.Wrap(ErrValidation, "role is required")
	}
	if !r.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown role", goerr.V(RoleKey, r))
	}
	return nil
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// NormalizeRole canonicalizes a client-supplied role token by loose matching
// against the known roles. Unmatched input is returned trimmed but unchanged,
// the same as every other category.
func NormalizeRole(raw string) Role {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, r := range AllRoles() {
		if looseEquals(string(r), v) {
			return r
		}
	}
	return Role(v)
}
