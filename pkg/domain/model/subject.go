package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// Subject is the authenticated caller of a request. It is produced by the
// authenticator collaborator and immutable for the duration of the request.
type Subject struct {
	Role         types.Role   `json:"role"`
	Organization types.OrgMSP `json:"organization"`
	UserID       string       `json:"userId"`
}

// Validate checks the subject carries a known role and organization
func (s *Subject) Validate() error {
	if s == nil {
		return goerr.Wrap(types.ErrValidation, "subject is required")
	}
	if err := s.Role.Validate(); err != nil {
		return err
	}
	if err := s.Organization.Validate(); err != nil {
		return err
	}
	return nil
}

// IsAdmin reports whether the subject holds the distinguished admin role.
// This is the single capability check behind the admin bypass: every gate
// and policy evaluation entry point consults it instead of re-implementing
// its own role comparison.
func (s *Subject) IsAdmin() bool {
	return s != nil && s.Role == types.RoleAdmin
}
