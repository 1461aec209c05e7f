package model

import (
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// caseRoles is the whitelist of non-admin roles permitted to act on cases
// at all. Unrecognized roles are denied before any finer check runs.
var caseRoles = []types.Role{
	types.RoleInvestigator,
}

// Case is an investigative case owned by one organization
type Case struct {
	ID               types.CaseID     `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Status           types.CaseStatus `json:"status"`
	Jurisdiction     string           `json:"jurisdiction,omitempty"`
	CaseType         string           `json:"caseType,omitempty"`
	Organization     types.OrgMSP     `json:"organization"`
	InvestigatorOrgs []types.OrgMSP   `json:"investigatorOrgs,omitempty"`
	PolicyID         types.PolicyID   `json:"policyId,omitempty"`
	CreatedBy        string           `json:"createdBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt,omitempty"`
}

// Validate checks the case is well formed
func (c *Case) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return err
	}
	if c.Title == "" {
		return goerr.Wrap(types.ErrValidation, "case title is required", goerr.V(types.CaseIDKey, c.ID))
	}
	if err := c.Organization.Validate(); err != nil {
		return err
	}
	if err := c.Status.Validate(); err != nil {
		return err
	}
	for _, org := range c.InvestigatorOrgs {
		if err := org.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CanAccess decides whether sub may act on the case by role semantics alone.
// Rules run in order, first match wins: admin always passes; a subject from
// another organization never passes (cross-org access is only ever granted by
// an explicit policy, evaluated separately); the role must be whitelisted for
// case work; an investigator must additionally appear in the case's
// investigator-organization list when the case tracks one.
func (c *Case) CanAccess(sub *Subject) bool {
	if c == nil || sub == nil {
		return false
	}
	if sub.IsAdmin() {
		return true
	}
	if sub.Organization != c.Organization {
		return false
	}
	if !slices.Contains(caseRoles, sub.Role) {
		return false
	}
	if sub.Role == types.RoleInvestigator && len(c.InvestigatorOrgs) > 0 {
		return slices.Contains(c.InvestigatorOrgs, sub.Organization)
	}
	return true
}

// CanCreateRecordFor decides whether sub may create a record owned by
// ownerOrg. Admins may create for any organization, investigators only for
// their own, and every other role is denied.
func CanCreateRecordFor(ownerOrg types.OrgMSP, sub *Subject) bool {
	switch {
	case sub == nil:
		return false
	case sub.IsAdmin():
		return true
	case sub.Role == types.RoleInvestigator:
		return sub.Organization == ownerOrg
	default:
		return false
	}
}

// CaseFilter restricts a case listing. Zero values match everything.
type CaseFilter struct {
	Status       types.CaseStatus
	Jurisdiction string
}

// Match reports whether the case satisfies the filter
func (f *CaseFilter) Match(c *Case) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Jurisdiction != "" && c.Jurisdiction != f.Jurisdiction {
		return false
	}
	return true
}
