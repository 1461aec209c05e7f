package model

import (
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// Condition restricts a rule to subjects with a matching organization, one of
// a set of roles, or one of a set of user IDs. An absent field is a wildcard.
type Condition struct {
	Org  types.OrgMSP `json:"org,omitempty"`
	Role []types.Role `json:"role,omitempty"`
	User []string     `json:"user,omitempty"`
}

// Matches reports whether every condition the set specifies holds for sub
func (c *Condition) Matches(sub *Subject) bool {
	if c == nil {
		return true
	}
	if c.Org != "" && c.Org != sub.Organization {
		return false
	}
	if len(c.Role) > 0 && !slices.Contains(c.Role, sub.Role) {
		return false
	}
	if len(c.User) > 0 && !slices.Contains(c.User, sub.UserID) {
		return false
	}
	return true
}

func (c *Condition) validate() error {
	if c == nil {
		return nil
	}
	if c.Org != "" {
		if err := c.Org.Validate(); err != nil {
			return err
		}
	}
	for _, r := range c.Role {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Rule pairs an optional allow condition with an optional deny condition.
// An absent allow condition is a wildcard that matches every subject.
type Rule struct {
	Allow *Condition `json:"allow,omitempty"`
	Deny  *Condition `json:"deny,omitempty"`
}

// Validate rejects rules whose allow and deny sets name the same
// organization, role or user. Such a policy would be ambiguous and must fail
// at construction rather than at evaluation.
func (r *Rule) Validate() error {
	if err := r.Allow.validate(); err != nil {
		return err
	}
	if err := r.Deny.validate(); err != nil {
		return err
	}
	if r.Allow == nil || r.Deny == nil {
		return nil
	}
	if r.Allow.Org != "" && r.Allow.Org == r.Deny.Org {
		return goerr.Wrap(types.ErrValidation, "rule allows and denies the same organization", goerr.V(types.OrgKey, r.Allow.Org))
	}
	for _, role := range r.Allow.Role {
		if slices.Contains(r.Deny.Role, role) {
			return goerr.Wrap(types.ErrValidation, "rule allows and denies the same role", goerr.V(types.RoleKey, role))
		}
	}
	for _, user := range r.Allow.User {
		if slices.Contains(r.Deny.User, user) {
			return goerr.Wrap(types.ErrValidation, "rule allows and denies the same user")
		}
	}
	return nil
}

// Policy is a named access-control document attached to a record or case.
// It is created once and immutable afterwards. A policy with zero rules
// denies everyone except administrators.
type Policy struct {
	ID         types.PolicyID `json:"policyId"`
	Categories []string       `json:"categories,omitempty"`
	Rules      []Rule         `json:"rules"`
	CreatedBy  types.OrgMSP   `json:"createdBy,omitempty"`
	CreatedAt  time.Time      `json:"createdAt,omitempty"`
}

// NewPolicyFromAllowLists lifts the legacy flat allow-list encoding into the
// canonical rule form: one allow rule per organization, each carrying the
// full role list. Empty lists are wildcards, so lifting both-empty input
// yields a zero-rule policy that only administrators can pass.
func NewPolicyFromAllowLists(id types.PolicyID, orgs []types.OrgMSP, roles []types.Role) *Policy {
	p := &Policy{ID: id}
	switch {
	case len(orgs) == 0 && len(roles) == 0:
		// zero rules: admin-only by the evaluation invariant
	case len(orgs) == 0:
		p.Rules = []Rule{{Allow: &Condition{Role: roles}}}
	default:
		for _, org := range orgs {
			p.Rules = append(p.Rules, Rule{Allow: &Condition{Org: org, Role: roles}})
		}
	}
	return p
}

// Validate checks the policy is well formed and free of allow/deny conflicts
func (p *Policy) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return err
	}
	for i := range p.Rules {
		if err := p.Rules[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid policy rule", goerr.V(types.PolicyIDKey, p.ID))
		}
	}
	return nil
}

// Decision is the outcome of a policy evaluation
type Decision struct {
	Allowed bool `json:"allowed"`
}

// Evaluate applies the policy to a subject. The subject is allowed if at
// least one rule's allow condition matches and no rule's deny condition
// matches. A matching deny in any rule denies the entire policy regardless
// of allow outcomes elsewhere. Evaluate does not implement the admin bypass;
// use Authorize for access decisions.
func (p *Policy) Evaluate(sub *Subject) Decision {
	if p == nil || sub == nil {
		return Decision{}
	}
	var allowed bool
	for i := range p.Rules {
		r := &p.Rules[i]
		if r.Deny != nil && r.Deny.Matches(sub) {
			return Decision{}
		}
		if r.Allow.Matches(sub) {
			allowed = true
		}
	}
	return Decision{Allowed: allowed}
}
