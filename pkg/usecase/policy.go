package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// PolicyUseCase creates and reads access policies on the ledger
type PolicyUseCase struct {
	ledger interfaces.Ledger
}

// NewPolicyUseCase creates a PolicyUseCase
func NewPolicyUseCase(ledger interfaces.Ledger) *PolicyUseCase {
	return &PolicyUseCase{ledger: ledger}
}

// CreatePolicyInput accepts both policy encodings at the boundary: the
// canonical rule list, or the legacy flat allow-lists which are lifted into
// a single-rule-per-org form. Supplying both is rejected.
type CreatePolicyInput struct {
	PolicyID     string
	Categories   []string
	Rules        []model.Rule
	AllowedOrgs  []string
	AllowedRoles []string
}

// Create validates, normalizes and commits a new policy as the caller's
// organization. Conflicting allow/deny construction fails here, never at
// evaluation time. The created policy is immutable.
func (uc *PolicyUseCase) Create(ctx context.Context, sub *model.Subject, input *CreatePolicyInput) (*model.Policy, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, goerr.Wrap(types.ErrValidation, "input is required")
	}

	flat := len(input.AllowedOrgs) > 0 || len(input.AllowedRoles) > 0
	if flat && len(input.Rules) > 0 {
		return nil, goerr.Wrap(types.ErrValidation, "policy must use either rules or allow-lists, not both")
	}

	id := types.PolicyID(strings.TrimSpace(input.PolicyID))
	if id == "" {
		id = types.NewPolicyID()
	}

	var policy *model.Policy
	if flat {
		orgs, err := normalizeOrgs(input.AllowedOrgs)
		if err != nil {
			return nil, err
		}
		roles, err := normalizeRoles(input.AllowedRoles)
		if err != nil {
			return nil, err
		}
		policy = model.NewPolicyFromAllowLists(id, orgs, roles)
	} else {
		policy = &model.Policy{ID: id, Rules: normalizeRules(input.Rules)}
	}

	policy.Categories = input.Categories
	policy.CreatedBy = sub.Organization
	policy.CreatedAt = time.Now().UTC()

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledger.CreatePolicy(ctx, sub.Organization, policy); err != nil {
		return nil, goerr.Wrap(err, "failed to commit policy", goerr.V(types.PolicyIDKey, policy.ID))
	}

	logging.From(ctx).Info("policy created", "policy_id", policy.ID, "created_by", policy.CreatedBy)
	return policy, nil
}

// Get returns one policy by ID
func (uc *PolicyUseCase) Get(ctx context.Context, sub *model.Subject, id types.PolicyID) (*model.Policy, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	policy, err := uc.ledger.QueryPolicy(ctx, sub.Organization, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query policy", goerr.V(types.PolicyIDKey, id))
	}
	return policy, nil
}

// List returns all policies visible to the caller's organization
func (uc *PolicyUseCase) List(ctx context.Context, sub *model.Subject) ([]*model.Policy, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	policies, err := uc.ledger.QueryPolicies(ctx, sub.Organization)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query policies")
	}
	return policies, nil
}

func normalizeOrgs(raw []string) ([]types.OrgMSP, error) {
	orgs := make([]types.OrgMSP, 0, len(raw))
	for _, v := range raw {
		org := types.NormalizeOrgMSP(v)
		if err := org.Validate(); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

func normalizeRoles(raw []string) ([]types.Role, error) {
	roles := make([]types.Role, 0, len(raw))
	for _, v := range raw {
		role := types.NormalizeRole(v)
		if err := role.Validate(); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func normalizeRules(rules []model.Rule) []model.Rule {
	normalized := make([]model.Rule, len(rules))
	for i, r := range rules {
		normalized[i] = model.Rule{
			Allow: normalizeCondition(r.Allow),
			Deny:  normalizeCondition(r.Deny),
		}
	}
	return normalized
}

func normalizeCondition(c *model.Condition) *model.Condition {
	if c == nil {
		return nil
	}
	out := &model.Condition{
		Org:  types.NormalizeOrgMSP(string(c.Org)),
		User: c.User,
	}
	for _, role := range c.Role {
		out.Role = append(out.Role, types.NormalizeRole(string(role)))
	}
	return out
}
