package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// recordDecision decides whether sub may access rec. Records without a
// policy are admin-only. The policy is fetched as the record's owning
// organization, not the requester's. Any failure to resolve the policy is a
// deny; no object-store or transit call happens here.
func recordDecision(ctx context.Context, ledger interfaces.Ledger, sub *model.Subject, rec *model.Record) model.Decision {
	if sub.IsAdmin() {
		return model.Decision{Allowed: true}
	}
	if rec.PolicyID == "" {
		return model.Decision{}
	}
	policy, err := ledger.QueryPolicy(ctx, rec.OwnerOrg, rec.PolicyID)
	if err != nil {
		logging.From(ctx).Debug("could not resolve record policy, denying",
			"record_id", rec.ID, "policy_id", rec.PolicyID, "error", err)
		return model.Decision{}
	}
	return model.Authorize(policy, sub)
}

// caseDecision decides whether sub may access c: role semantics first, then
// the attached policy as the only way to cross organizations.
func caseDecision(ctx context.Context, ledger interfaces.Ledger, sub *model.Subject, c *model.Case) model.Decision {
	if c.CanAccess(sub) {
		return model.Decision{Allowed: true}
	}
	if c.PolicyID == "" {
		return model.Decision{}
	}
	policy, err := ledger.QueryPolicy(ctx, c.Organization, c.PolicyID)
	if err != nil {
		logging.From(ctx).Debug("could not resolve case policy, denying",
			"case_id", c.ID, "policy_id", c.PolicyID, "error", err)
		return model.Decision{}
	}
	return model.Authorize(policy, sub)
}

// AccessUseCase answers access questions without performing the operation
type AccessUseCase struct {
	ledger interfaces.Ledger
}

// NewAccessUseCase creates an AccessUseCase
func NewAccessUseCase(ledger interfaces.Ledger) *AccessUseCase {
	return &AccessUseCase{ledger: ledger}
}

// EvaluateRecord reports whether sub could retrieve the record. It touches
// the ledger only, never the object store or the transit service.
func (uc *AccessUseCase) EvaluateRecord(ctx context.Context, sub *model.Subject, id types.RecordID) (model.Decision, error) {
	if err := sub.Validate(); err != nil {
		return model.Decision{}, err
	}
	if err := id.Validate(); err != nil {
		return model.Decision{}, err
	}

	rec, err := uc.ledger.QueryRecord(ctx, sub.Organization, id, sub.Role)
	if err != nil {
		return model.Decision{}, goerr.Wrap(err, "failed to query record", goerr.V(types.RecordIDKey, id))
	}
	return recordDecision(ctx, uc.ledger, sub, rec), nil
}

// EvaluateCase reports whether sub could act on the case
func (uc *AccessUseCase) EvaluateCase(ctx context.Context, sub *model.Subject, id types.CaseID) (model.Decision, error) {
	if err := sub.Validate(); err != nil {
		return model.Decision{}, err
	}
	if err := id.Validate(); err != nil {
		return model.Decision{}, err
	}

	c, err := uc.ledger.QueryCase(ctx, sub.Organization, id, sub.Role)
	if err != nil {
		return model.Decision{}, goerr.Wrap(err, "failed to query case", goerr.V(types.CaseIDKey, id))
	}
	return caseDecision(ctx, uc.ledger, sub, c), nil
}
