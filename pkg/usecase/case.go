package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// CaseUseCase manages investigative cases on the ledger
type CaseUseCase struct {
	ledger interfaces.Ledger
}

// NewCaseUseCase creates a CaseUseCase
func NewCaseUseCase(ledger interfaces.Ledger) *CaseUseCase {
	return &CaseUseCase{ledger: ledger}
}

// CreateCaseInput carries the parameters of a case creation. Raw status and
// organization values are accepted and normalized here.
type CreateCaseInput struct {
	Title            string
	Description      string
	Jurisdiction     string
	CaseType         string
	Status           string
	PolicyID         types.PolicyID
	InvestigatorOrgs []string
}

// Create creates a case owned by the caller's organization. Only admins and
// investigators may create cases. A supplied policy must exist and must
// admit the creating subject.
func (uc *CaseUseCase) Create(ctx context.Context, sub *model.Subject, input *CreateCaseInput) (*model.Case, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, goerr.Wrap(types.ErrValidation, "input is required")
	}
	if input.Title == "" {
		return nil, goerr.Wrap(types.ErrValidation, "case title is required")
	}

	if !sub.IsAdmin() && sub.Role != types.RoleInvestigator {
		return nil, goerr.Wrap(types.ErrAccessDenied, "case creation denied")
	}

	if input.PolicyID != "" {
		policy, err := uc.ledger.QueryPolicy(ctx, sub.Organization, input.PolicyID)
		if err != nil {
			return nil, wrapPolicyLookup(err, input.PolicyID)
		}
		if !model.Authorize(policy, sub).Allowed {
			return nil, goerr.Wrap(types.ErrAccessDenied, "case creation denied")
		}
	}

	status := types.NormalizeCaseStatus(input.Status)
	if status == "" {
		status = types.CaseStatusOpen
	}

	investigatorOrgs, err := normalizeOrgs(input.InvestigatorOrgs)
	if err != nil {
		return nil, err
	}

	c := &model.Case{
		ID:               types.NewCaseID(),
		Title:            input.Title,
		Description:      input.Description,
		Status:           status,
		Jurisdiction:     input.Jurisdiction,
		CaseType:         input.CaseType,
		Organization:     sub.Organization,
		InvestigatorOrgs: investigatorOrgs,
		PolicyID:         input.PolicyID,
		CreatedBy:        sub.UserID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledger.CreateCase(ctx, sub.Organization, c); err != nil {
		return nil, goerr.Wrap(err, "failed to commit case", goerr.V(types.CaseIDKey, c.ID))
	}

	logging.From(ctx).Info("case created", "case_id", c.ID, "organization", c.Organization)
	return c, nil
}

// Get returns one case if the subject may access it
func (uc *CaseUseCase) Get(ctx context.Context, sub *model.Subject, id types.CaseID) (*model.Case, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	c, err := uc.ledger.QueryCase(ctx, sub.Organization, id, sub.Role)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query case", goerr.V(types.CaseIDKey, id))
	}
	if !caseDecision(ctx, uc.ledger, sub, c).Allowed {
		return nil, goerr.Wrap(types.ErrAccessDenied, "case access denied")
	}
	return c, nil
}

// List returns the cases the subject may access, restricted by the filter.
// Inaccessible cases are silently excluded, never an error.
func (uc *CaseUseCase) List(ctx context.Context, sub *model.Subject, filter *model.CaseFilter) ([]*model.Case, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	cases, err := uc.ledger.QueryCases(ctx, sub.Organization, sub.Role)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query cases")
	}

	accessible := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if !filter.Match(c) {
			continue
		}
		if caseDecision(ctx, uc.ledger, sub, c).Allowed {
			accessible = append(accessible, c)
		}
	}
	return accessible, nil
}

// Delete removes a case. Deletion follows role semantics strictly: a policy
// that grants cross-org read access does not grant deletion.
func (uc *CaseUseCase) Delete(ctx context.Context, sub *model.Subject, id types.CaseID) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return err
	}

	c, err := uc.ledger.QueryCase(ctx, sub.Organization, id, sub.Role)
	if err != nil {
		return goerr.Wrap(err, "failed to query case", goerr.V(types.CaseIDKey, id))
	}
	if !c.CanAccess(sub) {
		return goerr.Wrap(types.ErrAccessDenied, "case deletion denied")
	}

	if err := uc.ledger.DeleteCase(ctx, sub.Organization, id); err != nil {
		return goerr.Wrap(err, "failed to delete case", goerr.V(types.CaseIDKey, id))
	}

	logging.From(ctx).Info("case deleted", "case_id", id)
	return nil
}
