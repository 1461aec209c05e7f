package fabric

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

// Wire documents mirror the chaincode's world-state JSON. Timestamps arrive
// as strings (older documents carry non-RFC3339 placeholders), so they are
// parsed best-effort instead of failing the whole query.

type recordDoc struct {
	ID          types.RecordID   `json:"id"`
	CaseID      types.CaseID     `json:"caseId"`
	RecordType  types.RecordType `json:"recordType"`
	FileHash    string           `json:"fileHash"`
	OffChainURI string           `json:"offChainUri"`
	OwnerOrg    types.OrgMSP     `json:"ownerOrg"`
	CreatedAt   string           `json:"createdAt"`
	PolicyID    types.PolicyID   `json:"policyId"`
	Description string           `json:"description"`
}

func (d *recordDoc) toModel() *model.Record {
	return &model.Record{
		ID:          d.ID,
		CaseID:      d.CaseID,
		RecordType:  d.RecordType,
		FileHash:    d.FileHash,
		ObjectKey:   d.OffChainURI,
		OwnerOrg:    d.OwnerOrg,
		CreatedAt:   parseWireTime(d.CreatedAt),
		PolicyID:    d.PolicyID,
		Description: d.Description,
	}
}

type policyDoc struct {
	PolicyID   types.PolicyID `json:"policyId"`
	Categories []string       `json:"categories"`
	Rules      []model.Rule   `json:"rules"`
	// Legacy flat encoding, still present on documents written by earlier
	// chaincode generations. Reconciled into rules at decode time.
	AllowedOrgs  []string     `json:"allowedOrgs"`
	AllowedRoles []string     `json:"allowedRoles"`
	CreatedBy    types.OrgMSP `json:"createdBy"`
	CreatedAt    string       `json:"createdAt"`
}

func (d *policyDoc) toModel() *model.Policy {
	p := &model.Policy{
		ID:         d.PolicyID,
		Categories: d.Categories,
		Rules:      d.Rules,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  parseWireTime(d.CreatedAt),
	}
	if len(p.Rules) == 0 && (len(d.AllowedOrgs) > 0 || len(d.AllowedRoles) > 0) {
		orgs := make([]types.OrgMSP, 0, len(d.AllowedOrgs))
		for _, o := range d.AllowedOrgs {
			orgs = append(orgs, types.NormalizeOrgMSP(o))
		}
		roles := make([]types.Role, 0, len(d.AllowedRoles))
		for _, r := range d.AllowedRoles {
			roles = append(roles, types.NormalizeRole(r))
		}
		lifted := model.NewPolicyFromAllowLists(d.PolicyID, orgs, roles)
		p.Rules = lifted.Rules
	}
	return p
}

type caseDoc struct {
	ID               types.CaseID     `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Status           types.CaseStatus `json:"status"`
	Jurisdiction     string           `json:"jurisdiction"`
	CaseType         string           `json:"caseType"`
	Organization     types.OrgMSP     `json:"organization"`
	InvestigatorOrgs []types.OrgMSP   `json:"investigatorOrgs"`
	PolicyID         types.PolicyID   `json:"policyId"`
	CreatedBy        string           `json:"createdBy"`
	CreatedAt        string           `json:"createdAt"`
}

func (d *caseDoc) toModel() *model.Case {
	return &model.Case{
		ID:               d.ID,
		Title:            d.Title,
		Description:      d.Description,
		Status:           d.Status.Normalize(),
		Jurisdiction:     d.Jurisdiction,
		CaseType:         d.CaseType,
		Organization:     d.Organization,
		InvestigatorOrgs: d.InvestigatorOrgs,
		PolicyID:         d.PolicyID,
		CreatedBy:        d.CreatedBy,
		CreatedAt:        parseWireTime(d.CreatedAt),
	}
}

func parseWireTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func decode[T any](payload []byte, op string) (*T, error) {
	var doc T
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "broken ledger payload",
			goerr.V("op", op), goerr.V("cause", err.Error()))
	}
	return &doc, nil
}

func decodeList[T any](payload []byte, op string) ([]T, error) {
	var docs []T
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "broken ledger payload",
			goerr.V("op", op), goerr.V("cause", err.Error()))
	}
	return docs, nil
}
