package fabric

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

func (c *Client) CreateCase(ctx context.Context, org types.OrgMSP, cs *model.Case) error {
	investigatorOrgs, err := json.Marshal(cs.InvestigatorOrgs)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal investigator organizations", goerr.V(types.CaseIDKey, cs.ID))
	}
	return c.submit(ctx, org, "CreateCase",
		cs.ID.String(),
		cs.Title,
		cs.Description,
		cs.Jurisdiction,
		cs.CaseType,
		cs.Status.String(),
		string(investigatorOrgs),
		cs.PolicyID.String(),
	)
}

func (c *Client) QueryCase(ctx context.Context, org types.OrgMSP, id types.CaseID, role types.Role) (*model.Case, error) {
	payload, err := c.evaluate(ctx, org, "QueryCase", id.String(), role.String())
	if err != nil {
		return nil, err
	}
	doc, err := decode[caseDoc](payload, "QueryCase")
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (c *Client) QueryCases(ctx context.Context, org types.OrgMSP, role types.Role) ([]*model.Case, error) {
	payload, err := c.evaluate(ctx, org, "QueryAllCases", "", role.String())
	if err != nil {
		return nil, err
	}
	docs, err := decodeList[caseDoc](payload, "QueryAllCases")
	if err != nil {
		return nil, err
	}
	cases := make([]*model.Case, len(docs))
	for i := range docs {
		cases[i] = docs[i].toModel()
	}
	return cases, nil
}

func (c *Client) DeleteCase(ctx context.Context, org types.OrgMSP, id types.CaseID) error {
	return c.submit(ctx, org, "DeleteCase", id.String())
}
