package fabric

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

func (c *Client) CreatePolicy(ctx context.Context, org types.OrgMSP, p *model.Policy) error {
	categories, err := json.Marshal(p.Categories)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal policy categories", goerr.V(types.PolicyIDKey, p.ID))
	}
	rules, err := json.Marshal(p.Rules)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal policy rules", goerr.V(types.PolicyIDKey, p.ID))
	}
	return c.submit(ctx, org, "CreatePolicy", p.ID.String(), string(categories), string(rules))
}

func (c *Client) QueryPolicy(ctx context.Context, org types.OrgMSP, id types.PolicyID) (*model.Policy, error) {
	payload, err := c.evaluate(ctx, org, "QueryPolicy", id.String())
	if err != nil {
		return nil, err
	}
	doc, err := decode[policyDoc](payload, "QueryPolicy")
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (c *Client) QueryPolicies(ctx context.Context, org types.OrgMSP) ([]*model.Policy, error) {
	payload, err := c.evaluate(ctx, org, "QueryAllPolicies")
	if err != nil {
		return nil, err
	}
	docs, err := decodeList[policyDoc](payload, "QueryAllPolicies")
	if err != nil {
		return nil, err
	}
	policies := make([]*model.Policy, len(docs))
	for i := range docs {
		policies[i] = docs[i].toModel()
	}
	return policies, nil
}
