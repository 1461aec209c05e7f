package fabric

import (
	"context"
	"time"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

func (c *Client) CreateRecord(ctx context.Context, org types.OrgMSP, rec *model.Record) error {
	return c.submit(ctx, org, "CreateRecord",
		rec.ID.String(),
		string(rec.CaseID),
		rec.RecordType.String(),
		rec.FileHash,
		rec.ObjectKey,
		rec.OwnerOrg.String(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.PolicyID.String(),
		rec.Description,
	)
}

func (c *Client) QueryRecord(ctx context.Context, org types.OrgMSP, id types.RecordID, role types.Role) (*model.Record, error) {
	payload, err := c.evaluate(ctx, org, "QueryRecord", id.String(), role.String())
	if err != nil {
		return nil, err
	}
	doc, err := decode[recordDoc](payload, "QueryRecord")
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (c *Client) QueryRecords(ctx context.Context, org types.OrgMSP, role types.Role) ([]*model.Record, error) {
	// QueryRecords takes a selector document as its first argument; the
	// empty string selects everything. The trailing role argument extends
	// the upstream chaincode contract, same as CreateCase.
	payload, err := c.evaluate(ctx, org, "QueryRecords", "", role.String())
	if err != nil {
		return nil, err
	}
	docs, err := decodeList[recordDoc](payload, "QueryRecords")
	if err != nil {
		return nil, err
	}
	recs := make([]*model.Record, len(docs))
	for i := range docs {
		recs[i] = docs[i].toModel()
	}
	return recs, nil
}

func (c *Client) QueryRecordsByCase(ctx context.Context, org types.OrgMSP, caseID types.CaseID) ([]*model.Record, error) {
	payload, err := c.evaluate(ctx, org, "QueryRecordsByCase", caseID.String())
	if err != nil {
		return nil, err
	}
	docs, err := decodeList[recordDoc](payload, "QueryRecordsByCase")
	if err != nil {
		return nil, err
	}
	recs := make([]*model.Record, len(docs))
	for i := range docs {
		recs[i] = docs[i].toModel()
	}
	return recs, nil
}
