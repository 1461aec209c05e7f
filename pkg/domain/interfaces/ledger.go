package interfaces

import (
	"context"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

// Ledger is the append-only transactional store holding record, policy and
// case documents. Every operation runs as an explicit organization identity;
// there is no default organization. Query operations that take a role pass it
// down so the ledger can apply its own coarse filtering as defense in depth;
// callers never rely on that filtering alone.
//
// Implementations wrap failures with types.ErrNotFound when the document is
// absent and types.ErrUpstreamUnavailable for transport or chaincode faults.
type Ledger interface {
	CreateRecord(ctx context.Context, org types.OrgMSP, rec *model.Record) error
	QueryRecord(ctx context.Context, org types.OrgMSP, id types.RecordID, role types.Role) (*model.Record, error)
	QueryRecords(ctx context.Context, org types.OrgMSP, role types.Role) ([]*model.Record, error)
	QueryRecordsByCase(ctx context.Context, org types.OrgMSP, caseID types.CaseID) ([]*model.Record, error)

	CreatePolicy(ctx context.Context, org types.OrgMSP, p *model.Policy) error
	QueryPolicy(ctx context.Context, org types.OrgMSP, id types.PolicyID) (*model.Policy, error)
	QueryPolicies(ctx context.Context, org types.OrgMSP) ([]*model.Policy, error)

	CreateCase(ctx context.Context, org types.OrgMSP, c *model.Case) error
	QueryCase(ctx context.Context, org types.OrgMSP, id types.CaseID, role types.Role) (*model.Case, error)
	QueryCases(ctx context.Context, org types.OrgMSP, role types.Role) ([]*model.Case, error)
	DeleteCase(ctx context.Context, org types.OrgMSP, id types.CaseID) error
}
