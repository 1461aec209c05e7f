package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

// Ledger is an in-memory stand-in for the distributed ledger, used in
// development mode and tests. It keeps the ledger's write-once semantics
// (duplicate IDs are rejected, policies are immutable) but performs no
// chaincode-side access filtering; the orchestrator re-checks access anyway.
type Ledger struct {
	mu       sync.RWMutex
	records  map[types.RecordID]*model.Record
	policies map[types.PolicyID]*model.Policy
	cases    map[types.CaseID]*model.Case
}

// NewLedger creates an empty in-memory ledger
func NewLedger() *Ledger {
	return &Ledger{
		records:  make(map[types.RecordID]*model.Record),
		policies: make(map[types.PolicyID]*model.Policy),
		cases:    make(map[types.CaseID]*model.Case),
	}
}

func copyRecord(r *model.Record) *model.Record {
	copied := *r
	return &copied
}

func copyPolicy(p *model.Policy) *model.Policy {
	copied := *p
	copied.Categories = append([]string(nil), p.Categories...)
	copied.Rules = append([]model.Rule(nil), p.Rules...)
	return &copied
}

func copyCase(c *model.Case) *model.Case {
	copied := *c
	copied.InvestigatorOrgs = append([]types.OrgMSP(nil), c.InvestigatorOrgs...)
	return &copied
}

func (x *Ledger) CreateRecord(ctx context.Context, org types.OrgMSP, rec *model.Record) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.records[rec.ID]; exists {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "record already exists", goerr.V(types.RecordIDKey, rec.ID))
	}
	x.records[rec.ID] = copyRecord(rec)
	return nil
}

func (x *Ledger) QueryRecord(ctx context.Context, org types.OrgMSP, id types.RecordID, role types.Role) (*model.Record, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rec, exists := x.records[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "record not found", goerr.V(types.RecordIDKey, id))
	}
	return copyRecord(rec), nil
}

func (x *Ledger) QueryRecords(ctx context.Context, org types.OrgMSP, role types.Role) ([]*model.Record, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	recs := make([]*model.Record, 0, len(x.records))
	for _, rec := range x.records {
		recs = append(recs, copyRecord(rec))
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (x *Ledger) QueryRecordsByCase(ctx context.Context, org types.OrgMSP, caseID types.CaseID) ([]*model.Record, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var recs []*model.Record
	for _, rec := range x.records {
		if rec.CaseID == caseID {
			recs = append(recs, copyRecord(rec))
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (x *Ledger) CreatePolicy(ctx context.Context, org types.OrgMSP, p *model.Policy) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.policies[p.ID]; exists {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "policy already exists", goerr.V(types.PolicyIDKey, p.ID))
	}
	x.policies[p.ID] = copyPolicy(p)
	return nil
}

func (x *Ledger) QueryPolicy(ctx context.Context, org types.OrgMSP, id types.PolicyID) (*model.Policy, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	p, exists := x.policies[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "policy not found", goerr.V(types.PolicyIDKey, id))
	}
	return copyPolicy(p), nil
}

func (x *Ledger) QueryPolicies(ctx context.Context, org types.OrgMSP) ([]*model.Policy, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	policies := make([]*model.Policy, 0, len(x.policies))
	for _, p := range x.policies {
		policies = append(policies, copyPolicy(p))
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].ID < policies[j].ID })
	return policies, nil
}

func (x *Ledger) CreateCase(ctx context.Context, org types.OrgMSP, c *model.Case) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.cases[c.ID]; exists {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "case already exists", goerr.V(types.CaseIDKey, c.ID))
	}
	x.cases[c.ID] = copyCase(c)
	return nil
}

func (x *Ledger) QueryCase(ctx context.Context, org types.OrgMSP, id types.CaseID, role types.Role) (*model.Case, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	c, exists := x.cases[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "case not found", goerr.V(types.CaseIDKey, id))
	}
	return copyCase(c), nil
}

func (x *Ledger) QueryCases(ctx context.Context, org types.OrgMSP, role types.Role) ([]*model.Case, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	cases := make([]*model.Case, 0, len(x.cases))
	for _, c := range x.cases {
		cases = append(cases, copyCase(c))
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].ID < cases[j].ID })
	return cases, nil
}

func (x *Ledger) DeleteCase(ctx context.Context, org types.OrgMSP, id types.CaseID) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.cases[id]; !exists {
		return goerr.Wrap(types.ErrNotFound, "case not found", goerr.V(types.CaseIDKey, id))
	}
	delete(x.cases, id)
	return nil
}
