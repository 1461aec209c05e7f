package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/repository/memory"
)

func TestLedgerRecords(t *testing.T) {
	ledger := memory.NewLedger()
	ctx := context.Background()

	rec := &model.Record{
		ID:         "rec-1",
		CaseID:     "case-1",
		RecordType: types.RecordTypeEvidence,
		FileHash:   "deadbeef",
		ObjectKey:  "obj-1.enc",
		OwnerOrg:   types.OrgMSP1,
	}
	gt.NoError(t, ledger.CreateRecord(ctx, types.OrgMSP1, rec)).Required()

	t.Run("duplicate ID rejected", func(t *testing.T) {
		err := ledger.CreateRecord(ctx, types.OrgMSP1, rec)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrUpstreamUnavailable)).True()
	})

	t.Run("query returns a copy", func(t *testing.T) {
		got, err := ledger.QueryRecord(ctx, types.OrgMSP1, "rec-1", types.RoleInvestigator)
		gt.NoError(t, err).Required()
		gt.Value(t, got.FileHash).Equal("deadbeef")

		got.FileHash = "mutated"
		again, err := ledger.QueryRecord(ctx, types.OrgMSP1, "rec-1", types.RoleInvestigator)
		gt.NoError(t, err).Required()
		gt.Value(t, again.FileHash).Equal("deadbeef")
	})

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := ledger.QueryRecord(ctx, types.OrgMSP1, "rec-missing", types.RoleInvestigator)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("query by case", func(t *testing.T) {
		other := &model.Record{
			ID:         "rec-2",
			CaseID:     "case-2",
			RecordType: types.RecordTypeReport,
			FileHash:   "cafe",
			ObjectKey:  "obj-2.enc",
			OwnerOrg:   types.OrgMSP2,
		}
		gt.NoError(t, ledger.CreateRecord(ctx, types.OrgMSP2, other)).Required()

		recs, err := ledger.QueryRecordsByCase(ctx, types.OrgMSP1, "case-1")
		gt.NoError(t, err).Required()
		gt.Array(t, recs).Length(1)
		gt.Value(t, recs[0].ID).Equal(types.RecordID("rec-1"))

		all, err := ledger.QueryRecords(ctx, types.OrgMSP1, types.RoleInvestigator)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)
	})
}

func TestLedgerPolicies(t *testing.T) {
	ledger := memory.NewLedger()
	ctx := context.Background()

	p := &model.Policy{
		ID: "pol-1",
		Rules: []model.Rule{
			{Allow: &model.Condition{Org: types.OrgMSP1}},
		},
	}
	gt.NoError(t, ledger.CreatePolicy(ctx, types.OrgMSP1, p)).Required()

	err := ledger.CreatePolicy(ctx, types.OrgMSP1, p)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrUpstreamUnavailable)).True()

	got, err := ledger.QueryPolicy(ctx, types.OrgMSP2, "pol-1")
	gt.NoError(t, err).Required()
	gt.Array(t, got.Rules).Length(1)

	// Mutating the returned copy must not leak into the store.
	got.Rules[0].Allow = &model.Condition{Org: types.OrgMSP2}
	again, err := ledger.QueryPolicy(ctx, types.OrgMSP2, "pol-1")
	gt.NoError(t, err).Required()
	gt.Value(t, again.Rules[0].Allow.Org).Equal(types.OrgMSP1)

	_, err = ledger.QueryPolicy(ctx, types.OrgMSP1, "pol-missing")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	policies, err := ledger.QueryPolicies(ctx, types.OrgMSP1)
	gt.NoError(t, err).Required()
	gt.Array(t, policies).Length(1)
}

func TestLedgerCases(t *testing.T) {
	ledger := memory.NewLedger()
	ctx := context.Background()

	c := &model.Case{
		ID:           "case-1",
		Title:        "warehouse burglary",
		Status:       types.CaseStatusOpen,
		Organization: types.OrgMSP1,
	}
	gt.NoError(t, ledger.CreateCase(ctx, types.OrgMSP1, c)).Required()

	err := ledger.CreateCase(ctx, types.OrgMSP1, c)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrUpstreamUnavailable)).True()

	got, err := ledger.QueryCase(ctx, types.OrgMSP1, "case-1", types.RoleInvestigator)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Title).Equal("warehouse burglary")

	cases, err := ledger.QueryCases(ctx, types.OrgMSP1, types.RoleInvestigator)
	gt.NoError(t, err).Required()
	gt.Array(t, cases).Length(1)

	gt.NoError(t, ledger.DeleteCase(ctx, types.OrgMSP1, "case-1")).Required()

	_, err = ledger.QueryCase(ctx, types.OrgMSP1, "case-1", types.RoleInvestigator)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	err = ledger.DeleteCase(ctx, types.OrgMSP1, "case-1")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}
