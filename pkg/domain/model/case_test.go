package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

func TestCaseCanAccess(t *testing.T) {
	c := &model.Case{
		ID:           "case-1",
		Title:        "warehouse burglary",
		Status:       types.CaseStatusOpen,
		Organization: types.OrgMSP1,
	}

	t.Run("admin from any organization passes", func(t *testing.T) {
		gt.Bool(t, c.CanAccess(subject(types.RoleAdmin, types.OrgMSP1))).True()
		gt.Bool(t, c.CanAccess(subject(types.RoleAdmin, types.OrgMSP2))).True()
	})

	t.Run("same-org investigator passes", func(t *testing.T) {
		gt.Bool(t, c.CanAccess(subject(types.RoleInvestigator, types.OrgMSP1))).True()
	})

	t.Run("cross-org subject denied", func(t *testing.T) {
		gt.Bool(t, c.CanAccess(subject(types.RoleInvestigator, types.OrgMSP2))).False()
	})

	t.Run("non-whitelisted role denied even in own org", func(t *testing.T) {
		gt.Bool(t, c.CanAccess(subject(types.RoleForensics, types.OrgMSP1))).False()
		gt.Bool(t, c.CanAccess(subject(types.RoleJudge, types.OrgMSP1))).False()
	})

	t.Run("nil subject denied", func(t *testing.T) {
		gt.Bool(t, c.CanAccess(nil)).False()
	})

	t.Run("nil case denied for every role", func(t *testing.T) {
		var missing *model.Case
		gt.Bool(t, missing.CanAccess(subject(types.RoleAdmin, types.OrgMSP1))).False()
		gt.Bool(t, missing.CanAccess(subject(types.RoleInvestigator, types.OrgMSP1))).False()
	})
}

func TestCaseCanAccessInvestigatorOrgs(t *testing.T) {
	tracked := &model.Case{
		ID:               "case-1",
		Title:            "joint investigation",
		Status:           types.CaseStatusOpen,
		Organization:     types.OrgMSP1,
		InvestigatorOrgs: []types.OrgMSP{types.OrgMSP1},
	}
	untracked := &model.Case{
		ID:               "case-2",
		Title:            "joint investigation",
		Status:           types.CaseStatusOpen,
		Organization:     types.OrgMSP1,
		InvestigatorOrgs: []types.OrgMSP{types.OrgMSP2},
	}

	inv := subject(types.RoleInvestigator, types.OrgMSP1)
	gt.Bool(t, tracked.CanAccess(inv)).True()
	// Same organization as the case, but not in the tracked list.
	gt.Bool(t, untracked.CanAccess(inv)).False()
}

func TestCanCreateRecordFor(t *testing.T) {
	t.Run("admin creates for any organization", func(t *testing.T) {
		gt.Bool(t, model.CanCreateRecordFor(types.OrgMSP2, subject(types.RoleAdmin, types.OrgMSP1))).True()
	})

	t.Run("investigator creates only for own organization", func(t *testing.T) {
		gt.Bool(t, model.CanCreateRecordFor(types.OrgMSP1, subject(types.RoleInvestigator, types.OrgMSP1))).True()
		gt.Bool(t, model.CanCreateRecordFor(types.OrgMSP2, subject(types.RoleInvestigator, types.OrgMSP1))).False()
	})

	t.Run("other roles denied", func(t *testing.T) {
		gt.Bool(t, model.CanCreateRecordFor(types.OrgMSP1, subject(types.RoleForensics, types.OrgMSP1))).False()
		gt.Bool(t, model.CanCreateRecordFor(types.OrgMSP1, subject(types.RoleJudge, types.OrgMSP1))).False()
		gt.Bool(t, model.CanCreateRecordFor(types.OrgMSP1, nil)).False()
	})
}

func TestCaseFilterMatch(t *testing.T) {
	c := &model.Case{
		ID:           "case-1",
		Title:        "warehouse burglary",
		Status:       types.CaseStatusOpen,
		Jurisdiction: "north-district",
		Organization: types.OrgMSP1,
	}

	gt.Bool(t, (*model.CaseFilter)(nil).Match(c)).True()
	gt.Bool(t, (&model.CaseFilter{}).Match(c)).True()
	gt.Bool(t, (&model.CaseFilter{Status: types.CaseStatusOpen}).Match(c)).True()
	gt.Bool(t, (&model.CaseFilter{Status: types.CaseStatusClosed}).Match(c)).False()
	gt.Bool(t, (&model.CaseFilter{Jurisdiction: "north-district"}).Match(c)).True()
	gt.Bool(t, (&model.CaseFilter{Jurisdiction: "south-district"}).Match(c)).False()
	gt.Bool(t, (&model.CaseFilter{Status: types.CaseStatusOpen, Jurisdiction: "south-district"}).Match(c)).False()
}

func TestCaseValidate(t *testing.T) {
	valid := &model.Case{
		ID:           types.NewCaseID(),
		Title:        "warehouse burglary",
		Status:       types.CaseStatusOpen,
		Organization: types.OrgMSP1,
	}
	gt.NoError(t, valid.Validate())

	noTitle := *valid
	noTitle.Title = ""
	gt.Error(t, noTitle.Validate())

	noOrg := *valid
	noOrg.Organization = ""
	gt.Error(t, noOrg.Validate())

	badStatus := *valid
	badStatus.Status = "archived"
	gt.Error(t, badStatus.Validate())
}
