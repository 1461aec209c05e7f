package types_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/domain/types"
)

func TestNormalizeOrgMSP(t *testing.T) {
	tests := []struct {
		input string
		want  types.OrgMSP
	}{
		{"Org1MSP", types.OrgMSP1},
		{"org1msp", types.OrgMSP1},
		{"ORG1MSP", types.OrgMSP1},
		{"org1", types.OrgMSP1},
		{"Org1", types.OrgMSP1},
		{"org-1", types.OrgMSP1},
		{"org-1-msp", types.OrgMSP1},
		{"  Org2MSP  ", types.OrgMSP2},
		{"org2", types.OrgMSP2},
		{"org3", "org3"},
		{"  unknown org  ", "unknown org"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			gt.Value(t, types.NormalizeOrgMSP(tc.input)).Equal(tc.want)
		})
	}
}

func TestNormalizeOrgMSPIdempotent(t *testing.T) {
	for _, org := range types.AllOrgMSPs() {
		once := types.NormalizeOrgMSP(string(org))
		twice := types.NormalizeOrgMSP(string(once))
		gt.Value(t, twice).Equal(once)
	}
}

func TestOrgMSPValidate(t *testing.T) {
	gt.NoError(t, types.OrgMSP1.Validate())
	gt.NoError(t, types.OrgMSP2.Validate())

	err := types.OrgMSP("").Validate()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	gt.Bool(t, strings.Contains(err.Error(), "organization is required")).True()

	err = types.OrgMSP("Org3MSP").Validate()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		input string
		want  types.Role
	}{
		{"investigator", types.RoleInvestigator},
		{"Investigator", types.RoleInvestigator},
		{"INVESTIGATOR", types.RoleInvestigator},
		{"admin", types.RoleAdmin},
		{"Admin", types.RoleAdmin},
		{"forensics", types.RoleForensics},
		{"judge", types.RoleJudge},
		{" judge ", types.RoleJudge},
		{"Clerk", "Clerk"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			gt.Value(t, types.NormalizeRole(tc.input)).Equal(tc.want)
		})
	}
}

func TestNormalizeRoleKeepsUnknownCase(t *testing.T) {
	// Unmatched input passes through as supplied, not lowercased, so
	// strict validation sees the original token.
	got := types.NormalizeRole("Supervisor")
	gt.Value(t, got).Equal(types.Role("Supervisor"))
	gt.Error(t, got.Validate())
}

func TestNormalizeRecordType(t *testing.T) {
	tests := []struct {
		input string
		want  types.RecordType
	}{
		{"FIR", types.RecordTypeFIR},
		{"fir", types.RecordTypeFIR},
		{"Evidence", types.RecordTypeEvidence},
		{"evidence", types.RecordTypeEvidence},
		{"witness-statement", types.RecordTypeWitnessStatement},
		{"WitnessStatement", types.RecordTypeWitnessStatement},
		{"witness statement", types.RecordTypeWitnessStatement},
		{"report", types.RecordTypeReport},
		{"memo", "memo"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			gt.Value(t, types.NormalizeRecordType(tc.input)).Equal(tc.want)
		})
	}
}

func TestNormalizeCaseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  types.CaseStatus
	}{
		{"Open", types.CaseStatusOpen},
		{"open", types.CaseStatusOpen},
		{"closed", types.CaseStatusClosed},
		{"Under Investigation", types.CaseStatusUnderInvestigation},
		{"under-investigation", types.CaseStatusUnderInvestigation},
		{"UnderInvestigation", types.CaseStatusUnderInvestigation},
		{"archived", "archived"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			gt.Value(t, types.NormalizeCaseStatus(tc.input)).Equal(tc.want)
		})
	}

	gt.Value(t, types.CaseStatus("").Normalize()).Equal(types.CaseStatusOpen)
	gt.Value(t, types.CaseStatusClosed.Normalize()).Equal(types.CaseStatusClosed)
}

func TestIDValidation(t *testing.T) {
	recID := types.NewRecordID()
	gt.Bool(t, strings.HasPrefix(string(recID), "rec-")).True()
	gt.NoError(t, recID.Validate())

	caseID := types.NewCaseID()
	gt.Bool(t, strings.HasPrefix(string(caseID), "case-")).True()
	gt.NoError(t, caseID.Validate())

	polID := types.NewPolicyID()
	gt.Bool(t, strings.HasPrefix(string(polID), "pol-")).True()
	gt.NoError(t, polID.Validate())

	gt.Error(t, types.RecordID("").Validate())
	gt.Error(t, types.CaseID("").Validate())
	gt.Error(t, types.PolicyID("").Validate())
}

func TestNewObjectKey(t *testing.T) {
	key := types.NewObjectKey(".pdf")
	gt.Bool(t, strings.HasSuffix(key, ".pdf.enc")).True()
	gt.Value(t, types.NewObjectKey(".pdf")).NotEqual(key)

	bare := types.NewObjectKey("")
	gt.Bool(t, strings.HasSuffix(bare, ".enc")).True()
}
