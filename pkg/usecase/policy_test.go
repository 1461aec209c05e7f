package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/repository/memory"
	"github.com/custody-lab/themis/pkg/usecase"
)

func TestPolicyCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rule form", func(t *testing.T) {
		ledger := memory.NewLedger()
		uc := usecase.NewPolicyUseCase(ledger)

		created, err := uc.Create(ctx, subject(types.RoleInvestigator, types.OrgMSP1), &usecase.CreatePolicyInput{
			PolicyID:   "pol-rules",
			Categories: []string{"homicide"},
			Rules: []model.Rule{
				{Allow: &model.Condition{Org: "org2", Role: []types.Role{"Forensics"}}},
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.CreatedBy).Equal(types.OrgMSP1)
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		// Rule conditions are normalized on the way in.
		gt.Value(t, created.Rules[0].Allow.Org).Equal(types.OrgMSP2)
		gt.Value(t, created.Rules[0].Allow.Role[0]).Equal(types.RoleForensics)
	})

	t.Run("flat form is lifted to one rule per org", func(t *testing.T) {
		ledger := memory.NewLedger()
		uc := usecase.NewPolicyUseCase(ledger)

		created, err := uc.Create(ctx, subject(types.RoleInvestigator, types.OrgMSP1), &usecase.CreatePolicyInput{
			PolicyID:     "pol-flat",
			AllowedOrgs:  []string{"org1", "Org2MSP"},
			AllowedRoles: []string{"judge"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, created.Rules).Length(2)
		gt.Bool(t, created.Evaluate(subject(types.RoleJudge, types.OrgMSP2)).Allowed).True()
		gt.Bool(t, created.Evaluate(subject(types.RoleInvestigator, types.OrgMSP2)).Allowed).False()
	})

	t.Run("both forms at once rejected", func(t *testing.T) {
		uc := usecase.NewPolicyUseCase(memory.NewLedger())

		_, err := uc.Create(ctx, subject(types.RoleInvestigator, types.OrgMSP1), &usecase.CreatePolicyInput{
			Rules:       []model.Rule{{Allow: &model.Condition{Org: types.OrgMSP1}}},
			AllowedOrgs: []string{"org1"},
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	})

	t.Run("unknown allow-list org rejected", func(t *testing.T) {
		uc := usecase.NewPolicyUseCase(memory.NewLedger())

		_, err := uc.Create(ctx, subject(types.RoleInvestigator, types.OrgMSP1), &usecase.CreatePolicyInput{
			AllowedOrgs: []string{"org9"},
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	})

	t.Run("conflicting rule rejected", func(t *testing.T) {
		uc := usecase.NewPolicyUseCase(memory.NewLedger())

		_, err := uc.Create(ctx, subject(types.RoleInvestigator, types.OrgMSP1), &usecase.CreatePolicyInput{
			Rules: []model.Rule{
				{
					Allow: &model.Condition{Org: types.OrgMSP1},
					Deny:  &model.Condition{Org: "org1"},
				},
			},
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	})

	t.Run("ID generated when omitted", func(t *testing.T) {
		uc := usecase.NewPolicyUseCase(memory.NewLedger())

		created, err := uc.Create(ctx, subject(types.RoleAdmin, types.OrgMSP1), &usecase.CreatePolicyInput{})
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.HasPrefix(string(created.ID), "pol-")).True()
		gt.Array(t, created.Rules).Length(0)
	})
}

func TestPolicyGetAndList(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	uc := usecase.NewPolicyUseCase(ledger)

	_, err := uc.Create(ctx, subject(types.RoleInvestigator, types.OrgMSP1), &usecase.CreatePolicyInput{
		PolicyID:    "pol-a",
		AllowedOrgs: []string{"org1"},
	})
	gt.NoError(t, err).Required()

	got, err := uc.Get(ctx, subject(types.RoleJudge, types.OrgMSP2), "pol-a")
	gt.NoError(t, err).Required()
	gt.Value(t, got.ID).Equal(types.PolicyID("pol-a"))

	_, err = uc.Get(ctx, subject(types.RoleJudge, types.OrgMSP2), "pol-missing")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	policies, err := uc.List(ctx, subject(types.RoleJudge, types.OrgMSP2))
	gt.NoError(t, err).Required()
	gt.Array(t, policies).Length(1)
}
