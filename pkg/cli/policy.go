package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/usecase"
)

func cmdPolicy() *cli.Command {
	return &cli.Command{
		Name:    "policy",
		Aliases: []string{"p"},
		Usage:   "Manage access policies",
		Commands: []*cli.Command{
			cmdPolicyCreate(),
			cmdPolicyGet(),
			cmdPolicyList(),
		},
	}
}

func cmdPolicyCreate() *cli.Command {
	var rt runtime
	var policyID string
	var rulesJSON string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "policy-id",
			Usage:       "Policy identifier (generated when omitted)",
			Destination: &policyID,
		},
		&cli.StringSliceFlag{
			Name:  "category",
			Usage: "Free-form policy category (repeatable)",
		},
		&cli.StringFlag{
			Name:        "rules",
			Usage:       `Rule list as JSON, e.g. '[{"allow":{"org":"Org1MSP","role":["investigator"]}}]'`,
			Destination: &rulesJSON,
		},
		&cli.StringSliceFlag{
			Name:  "allowed-org",
			Usage: "Allowed organization in the flat encoding (repeatable, exclusive with --rules)",
		},
		&cli.StringSliceFlag{
			Name:  "allowed-role",
			Usage: "Allowed role in the flat encoding (repeatable, exclusive with --rules)",
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "create",
		Usage: "Create an immutable access policy",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var rules []model.Rule
			if rulesJSON != "" {
				if err := json.Unmarshal([]byte(rulesJSON), &rules); err != nil {
					return goerr.Wrap(types.ErrValidation, "invalid rules JSON", goerr.V("cause", err.Error()))
				}
			}

			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewPolicyUseCase(collab.ledger)
			policy, err := uc.Create(ctx, collab.subject, &usecase.CreatePolicyInput{
				PolicyID:     policyID,
				Categories:   c.StringSlice("category"),
				Rules:        rules,
				AllowedOrgs:  c.StringSlice("allowed-org"),
				AllowedRoles: c.StringSlice("allowed-role"),
			})
			if err != nil {
				return err
			}
			return printJSON(policy)
		},
	}
}

func cmdPolicyGet() *cli.Command {
	var rt runtime
	var policyID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "policy-id",
			Usage:       "Policy to retrieve",
			Required:    true,
			Destination: &policyID,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Retrieve one policy",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewPolicyUseCase(collab.ledger)
			policy, err := uc.Get(ctx, collab.subject, types.PolicyID(policyID))
			if err != nil {
				return err
			}
			return printJSON(policy)
		},
	}
}

func cmdPolicyList() *cli.Command {
	var rt runtime

	return &cli.Command{
		Name:  "list",
		Usage: "List all policies",
		Flags: rt.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewPolicyUseCase(collab.ledger)
			policies, err := uc.List(ctx, collab.subject)
			if err != nil {
				return err
			}
			return printJSON(policies)
		},
	}
}
