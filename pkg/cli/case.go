package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/usecase"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

func cmdCase() *cli.Command {
	return &cli.Command{
		Name:    "case",
		Aliases: []string{"c"},
		Usage:   "Manage investigative cases",
		Commands: []*cli.Command{
			cmdCaseCreate(),
			cmdCaseGet(),
			cmdCaseList(),
			cmdCaseDelete(),
		},
	}
}

func cmdCaseCreate() *cli.Command {
	var rt runtime
	var title string
	var description string
	var jurisdiction string
	var caseType string
	var status string
	var policyID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Case title",
			Required:    true,
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "Case description",
			Destination: &description,
		},
		&cli.StringFlag{
			Name:        "jurisdiction",
			Usage:       "Jurisdiction the case belongs to",
			Destination: &jurisdiction,
		},
		&cli.StringFlag{
			Name:        "case-type",
			Usage:       "Case classification",
			Destination: &caseType,
		},
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Initial case status (defaults to Open)",
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "policy-id",
			Usage:       "Access policy attached to the case",
			Destination: &policyID,
		},
		&cli.StringSliceFlag{
			Name:  "investigator-org",
			Usage: "Organization tracked as an investigator on the case (repeatable)",
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "create",
		Usage: "Create a case owned by the caller's organization",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewCaseUseCase(collab.ledger)
			created, err := uc.Create(ctx, collab.subject, &usecase.CreateCaseInput{
				Title:            title,
				Description:      description,
				Jurisdiction:     jurisdiction,
				CaseType:         caseType,
				Status:           status,
				PolicyID:         types.PolicyID(policyID),
				InvestigatorOrgs: c.StringSlice("investigator-org"),
			})
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}
}

func cmdCaseGet() *cli.Command {
	var rt runtime
	var caseID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "case-id",
			Usage:       "Case to retrieve",
			Required:    true,
			Destination: &caseID,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Retrieve one case",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewCaseUseCase(collab.ledger)
			found, err := uc.Get(ctx, collab.subject, types.CaseID(caseID))
			if err != nil {
				return err
			}
			return printJSON(found)
		},
	}
}

func cmdCaseList() *cli.Command {
	var rt runtime
	var status string
	var jurisdiction string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Restrict the listing to one status",
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "jurisdiction",
			Usage:       "Restrict the listing to one jurisdiction",
			Destination: &jurisdiction,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List the cases the caller may access",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			var filter *model.CaseFilter
			if status != "" || jurisdiction != "" {
				filter = &model.CaseFilter{
					Status:       types.NormalizeCaseStatus(status),
					Jurisdiction: jurisdiction,
				}
			}

			uc := usecase.NewCaseUseCase(collab.ledger)
			cases, err := uc.List(ctx, collab.subject, filter)
			if err != nil {
				return err
			}
			return printJSON(cases)
		},
	}
}

func cmdCaseDelete() *cli.Command {
	var rt runtime
	var caseID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "case-id",
			Usage:       "Case to delete",
			Required:    true,
			Destination: &caseID,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete one case",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewCaseUseCase(collab.ledger)
			if err := uc.Delete(ctx, collab.subject, types.CaseID(caseID)); err != nil {
				return err
			}
			logging.From(ctx).Info("case deleted", "case_id", caseID)
			return nil
		},
	}
}
