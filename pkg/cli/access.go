package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/usecase"
)

func cmdAccess() *cli.Command {
	return &cli.Command{
		Name:  "access",
		Usage: "Evaluate access decisions without performing the operation",
		Commands: []*cli.Command{
			cmdAccessEval(),
		},
	}
}

func cmdAccessEval() *cli.Command {
	var rt runtime
	var recordID string
	var caseID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "record-id",
			Usage:       "Record to evaluate access against",
			Destination: &recordID,
		},
		&cli.StringFlag{
			Name:        "case-id",
			Usage:       "Case to evaluate access against",
			Destination: &caseID,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "eval",
		Usage: "Report whether the caller could access a record or case",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if (recordID == "") == (caseID == "") {
				return goerr.Wrap(types.ErrValidation, "exactly one of --record-id and --case-id is required")
			}

			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewAccessUseCase(collab.ledger)

			var decision model.Decision
			var target string
			if recordID != "" {
				target = recordID
				decision, err = uc.EvaluateRecord(ctx, collab.subject, types.RecordID(recordID))
			} else {
				target = caseID
				decision, err = uc.EvaluateCase(ctx, collab.subject, types.CaseID(caseID))
			}
			if err != nil {
				return err
			}

			verdict := color.New(color.FgRed, color.Bold).Sprint("DENIED")
			if decision.Allowed {
				verdict = color.New(color.FgGreen, color.Bold).Sprint("ALLOWED")
			}
			fmt.Printf("%s: %s for %s/%s\n", target, verdict, collab.subject.Organization, collab.subject.Role)
			return nil
		},
	}
}
