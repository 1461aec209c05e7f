package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/usecase"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

func cmdRecord() *cli.Command {
	return &cli.Command{
		Name:    "record",
		Aliases: []string{"r"},
		Usage:   "Manage evidence records",
		Commands: []*cli.Command{
			cmdRecordCreate(),
			cmdRecordGet(),
			cmdRecordList(),
		},
	}
}

func cmdRecordCreate() *cli.Command {
	var rt runtime
	var file string
	var ownerOrg string
	var recordType string
	var caseID string
	var policyID string
	var description string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to the evidence file",
			Required:    true,
			Destination: &file,
		},
		&cli.StringFlag{
			Name:        "owner-org",
			Usage:       "Owning organization MSP ID (defaults to the caller's organization)",
			Destination: &ownerOrg,
		},
		&cli.StringFlag{
			Name:        "record-type",
			Usage:       "Record type (FIR, Evidence, Report or WitnessStatement)",
			Required:    true,
			Destination: &recordType,
		},
		&cli.StringFlag{
			Name:        "case-id",
			Usage:       "Case to attach the record to",
			Destination: &caseID,
		},
		&cli.StringFlag{
			Name:        "policy-id",
			Usage:       "Existing access policy to attach (a new empty policy is minted when omitted)",
			Destination: &policyID,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "Free-form record description",
			Destination: &description,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "create",
		Usage: "Encrypt, store and commit a new evidence record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			content, err := os.ReadFile(filepath.Clean(file))
			if err != nil {
				return goerr.Wrap(err, "failed to read evidence file", goerr.V("file", file))
			}

			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			owner := collab.subject.Organization
			if ownerOrg != "" {
				owner = types.NormalizeOrgMSP(ownerOrg)
			}

			uc := usecase.NewRecordUseCase(collab.ledger, collab.store, collab.transit)
			rec, err := uc.Create(ctx, collab.subject, &usecase.CreateRecordInput{
				OwnerOrg:    owner,
				CaseID:      types.CaseID(caseID),
				RecordType:  types.NormalizeRecordType(recordType),
				PolicyID:    types.PolicyID(policyID),
				Description: description,
				Filename:    filepath.Base(file),
				Content:     content,
			})
			if err != nil {
				return err
			}
			return printJSON(rec)
		},
	}
}

func cmdRecordGet() *cli.Command {
	var rt runtime
	var recordID string
	var output string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "record-id",
			Usage:       "Record to retrieve",
			Required:    true,
			Destination: &recordID,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Path to write the decrypted content (metadata only when omitted)",
			Destination: &output,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Retrieve and decrypt one evidence record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewRecordUseCase(collab.ledger, collab.store, collab.transit)
			rec, plaintext, err := uc.Retrieve(ctx, collab.subject, types.RecordID(recordID))
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, plaintext, 0600); err != nil {
					return goerr.Wrap(err, "failed to write decrypted content", goerr.V("output", output))
				}
				logging.From(ctx).Info("decrypted content written", "output", output, "bytes", len(plaintext))
			}
			return printJSON(rec)
		},
	}
}

func cmdRecordList() *cli.Command {
	var rt runtime
	var caseID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "case-id",
			Usage:       "Restrict the listing to one case",
			Destination: &caseID,
		},
	}
	flags = append(flags, rt.flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List the evidence records the caller may access",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			collab, err := rt.build(ctx)
			if err != nil {
				return err
			}
			defer collab.close()

			uc := usecase.NewRecordUseCase(collab.ledger, collab.store, collab.transit)

			var recs []*model.Record
			if caseID != "" {
				recs, err = uc.ListByCase(ctx, collab.subject, types.CaseID(caseID))
			} else {
				recs, err = uc.List(ctx, collab.subject)
			}
			if err != nil {
				return err
			}
			return printJSON(recs)
		},
	}
}
