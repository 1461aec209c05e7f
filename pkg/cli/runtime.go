package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/cli/config"
	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// runtime bundles the collaborator configurations shared by every command
// that talks to the gateway backends.
type runtime struct {
	token string

	authnCfg   config.Authn
	ledgerCfg  config.Ledger
	storeCfg   config.ObjectStore
	transitCfg config.Transit
}

func (x *runtime) flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Access token identifying the calling subject",
			Category:    "Authentication",
			Required:    true,
			Sources:     cli.EnvVars("THEMIS_TOKEN"),
			Destination: &x.token,
		},
	}
	flags = append(flags, x.authnCfg.Flags()...)
	flags = append(flags, x.ledgerCfg.Flags()...)
	flags = append(flags, x.storeCfg.Flags()...)
	flags = append(flags, x.transitCfg.Flags()...)
	return flags
}

// collaborators holds the wired backends and the verified caller
type collaborators struct {
	subject *model.Subject
	ledger  interfaces.Ledger
	store   interfaces.ObjectStore
	transit interfaces.Transit
	close   func()
}

// build verifies the caller's token and wires the configured backends
func (x *runtime) build(ctx context.Context) (*collaborators, error) {
	verifier, err := x.authnCfg.Configure()
	if err != nil {
		return nil, err
	}
	sub, err := verifier.VerifySubject(ctx, x.token)
	if err != nil {
		return nil, err
	}

	ledger, err := x.ledgerCfg.Configure()
	if err != nil {
		return nil, err
	}
	store, storeCloser, err := x.storeCfg.Configure(ctx)
	if err != nil {
		return nil, err
	}
	transit, err := x.transitCfg.Configure()
	if err != nil {
		if storeCloser != nil {
			storeCloser()
		}
		return nil, err
	}

	logging.From(ctx).Debug("runtime configured",
		"subject_org", sub.Organization, "subject_role", sub.Role,
		"store", &x.storeCfg, "transit", &x.transitCfg,
	)

	return &collaborators{
		subject: sub,
		ledger:  ledger,
		store:   store,
		transit: transit,
		close: func() {
			if storeCloser != nil {
				storeCloser()
			}
		},
	}, nil
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}
