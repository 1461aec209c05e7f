package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/repository/memory"
	"github.com/custody-lab/themis/pkg/service/fabric"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// Ledger holds CLI flags for ledger backend configuration
type Ledger struct {
	backend   string
	channel   string
	chaincode string
	orgsPath  string
}

// Flags returns CLI flags for ledger configuration
func (x *Ledger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ledger-backend",
			Usage:       "Ledger backend type (fabric or memory)",
			Category:    "Ledger",
			Value:       "fabric",
			Sources:     cli.EnvVars("THEMIS_LEDGER_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "fabric-channel",
			Usage:       "Fabric channel name",
			Category:    "Ledger",
			Value:       "mychannel",
			Sources:     cli.EnvVars("THEMIS_FABRIC_CHANNEL"),
			Destination: &x.channel,
		},
		&cli.StringFlag{
			Name:        "fabric-chaincode",
			Usage:       "Custody chaincode name",
			Category:    "Ledger",
			Value:       "custody",
			Sources:     cli.EnvVars("THEMIS_FABRIC_CHAINCODE"),
			Destination: &x.chaincode,
		},
		&cli.StringFlag{
			Name:        "organizations",
			Usage:       "Path to the TOML organization registry (required for fabric backend)",
			Category:    "Ledger",
			Sources:     cli.EnvVars("THEMIS_ORGANIZATIONS"),
			Destination: &x.orgsPath,
		},
	}
}

// Configure initializes and returns a ledger client based on the configured backend
func (x *Ledger) Configure() (interfaces.Ledger, error) {
	switch x.backend {
	case "fabric":
		if x.orgsPath == "" {
			return nil, goerr.New("organizations registry is required when using fabric backend")
		}
		registry, err := LoadOrgRegistry(x.orgsPath)
		if err != nil {
			return nil, err
		}
		ledger, err := fabric.New(fabric.Config{
			Channel:    x.channel,
			Chaincode:  x.chaincode,
			Identities: registry.Identities(),
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize fabric ledger client")
		}
		logging.Default().Info("Using Fabric ledger",
			"channel", x.channel,
			"chaincode", x.chaincode,
			"organizations", len(registry.Organizations),
		)
		return ledger, nil

	case "memory":
		logging.Default().Info("Using in-memory ledger (development mode)")
		return memory.NewLedger(), nil

	default:
		return nil, goerr.New("invalid ledger backend", goerr.V("backend", x.backend))
	}
}
