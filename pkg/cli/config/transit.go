package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/repository/memory"
	"github.com/custody-lab/themis/pkg/service/vault"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// Transit holds CLI flags for envelope encryption configuration
type Transit struct {
	backend string
	addr    string
	token   string
	keyName string
}

// Flags returns CLI flags for transit configuration
func (x *Transit) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "transit-backend",
			Usage:       "Encryption backend type (vault or memory)",
			Category:    "Encryption",
			Value:       "vault",
			Sources:     cli.EnvVars("THEMIS_TRANSIT_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "vault-addr",
			Usage:       "Vault server address",
			Category:    "Encryption",
			Sources:     cli.EnvVars("THEMIS_VAULT_ADDR", "VAULT_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "vault-token",
			Usage:       "Vault authentication token",
			Category:    "Encryption",
			Sources:     cli.EnvVars("THEMIS_VAULT_TOKEN", "VAULT_TOKEN"),
			Destination: &x.token,
		},
		&cli.StringFlag{
			Name:        "vault-key-name",
			Usage:       "Transit key name used for record encryption",
			Category:    "Encryption",
			Value:       "evidence-key",
			Sources:     cli.EnvVars("THEMIS_VAULT_KEY_NAME"),
			Destination: &x.keyName,
		},
	}
}

// LogValue returns the loggable representation with the token masked
func (x *Transit) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("addr", x.addr),
		slog.String("key_name", x.keyName),
	)
}

// Configure initializes the transit engine for the configured backend
func (x *Transit) Configure() (interfaces.Transit, error) {
	switch x.backend {
	case "vault":
		if x.addr == "" || x.token == "" {
			return nil, goerr.New("vault-addr and vault-token are required when using vault backend")
		}
		engine, err := vault.New(x.addr, x.token, x.keyName)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize vault client")
		}
		logging.Default().Info("Using Vault transit engine",
			"addr", x.addr,
			"key_name", x.keyName,
		)
		return engine, nil

	case "memory":
		logging.Default().Info("Using in-memory transit engine (development mode)")
		return memory.NewTransit(), nil

	default:
		return nil, goerr.New("invalid transit backend", goerr.V("backend", x.backend))
	}
}
