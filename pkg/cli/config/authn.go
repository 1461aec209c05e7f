package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/service/authn"
)

// Authn holds CLI flags for credential verification
type Authn struct {
	secret string
}

// Flags returns CLI flags for authentication configuration
func (x *Authn) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "Shared secret used to verify access tokens",
			Category:    "Authentication",
			Required:    true,
			Sources:     cli.EnvVars("THEMIS_TOKEN_SECRET"),
			Destination: &x.secret,
		},
	}
}

// LogValue returns the loggable representation without exposing the secret
func (x *Authn) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("secret_configured", x.secret != ""),
	)
}

// Configure initializes the token verifier
func (x *Authn) Configure() (interfaces.Authenticator, error) {
	verifier, err := authn.New([]byte(x.secret))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize token verifier")
	}
	return verifier, nil
}
