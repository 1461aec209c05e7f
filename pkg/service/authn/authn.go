package authn

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
)

// Claim names carried by the bearer token
const (
	claimRole = "role"
	claimOrg  = "org"
)

// Verifier validates bearer tokens and produces the verified subject of a
// request. Token issuance happens elsewhere; this side only checks the
// signature and expiry and maps the claims through normalization.
type Verifier struct {
	secret []byte
}

// New creates a Verifier with an HS256 shared secret
func New(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, goerr.Wrap(types.ErrValidation, "token secret is required")
	}
	return &Verifier{secret: secret}, nil
}

// VerifySubject parses and validates the credential and returns the subject.
// Invalid, expired or claim-less credentials are all reported as access
// denial without detail.
func (x *Verifier) VerifySubject(ctx context.Context, credential string) (*model.Subject, error) {
	token, err := jwt.Parse([]byte(credential),
		jwt.WithKey(jwa.HS256, x.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, goerr.Wrap(types.ErrAccessDenied, "invalid credential")
	}

	rawRole, ok := token.Get(claimRole)
	if !ok {
		return nil, goerr.Wrap(types.ErrAccessDenied, "invalid credential")
	}
	rawOrg, ok := token.Get(claimOrg)
	if !ok {
		return nil, goerr.Wrap(types.ErrAccessDenied, "invalid credential")
	}
	role, _ := rawRole.(string)
	org, _ := rawOrg.(string)

	sub := &model.Subject{
		Role:         types.NormalizeRole(role),
		Organization: types.NormalizeOrgMSP(org),
		UserID:       token.Subject(),
	}
	if err := sub.Validate(); err != nil {
		return nil, goerr.Wrap(types.ErrAccessDenied, "invalid credential")
	}
	return sub, nil
}
