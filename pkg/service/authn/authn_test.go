package authn_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"

	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/service/authn"
)

var testSecret = []byte("test-secret-key")

func signToken(t *testing.T, secret []byte, claims map[string]any) string {
	t.Helper()

	builder := jwt.NewBuilder().
		Subject("u-alice").
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour))
	for k, v := range claims {
		builder = builder.Claim(k, v)
	}
	token, err := builder.Build()
	gt.NoError(t, err).Required()

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, secret))
	gt.NoError(t, err).Required()
	return string(signed)
}

func TestVerifySubject(t *testing.T) {
	ctx := context.Background()
	verifier, err := authn.New(testSecret)
	gt.NoError(t, err).Required()

	t.Run("valid token yields normalized subject", func(t *testing.T) {
		credential := signToken(t, testSecret, map[string]any{
			"role": "Investigator",
			"org":  "org1",
		})

		sub, err := verifier.VerifySubject(ctx, credential)
		gt.NoError(t, err).Required()
		gt.Value(t, sub.Role).Equal(types.RoleInvestigator)
		gt.Value(t, sub.Organization).Equal(types.OrgMSP1)
		gt.Value(t, sub.UserID).Equal("u-alice")
	})

	t.Run("wrong secret denied", func(t *testing.T) {
		credential := signToken(t, []byte("other-secret"), map[string]any{
			"role": "investigator",
			"org":  "org1",
		})

		_, err := verifier.VerifySubject(ctx, credential)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrAccessDenied)).True()
	})

	t.Run("expired token denied", func(t *testing.T) {
		token, err := jwt.NewBuilder().
			Subject("u-alice").
			Expiration(time.Now().Add(-time.Hour)).
			Claim("role", "investigator").
			Claim("org", "org1").
			Build()
		gt.NoError(t, err).Required()
		signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, testSecret))
		gt.NoError(t, err).Required()

		_, err = verifier.VerifySubject(ctx, string(signed))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrAccessDenied)).True()
	})

	t.Run("missing claims denied", func(t *testing.T) {
		credential := signToken(t, testSecret, map[string]any{"role": "investigator"})
		_, err := verifier.VerifySubject(ctx, credential)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrAccessDenied)).True()
	})

	t.Run("unknown role denied", func(t *testing.T) {
		credential := signToken(t, testSecret, map[string]any{
			"role": "supervisor",
			"org":  "org1",
		})
		_, err := verifier.VerifySubject(ctx, credential)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrAccessDenied)).True()
	})

	t.Run("garbage credential denied", func(t *testing.T) {
		_, err := verifier.VerifySubject(ctx, "not-a-token")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrAccessDenied)).True()
	})
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := authn.New(nil)
	gt.Error(t, err)
}
