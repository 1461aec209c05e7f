package interfaces

import (
	"context"

	"github.com/custody-lab/themis/pkg/domain/model"
)

// Authenticator turns a bearer credential into a verified subject. The core
// consumes the subject only; credential issuance is out of scope.
type Authenticator interface {
	VerifySubject(ctx context.Context, credential string) (*model.Subject, error)
}
