package fabric

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// mapChaincodeError classifies a gateway or chaincode failure into the
// stable error kinds. The chaincode reports business failures only through
// its message text, so matching on it is the contract we have.
func mapChaincodeError(err error, op string) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "does not exist") || strings.Contains(msg, "not found"):
		return goerr.Wrap(types.ErrNotFound, "ledger document not found",
			goerr.V("op", op), goerr.V("cause", err.Error()))
	case strings.Contains(msg, "access denied"):
		return goerr.Wrap(types.ErrAccessDenied, "ledger denied access", goerr.V("op", op))
	default:
		return goerr.Wrap(types.ErrUpstreamUnavailable, "ledger transaction failed",
			goerr.V("op", op), goerr.V("cause", err.Error()))
	}
}
