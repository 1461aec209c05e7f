package types

import "github.com/m-mizutani/goerr/v2"

// Stable error kinds shared by every layer. Collaborator adapters wrap their
// failures with one of these so callers can classify errors with errors.Is
// without depending on the adapter package.
var (
	// ErrValidation means the input was malformed or never matched an
	// enumeration and the field is required.
	ErrValidation = goerr.New("validation failed")

	// ErrAccessDenied means a policy or case-gate denial. Messages wrapped
	// around it must never reveal why access was denied beyond "denied".
	ErrAccessDenied = goerr.New("access denied")

	// ErrNotFound means the resource is absent from the ledger or store.
	ErrNotFound = goerr.New("not found")

	// ErrInvalidPolicy means a caller-supplied policy reference could not be
	// resolved at record or case creation time.
	ErrInvalidPolicy = goerr.New("invalid policy")

	// ErrUpstreamUnavailable means a ledger, object store or transit call
	// failed for reasons unrelated to business logic. Safe to retry.
	ErrUpstreamUnavailable = goerr.New("upstream unavailable")

	// ErrConsistencyWarning means a ledger commit succeeded but the verifying
	// read failed or returned unexpected data. Never retried automatically.
	ErrConsistencyWarning = goerr.New("ledger consistency warning")
)

// Context keys for error values
const (
	OrgKey        = "org"
	RoleKey       = "role"
	StatusKey     = "status"
	RecordTypeKey = "record_type"
	RecordIDKey   = "record_id"
	CaseIDKey     = "case_id"
	PolicyIDKey   = "policy_id"
	ObjectKeyKey  = "object_key"
)
