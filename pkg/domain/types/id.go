package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// RecordID is a unique identifier of an evidence record
type RecordID string

// NewRecordID generates a new record ID
func NewRecordID() RecordID {
	return RecordID("rec-" + uuid.NewString())
}

// Validate checks if the record ID is set
func (x RecordID) Validate() error {
	if x == "" {
		return goerr.Wrap(ErrValidation, "record ID is required")
	}
	return nil
}

// String returns the string representation of the record ID
func (x RecordID) String() string {
	return string(x)
}

// CaseID is a unique identifier of an investigative case
type CaseID string

// NewCaseID generates a new case ID
func NewCaseID() CaseID {
	return CaseID("case-" + uuid.NewString())
}

// Validate checks if the case ID is set
func (x CaseID) Validate() error {
	if x == "" {
		return goerr.Wrap(ErrValidation, "case ID is required")
	}
	return nil
}

// String returns the string representation of the case ID
func (x CaseID) String() string {
	return string(x)
}

// PolicyID is a unique identifier of an access policy
type PolicyID string

// NewPolicyID generates a new policy ID
func NewPolicyID() PolicyID {
	return PolicyID("pol-" + uuid.NewString())
}

// Validate checks if the policy ID is set
func (x PolicyID) Validate() error {
	if x == "" {
		return goerr.Wrap(ErrValidation, "policy ID is required")
	}
	return nil
}

// String returns the string representation of the policy ID
func (x PolicyID) String() string {
	return string(x)
}

// NewObjectKey generates a unique object store key for an encrypted payload.
// ext is the original file extension including the dot, possibly empty.
func NewObjectKey(ext string) string {
	return uuid.NewString() + ext + ".enc"
}
