package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// Record is the ledger-committed metadata of one evidence document. The
// encrypted payload itself lives in the object store under ObjectKey; the
// ledger holds only this envelope and the plaintext fingerprint.
type Record struct {
	ID          types.RecordID   `json:"id"`
	CaseID      types.CaseID     `json:"caseId,omitempty"`
	RecordType  types.RecordType `json:"recordType"`
	FileHash    string           `json:"fileHash"`
	ObjectKey   string           `json:"offChainUri"`
	OwnerOrg    types.OrgMSP     `json:"ownerOrg"`
	CreatedAt   time.Time        `json:"createdAt"`
	PolicyID    types.PolicyID   `json:"policyId,omitempty"`
	Description string           `json:"description,omitempty"`
}

// Validate checks the record is well formed
func (r *Record) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return err
	}
	if err := r.RecordType.Validate(); err != nil {
		return err
	}
	if err := r.OwnerOrg.Validate(); err != nil {
		return err
	}
	if r.FileHash == "" {
		return goerr.Wrap(types.ErrValidation, "record file hash is required", goerr.V(types.RecordIDKey, r.ID))
	}
	if r.ObjectKey == "" {
		return goerr.Wrap(types.ErrValidation, "record object key is required", goerr.V(types.RecordIDKey, r.ID))
	}
	return nil
}

// Fingerprint computes the content fingerprint of the original plaintext
// bytes. The fingerprint is the value used for integrity proof, so it must
// always be taken from the plaintext, never from ciphertext.
func Fingerprint(data []byte) (string, error) {
	if len(data) == 0 {
		return "", goerr.Wrap(types.ErrValidation, "cannot fingerprint empty content")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
