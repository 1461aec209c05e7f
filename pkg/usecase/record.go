package usecase

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/custody-lab/themis/pkg/domain/interfaces"
	"github.com/custody-lab/themis/pkg/domain/model"
	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/errutil"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// policyPrefetchLimit caps concurrent policy lookups during list filtering,
// the only step in the lifecycle with no ordering dependency between calls.
const policyPrefetchLimit = 4

// RecordUseCase orchestrates the record lifecycle across the ledger, the
// object store and the transit encryption service.
type RecordUseCase struct {
	ledger  interfaces.Ledger
	store   interfaces.ObjectStore
	transit interfaces.Transit
}

// NewRecordUseCase creates a RecordUseCase
func NewRecordUseCase(ledger interfaces.Ledger, store interfaces.ObjectStore, transit interfaces.Transit) *RecordUseCase {
	return &RecordUseCase{
		ledger:  ledger,
		store:   store,
		transit: transit,
	}
}

// CreateRecordInput carries the normalized parameters of a record creation
type CreateRecordInput struct {
	OwnerOrg    types.OrgMSP
	CaseID      types.CaseID
	RecordType  types.RecordType
	PolicyID    types.PolicyID
	Description string
	Filename    string
	Content     []byte
}

func (x *CreateRecordInput) validate() error {
	if x == nil {
		return goerr.Wrap(types.ErrValidation, "input is required")
	}
	if err := x.OwnerOrg.Validate(); err != nil {
		return err
	}
	if err := x.RecordType.Validate(); err != nil {
		return err
	}
	if len(x.Content) == 0 {
		return goerr.Wrap(types.ErrValidation, "record content is required")
	}
	return nil
}

// Create runs the create sequence: permission check, optional policy and
// case validation, fingerprint, encrypt, store, ledger commit, verification
// read. The stored object is deleted again if any step between the upload
// and the ledger commit fails; once the commit succeeds nothing is rolled
// back and a failed verification surfaces as a consistency warning.
func (uc *RecordUseCase) Create(ctx context.Context, sub *model.Subject, input *CreateRecordInput) (*model.Record, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	if !model.CanCreateRecordFor(input.OwnerOrg, sub) {
		return nil, goerr.Wrap(types.ErrAccessDenied, "record creation denied")
	}

	policyID := input.PolicyID
	if policyID != "" {
		if _, err := uc.ledger.QueryPolicy(ctx, input.OwnerOrg, policyID); err != nil {
			return nil, wrapPolicyLookup(err, policyID)
		}
	}

	if input.CaseID != "" {
		c, err := uc.ledger.QueryCase(ctx, input.OwnerOrg, input.CaseID, sub.Role)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query case", goerr.V(types.CaseIDKey, input.CaseID))
		}
		if !caseDecision(ctx, uc.ledger, sub, c).Allowed {
			return nil, goerr.Wrap(types.ErrAccessDenied, "case access denied")
		}
	}

	// The fingerprint is taken from the plaintext before anything touches it.
	fileHash, err := model.Fingerprint(input.Content)
	if err != nil {
		return nil, err
	}

	// A record without a caller-supplied policy gets a freshly minted empty
	// one, which stays admin-only until rules are attached to a successor
	// policy. Minted before the upload so a mint failure has nothing to
	// compensate; ledger writes are never rolled back, so an orphaned policy
	// is accepted if a later step fails.
	if policyID == "" {
		policyID = types.NewPolicyID()
		minted := &model.Policy{
			ID:        policyID,
			CreatedBy: input.OwnerOrg,
			CreatedAt: time.Now().UTC(),
		}
		if err := uc.ledger.CreatePolicy(ctx, input.OwnerOrg, minted); err != nil {
			return nil, goerr.Wrap(err, "failed to mint record policy", goerr.V(types.PolicyIDKey, policyID))
		}
	}

	ciphertext, err := uc.transit.Encrypt(ctx, input.Content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encrypt record content")
	}

	guard := newRollback()
	defer guard.unwind(ctx)

	objectKey := types.NewObjectKey(path.Ext(input.Filename))
	if err := uc.store.Put(ctx, objectKey, []byte(ciphertext)); err != nil {
		return nil, goerr.Wrap(err, "failed to store encrypted content", goerr.V(types.ObjectKeyKey, objectKey))
	}
	guard.add(func(ctx context.Context) {
		if err := uc.store.Delete(ctx, objectKey); err != nil {
			_ = errutil.Handle(ctx, err, "failed to delete orphaned object after rollback")
		}
	})

	rec := &model.Record{
		ID:          types.NewRecordID(),
		CaseID:      input.CaseID,
		RecordType:  input.RecordType,
		FileHash:    fileHash,
		ObjectKey:   objectKey,
		OwnerOrg:    input.OwnerOrg,
		CreatedAt:   time.Now().UTC(),
		PolicyID:    policyID,
		Description: input.Description,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledger.CreateRecord(ctx, input.OwnerOrg, rec); err != nil {
		return nil, goerr.Wrap(err, "failed to commit record", goerr.V(types.RecordIDKey, rec.ID))
	}
	guard.release()

	stored, err := uc.ledger.QueryRecord(ctx, input.OwnerOrg, rec.ID, sub.Role)
	if err != nil {
		return nil, goerr.Wrap(types.ErrConsistencyWarning, "record committed but verification read failed",
			goerr.V(types.RecordIDKey, rec.ID), goerr.V("cause", err.Error()))
	}
	if stored.FileHash != rec.FileHash || stored.ObjectKey != rec.ObjectKey {
		return nil, goerr.Wrap(types.ErrConsistencyWarning, "record committed but verification read returned unexpected data",
			goerr.V(types.RecordIDKey, rec.ID))
	}

	logging.From(ctx).Info("record created",
		"record_id", rec.ID, "owner_org", rec.OwnerOrg, "object_key", rec.ObjectKey)
	return stored, nil
}

// wrapPolicyLookup maps a missing policy to the invalid-policy kind. Any
// other lookup failure keeps its own kind so an unreachable ledger is not
// mistaken for a bad policy reference.
func wrapPolicyLookup(err error, id types.PolicyID) error {
	if errors.Is(err, types.ErrNotFound) {
		return goerr.Wrap(types.ErrInvalidPolicy, "policy could not be resolved",
			goerr.V(types.PolicyIDKey, id), goerr.V("cause", err.Error()))
	}
	return goerr.Wrap(err, "failed to query policy", goerr.V(types.PolicyIDKey, id))
}

// Retrieve runs the mirror sequence: ledger query, policy-or-ownership
// check, fetch, decrypt. A denial short-circuits before any ciphertext byte
// is fetched, and fetch or decrypt failures keep their own error kinds so
// callers cannot probe access control by error type.
func (uc *RecordUseCase) Retrieve(ctx context.Context, sub *model.Subject, id types.RecordID) (*model.Record, []byte, error) {
	if err := sub.Validate(); err != nil {
		return nil, nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, nil, err
	}

	rec, err := uc.ledger.QueryRecord(ctx, sub.Organization, id, sub.Role)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to query record", goerr.V(types.RecordIDKey, id))
	}

	if !recordDecision(ctx, uc.ledger, sub, rec).Allowed {
		return nil, nil, goerr.Wrap(types.ErrAccessDenied, "record access denied")
	}

	ciphertext, err := uc.store.Get(ctx, rec.ObjectKey)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to fetch encrypted content", goerr.V(types.RecordIDKey, id))
	}

	plaintext, err := uc.transit.Decrypt(ctx, string(ciphertext))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to decrypt content", goerr.V(types.RecordIDKey, id))
	}

	return rec, plaintext, nil
}

// List returns the records the subject may access. Inaccessible records are
// silently excluded; a reduced or empty list is the expected shape, never an
// error.
func (uc *RecordUseCase) List(ctx context.Context, sub *model.Subject) ([]*model.Record, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	recs, err := uc.ledger.QueryRecords(ctx, sub.Organization, sub.Role)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query records")
	}
	return uc.filterAccessible(ctx, sub, recs), nil
}

// ListByCase returns the accessible records of one case
func (uc *RecordUseCase) ListByCase(ctx context.Context, sub *model.Subject, caseID types.CaseID) ([]*model.Record, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := caseID.Validate(); err != nil {
		return nil, err
	}

	recs, err := uc.ledger.QueryRecordsByCase(ctx, sub.Organization, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query records by case", goerr.V(types.CaseIDKey, caseID))
	}
	return uc.filterAccessible(ctx, sub, recs), nil
}

type policyRef struct {
	org types.OrgMSP
	id  types.PolicyID
}

// filterAccessible applies the per-record access decision to a bulk query
// result. Distinct policies are prefetched concurrently; records whose
// policy cannot be resolved are excluded like any other denial.
func (uc *RecordUseCase) filterAccessible(ctx context.Context, sub *model.Subject, recs []*model.Record) []*model.Record {
	if sub.IsAdmin() {
		return recs
	}

	refs := make(map[policyRef]struct{})
	for _, rec := range recs {
		if rec.PolicyID != "" {
			refs[policyRef{org: rec.OwnerOrg, id: rec.PolicyID}] = struct{}{}
		}
	}

	var mu sync.Mutex
	policies := make(map[policyRef]*model.Policy, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(policyPrefetchLimit)
	for ref := range refs {
		g.Go(func() error {
			policy, err := uc.ledger.QueryPolicy(gctx, ref.org, ref.id)
			if err != nil {
				logging.From(ctx).Debug("could not resolve policy for listing, excluding",
					"policy_id", ref.id, "error", err)
				return nil
			}
			mu.Lock()
			policies[ref] = policy
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	accessible := make([]*model.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.PolicyID == "" {
			continue
		}
		policy := policies[policyRef{org: rec.OwnerOrg, id: rec.PolicyID}]
		if policy == nil {
			continue
		}
		if model.Authorize(policy, sub).Allowed {
			accessible = append(accessible, rec)
		}
	}
	return accessible
}
