package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CaseStatus represents the status of a case
type CaseStatus string

const (
	CaseStatusOpen               CaseStatus = "Open"
	CaseStatusClosed             CaseStatus = "Closed"
	CaseStatusUnderInvestigation CaseStatus = "Under Investigation"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusOpen,
		CaseStatusClosed,
		CaseStatusUnderInvestigation,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusOpen, CaseStatusClosed, CaseStatusUnderInvestigation:
		return true
	default:
		return false
	}
}

// Validate checks if the case status is a known status
func (s CaseStatus) Validate() error {
	if s == "" {
		return goerr.Wrap(ErrValidation, "case status is required")
	}
	if !s.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown case status", goerr.V(StatusKey, s))
	}
	return nil
}

// Normalize returns the status, treating empty as CaseStatusOpen for
// documents written before status tracking.
func (s CaseStatus) Normalize() CaseStatus {
	if s == "" {
		return CaseStatusOpen
	}
	return s
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// NormalizeCaseStatus canonicalizes a client-supplied status token, e.g.
// "under-investigation" and "UnderInvestigation" both become the canonical
// "Under Investigation". Unmatched input is returned trimmed but unchanged.
func NormalizeCaseStatus(raw string) CaseStatus {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, s := range AllCaseStatuses() {
		if looseEquals(string(s), v) {
			return s
		}
	}
	return CaseStatus(v)
}
