package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RecordType classifies an evidence record
type RecordType string

const (
	RecordTypeFIR              RecordType = "FIR"
	RecordTypeEvidence         RecordType = "Evidence"
	RecordTypeReport           RecordType = "Report"
	RecordTypeWitnessStatement RecordType = "WitnessStatement"
)

// AllRecordTypes returns all valid record types
func AllRecordTypes() []RecordType {
	return []RecordType{
		RecordTypeFIR,
		RecordTypeEvidence,
		RecordTypeReport,
		RecordTypeWitnessStatement,
	}
}

// IsValid checks if the record type is valid
func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeFIR, RecordTypeEvidence, RecordTypeReport, RecordTypeWitnessStatement:
		return true
	default:
		return false
	}
}

// Validate checks if the record type is a known type
func (t RecordType) Validate() error {
	if t == "" {
		return goerr.Wrap(ErrValidation, "record type is required")
	}
	if !t.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown record type", goerr.V(RecordTypeKey, t))
	}
	return nil
}

// String returns the string representation of the record type
func (t RecordType) String() string {
	return string(t)
}

// NormalizeRecordType canonicalizes a client-supplied record type token, e.g.
// "witness-statement" becomes WitnessStatement. Unmatched input is returned
// trimmed but unchanged.
func NormalizeRecordType(raw string) RecordType {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, t := range AllRecordTypes() {
		if looseEquals(string(t), v) {
			return t
		}
	}
	return RecordType(v)
}
