package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// OrgMSP identifies one of the mutually distrusting member organizations.
// Every ledger operation is performed as some organization, and access
// decisions compare organizations by equality only.
type OrgMSP string

const (
	OrgMSP1 OrgMSP = "Org1MSP"
	OrgMSP2 OrgMSP = "Org2MSP"
)

// AllOrgMSPs returns all member organizations
func AllOrgMSPs() []OrgMSP {
	return []OrgMSP{
		OrgMSP1,
		OrgMSP2,
	}
}

// IsValid checks if the organization is a known member
func (o OrgMSP) IsValid() bool {
	switch o {
	case OrgMSP1, OrgMSP2:
		return true
	default:
		return false
	}
}

// Validate requires an explicit, known organization. There is no default
// organization anywhere in the system.
func (o OrgMSP) Validate() error {
	if o == "" {
		return goerr.Wrap(ErrValidation, "organization is required")
	}
	if !o.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown organization", goerr.V(OrgKey, o))
	}
	return nil
}

// String returns the string representation of the organization
func (o OrgMSP) String() string {
	return string(o)
}

// NormalizeOrgMSP canonicalizes a client-supplied organization token. Values
// are matched loosely against the canonical members, with and without the
// trailing "MSP" suffix, so "org1", "Org-1" and "ORG1MSP" all yield Org1MSP.
// Unmatched input is returned trimmed but unchanged so strict validation can
// reject it; normalization itself never fails.
func NormalizeOrgMSP(raw string) OrgMSP {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, o := range AllOrgMSPs() {
		if looseEquals(string(o), v) || looseEquals(strings.TrimSuffix(string(o), "MSP"), v) {
			return o
		}
	}
	return OrgMSP(v)
}
