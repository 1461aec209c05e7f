package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/service/fabric"
)

// Organization declares the ledger identity of one member organization
type Organization struct {
	MSPID        string `toml:"msp_id"`
	PeerEndpoint string `toml:"peer_endpoint"`
	GatewayPeer  string `toml:"gateway_peer"`
	TLSCertFile  string `toml:"tls_cert_file"`
	CertFile     string `toml:"cert_file"`
	KeyFile      string `toml:"key_file"`
}

// Validate checks the organization entry is complete
func (x *Organization) Validate() error {
	org := types.NormalizeOrgMSP(x.MSPID)
	if err := org.Validate(); err != nil {
		return goerr.Wrap(err, "invalid organization entry")
	}
	if x.PeerEndpoint == "" {
		return goerr.New("peer_endpoint is required", goerr.V(types.OrgKey, x.MSPID))
	}
	if x.CertFile == "" || x.KeyFile == "" {
		return goerr.New("cert_file and key_file are required", goerr.V(types.OrgKey, x.MSPID))
	}
	return nil
}

// OrgRegistry is the TOML-declared set of organization identities
type OrgRegistry struct {
	Organizations []Organization `toml:"organization"`
}

// Validate checks the registry has at least one valid, unique entry
func (x *OrgRegistry) Validate() error {
	if len(x.Organizations) == 0 {
		return goerr.New("at least one organization is required")
	}
	seen := make(map[types.OrgMSP]bool)
	for i := range x.Organizations {
		if err := x.Organizations[i].Validate(); err != nil {
			return err
		}
		org := types.NormalizeOrgMSP(x.Organizations[i].MSPID)
		if seen[org] {
			return goerr.New("duplicate organization entry", goerr.V(types.OrgKey, org))
		}
		seen[org] = true
	}
	return nil
}

// Identities converts the registry into Fabric identities keyed by MSP ID
func (x *OrgRegistry) Identities() map[types.OrgMSP]fabric.Identity {
	identities := make(map[types.OrgMSP]fabric.Identity, len(x.Organizations))
	for i := range x.Organizations {
		entry := &x.Organizations[i]
		org := types.NormalizeOrgMSP(entry.MSPID)
		identities[org] = fabric.Identity{
			MSPID:        org,
			PeerEndpoint: entry.PeerEndpoint,
			GatewayPeer:  entry.GatewayPeer,
			TLSCertFile:  entry.TLSCertFile,
			CertFile:     entry.CertFile,
			KeyFile:      entry.KeyFile,
		}
	}
	return identities
}

// LoadOrgRegistry loads the organization registry from a TOML file
func LoadOrgRegistry(path string) (*OrgRegistry, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read organization registry", goerr.V("path", path))
	}

	var registry OrgRegistry
	if err := toml.Unmarshal(data, &registry); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML registry", goerr.V("path", path))
	}

	if err := registry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "organization registry validation failed", goerr.V("path", path))
	}

	return &registry, nil
}
