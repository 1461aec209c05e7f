package fabric

import (
	"context"
	"crypto/x509"
	"os"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/hash"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/logging"
)

// Identity holds the connection material for one organization. Every ledger
// call connects as exactly one of these; there is no shared or default
// identity.
type Identity struct {
	MSPID        types.OrgMSP
	PeerEndpoint string
	GatewayPeer  string
	TLSCertFile  string
	CertFile     string
	KeyFile      string
}

// Validate checks the identity is complete
func (x *Identity) Validate() error {
	if err := x.MSPID.Validate(); err != nil {
		return err
	}
	if x.PeerEndpoint == "" {
		return goerr.Wrap(types.ErrValidation, "peer endpoint is required", goerr.V(types.OrgKey, x.MSPID))
	}
	if x.CertFile == "" || x.KeyFile == "" {
		return goerr.Wrap(types.ErrValidation, "client certificate and key are required", goerr.V(types.OrgKey, x.MSPID))
	}
	return nil
}

// Config configures the Fabric gateway client
type Config struct {
	Channel    string
	Chaincode  string
	Identities map[types.OrgMSP]Identity
}

// Client talks to the custody chaincode through the Fabric Gateway. A fresh
// gateway connection is opened per call and always closed on every exit
// path, so no session outlives a request.
type Client struct {
	cfg Config
}

// New creates a Fabric ledger client
func New(cfg Config) (*Client, error) {
	if cfg.Channel == "" || cfg.Chaincode == "" {
		return nil, goerr.Wrap(types.ErrValidation, "channel and chaincode names are required")
	}
	if len(cfg.Identities) == 0 {
		return nil, goerr.Wrap(types.ErrValidation, "at least one ledger identity is required")
	}
	for _, id := range cfg.Identities {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}
	return &Client{cfg: cfg}, nil
}

type session struct {
	conn     *grpc.ClientConn
	gateway  *client.Gateway
	contract *client.Contract
}

func (x *session) close(ctx context.Context) {
	if x.gateway != nil {
		if err := x.gateway.Close(); err != nil {
			logging.From(ctx).Warn("failed to close gateway", "error", err)
		}
	}
	if x.conn != nil {
		if err := x.conn.Close(); err != nil {
			logging.From(ctx).Warn("failed to close grpc connection", "error", err)
		}
	}
}

func (c *Client) connect(org types.OrgMSP) (*session, error) {
	id, ok := c.cfg.Identities[org]
	if !ok {
		return nil, goerr.Wrap(types.ErrValidation, "no ledger identity configured for organization", goerr.V(types.OrgKey, org))
	}

	creds, err := transportCredentials(&id)
	if err != nil {
		return nil, err
	}
	conn, err := grpc.NewClient(id.PeerEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "failed to dial peer", goerr.V(types.OrgKey, org))
	}

	certPEM, err := os.ReadFile(id.CertFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read client certificate", goerr.V(types.OrgKey, org))
	}
	cert, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse client certificate", goerr.V(types.OrgKey, org))
	}
	x509ID, err := identity.NewX509Identity(string(id.MSPID), cert)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build X.509 identity", goerr.V(types.OrgKey, org))
	}

	keyPEM, err := os.ReadFile(id.KeyFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read private key", goerr.V(types.OrgKey, org))
	}
	key, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse private key", goerr.V(types.OrgKey, org))
	}
	sign, err := identity.NewPrivateKeySign(key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build signer", goerr.V(types.OrgKey, org))
	}

	gateway, err := client.Connect(
		x509ID,
		client.WithSign(sign),
		client.WithHash(hash.SHA256),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(5*time.Second),
		client.WithEndorseTimeout(15*time.Second),
		client.WithSubmitTimeout(5*time.Second),
		client.WithCommitStatusTimeout(time.Minute),
	)
	if err != nil {
		_ = conn.Close()
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "failed to connect to gateway", goerr.V(types.OrgKey, org))
	}

	contract := gateway.GetNetwork(c.cfg.Channel).GetContract(c.cfg.Chaincode)
	return &session{conn: conn, gateway: gateway, contract: contract}, nil
}

func transportCredentials(id *Identity) (credentials.TransportCredentials, error) {
	if id.TLSCertFile == "" {
		return insecure.NewCredentials(), nil
	}
	pem, err := os.ReadFile(id.TLSCertFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read TLS root certificate", goerr.V(types.OrgKey, id.MSPID))
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, goerr.Wrap(types.ErrValidation, "no certificate found in TLS root file", goerr.V(types.OrgKey, id.MSPID))
	}
	return credentials.NewClientTLSFromCert(pool, id.GatewayPeer), nil
}

// submit submits a transaction as org and discards the payload
func (c *Client) submit(ctx context.Context, org types.OrgMSP, op string, args ...string) error {
	sess, err := c.connect(org)
	if err != nil {
		return err
	}
	defer sess.close(ctx)

	if _, err := sess.contract.SubmitTransaction(op, args...); err != nil {
		return mapChaincodeError(err, op)
	}
	return nil
}

// evaluate evaluates a read-only transaction as org and returns the payload
func (c *Client) evaluate(ctx context.Context, org types.OrgMSP, op string, args ...string) ([]byte, error) {
	sess, err := c.connect(org)
	if err != nil {
		return nil, err
	}
	defer sess.close(ctx)

	payload, err := sess.contract.EvaluateTransaction(op, args...)
	if err != nil {
		return nil, mapChaincodeError(err, op)
	}
	return payload, nil
}
