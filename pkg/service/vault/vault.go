package vault

import (
	"context"
	"encoding/base64"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// Client encrypts and decrypts payloads through the Vault transit engine.
// The encryption key never leaves Vault; the gateway handles only opaque
// ciphertext tokens.
type Client struct {
	api     *vaultapi.Client
	keyName string
}

// New creates a Vault transit client
func New(addr, token, keyName string) (*Client, error) {
	if addr == "" || token == "" {
		return nil, goerr.Wrap(types.ErrValidation, "vault address and token are required")
	}
	if keyName == "" {
		return nil, goerr.Wrap(types.ErrValidation, "vault transit key name is required")
	}

	cfg := vaultapi.DefaultConfig()
	cfg.Address = addr
	api, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create vault client")
	}
	api.SetToken(token)

	return &Client{api: api, keyName: keyName}, nil
}

func (x *Client) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	secret, err := x.api.Logical().WriteWithContext(ctx, "transit/encrypt/"+x.keyName, map[string]interface{}{
		"plaintext": base64.StdEncoding.EncodeToString(plaintext),
	})
	if err != nil {
		return "", goerr.Wrap(types.ErrUpstreamUnavailable, "transit encryption failed", goerr.V("cause", err.Error()))
	}

	ciphertext, ok := secret.Data["ciphertext"].(string)
	if !ok {
		return "", goerr.Wrap(types.ErrUpstreamUnavailable, "transit returned no ciphertext")
	}
	return ciphertext, nil
}

func (x *Client) Decrypt(ctx context.Context, ciphertext string) ([]byte, error) {
	secret, err := x.api.Logical().WriteWithContext(ctx, "transit/decrypt/"+x.keyName, map[string]interface{}{
		"ciphertext": ciphertext,
	})
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "transit decryption failed", goerr.V("cause", err.Error()))
	}

	encoded, ok := secret.Data["plaintext"].(string)
	if !ok {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "transit returned no plaintext")
	}
	plaintext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "transit returned broken plaintext encoding")
	}
	return plaintext, nil
}
