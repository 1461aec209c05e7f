package memory

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

const transitPrefix = "mem:v1:"

// Transit is an in-memory stand-in for the transit encryption service. It is
// an encoding, not encryption; its only job is to give development mode and
// tests the same opaque-token round trip the real service has.
type Transit struct{}

// NewTransit creates the in-memory transit service
func NewTransit() *Transit {
	return &Transit{}
}

func (x *Transit) Encrypt(ctx context.Context, plaintext []byte) (string, error) {
	return transitPrefix + base64.StdEncoding.EncodeToString(plaintext), nil
}

func (x *Transit) Decrypt(ctx context.Context, ciphertext string) ([]byte, error) {
	if !strings.HasPrefix(ciphertext, transitPrefix) {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "unrecognized ciphertext token")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ciphertext, transitPrefix))
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "broken ciphertext token")
	}
	return data, nil
}
