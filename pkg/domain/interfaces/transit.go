package interfaces

import "context"

// Transit is the centralized encryption service. It holds the only copy of
// the encryption key; the gateway only ever sees opaque ciphertext tokens.
type Transit interface {
	Encrypt(ctx context.Context, plaintext []byte) (string, error)
	Decrypt(ctx context.Context, ciphertext string) ([]byte, error)
}
