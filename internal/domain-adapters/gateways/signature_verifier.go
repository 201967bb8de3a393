package gateways

import (
	"fmt"

	"github.com/ochairo/prebuild/internal/external-adapters/gpg"
)

// SignatureVerifier wraps the external GPG adapter to implement the domain gateway interface.
// Each call loads a fresh keyring so keys never leak between manifests.
type SignatureVerifier struct{}

// NewSignatureVerifier creates a new signature verifier gateway
func NewSignatureVerifier() *SignatureVerifier {
	return &SignatureVerifier{}
}

// VerifyFileSignature checks sigPath as a detached signature of filePath made by a key in keyringPath
func (s *SignatureVerifier) VerifyFileSignature(keyringPath, filePath, sigPath string) error {
	verifier := gpg.NewVerifier()
	if err := verifier.ImportKeyFromFile(keyringPath); err != nil {
		return fmt.Errorf("failed to import keyring %s: %w", keyringPath, err)
	}

	if err := verifier.VerifySignatureFromFile(filePath, sigPath); err != nil {
		return fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return nil
}
