package gpg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// newSigner generates a throwaway EdDSA key and writes its armored public half to dir
func newSigner(t *testing.T, dir string) (*openpgp.Entity, string) {
	t.Helper()

	entity, err := openpgp.NewEntity("Build Bot", "test", "build@example.com", &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
	})
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("Failed to create armor writer: %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("Failed to serialize public key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close armor writer: %v", err)
	}

	keyPath := filepath.Join(dir, "pubring.asc")
	if err := os.WriteFile(keyPath, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
	return entity, keyPath
}

func writeSigned(t *testing.T, dir string, signer *openpgp.Entity, content string, armored bool) (string, string) {
	t.Helper()

	dataPath := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(dataPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	var sig bytes.Buffer
	var err error
	if armored {
		err = openpgp.ArmoredDetachSign(&sig, signer, strings.NewReader(content), nil)
	} else {
		err = openpgp.DetachSign(&sig, signer, strings.NewReader(content), nil)
	}
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	sigPath := dataPath + ".asc"
	if err := os.WriteFile(sigPath, sig.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	return dataPath, sigPath
}

func TestVerifier_VerifySignatureFromFile_Armored(t *testing.T) {
	dir := t.TempDir()
	signer, keyPath := newSigner(t, dir)
	dataPath, sigPath := writeSigned(t, dir, signer, "jsmin==3.0.1\n", true)

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if err := v.VerifySignatureFromFile(dataPath, sigPath); err != nil {
		t.Errorf("VerifySignatureFromFile() error = %v", err)
	}
}

func TestVerifier_VerifySignatureFromFile_Binary(t *testing.T) {
	dir := t.TempDir()
	signer, keyPath := newSigner(t, dir)
	dataPath, sigPath := writeSigned(t, dir, signer, "pyserial\n", false)

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if err := v.VerifySignatureFromFile(dataPath, sigPath); err != nil {
		t.Errorf("VerifySignatureFromFile() error = %v", err)
	}
}

func TestVerifier_VerifySignatureFromFile_Tampered(t *testing.T) {
	dir := t.TempDir()
	signer, keyPath := newSigner(t, dir)
	dataPath, sigPath := writeSigned(t, dir, signer, "jsmin==3.0.1\n", true)

	if err := os.WriteFile(dataPath, []byte("evil-package\n"), 0600); err != nil {
		t.Fatal(err)
	}

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}

	err := v.VerifySignatureFromFile(dataPath, sigPath)
	if err == nil {
		t.Fatal("Expected verification failure for tampered file")
	}
	if !strings.Contains(err.Error(), "signature verification failed") {
		t.Errorf("Expected 'signature verification failed' error, got: %v", err)
	}
}

func TestVerifier_VerifySignatureFromFile_UnknownSigner(t *testing.T) {
	dir := t.TempDir()
	_, keyPath := newSigner(t, dir)
	other, _ := newSigner(t, t.TempDir())
	dataPath, sigPath := writeSigned(t, dir, other, "jsmin\n", true)

	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if err := v.VerifySignatureFromFile(dataPath, sigPath); err == nil {
		t.Error("Expected verification failure for a key outside the keyring")
	}
}

func TestVerifier_VerifySignatureFromFile_NoKeys(t *testing.T) {
	v := NewVerifier()

	err := v.VerifySignatureFromFile("/tmp/file", "/tmp/file.asc")
	if err == nil || !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("Expected 'no GPG keys imported' error, got: %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_Garbage(t *testing.T) {
	v := NewVerifier()
	keyPath := filepath.Join(t.TempDir(), "garbage.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.ImportKeyFromFile(keyPath); err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}
}
