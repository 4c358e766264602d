// Package sign wraps the ed25519 signature scheme used to attest the
// published reserve commitment.
package sign

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/ed25519"
)

const (
	// PrivateKeySize is the size of a serialized private key in bytes.
	PrivateKeySize = 64
	// PublicKeySize is the size of a serialized public key in bytes.
	PublicKeySize = 32
	// SignatureSize is the size of a signature in bytes.
	SignatureSize = 64
)

// PrivateKey is the private key material used to issue attestations.
type PrivateKey ed25519.PrivateKey

// PublicKey is the verification half of a signing key pair.
type PublicKey ed25519.PublicKey

// GenerateKey generates a fresh key pair using the given source of
// randomness, or crypto/rand's Reader if rnd is nil.
func GenerateKey(rnd io.Reader) (PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	_, sk, err := ed25519.GenerateKey(rnd)
	return PrivateKey(sk), err
}

// Sign returns the signature of the message under key.
func (key PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(key), message)
}

// Public returns the public key corresponding to key.
func (key PrivateKey) Public() (PublicKey, bool) {
	pk, ok := ed25519.PrivateKey(key).Public().(ed25519.PublicKey)
	return PublicKey(pk), ok
}

// Verify reports whether sig is a valid signature of message under pk.
func (pk PublicKey) Verify(message, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pk), message, sig)
}
