package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// HashSizeByte is the size of the hash output in bytes.
	HashSizeByte = sha256.Size
	// HashID identifies the used hash as a string.
	HashID = "SHA-256"
)

// TaggedHash returns SHA-256(tag || tag || input), computed in a single
// hash invocation. Hashing the tag in twice directly ahead of the payload
// domain-separates digests computed for different purposes (e.g. leaf vs.
// branch nodes) even over identical raw inputs.
// The passed input won't be mutated.
func TaggedHash(tag string, input []byte) []byte {
	h := sha256.New()
	h.Write([]byte(tag))
	h.Write([]byte(tag))
	h.Write(input)
	return h.Sum(nil)
}

// EncodeDigest returns the lowercase hexadecimal encoding of digest,
// which is the form all digests take on the wire.
func EncodeDigest(digest []byte) string {
	return hex.EncodeToString(digest)
}
