package merkletree

import (
	"encoding/hex"

	"github.com/msakuta/merkle-tree/crypto"
	"github.com/msakuta/merkle-tree/crypto/sign"
	"github.com/msakuta/merkle-tree/utils"
)

// An Attestation is a signed commitment to the tree root, published so
// auditors can hold the service to one specific root per reporting
// period. The signature covers the raw root digest concatenated with the
// issuance timestamp.
type Attestation struct {
	Root      string `json:"root"`
	IssuedAt  int64  `json:"issued_at"`
	Signature string `json:"signature"`
}

// Attest signs the tree's root with key at the given unix timestamp.
// It returns ErrEmptyTree if the tree has no root to commit to.
func (m *MerkleTree) Attest(key sign.PrivateKey, issuedAt int64) (*Attestation, error) {
	if m.root == nil {
		return nil, ErrEmptyTree
	}
	rootHash := m.root.hash()
	sig := key.Sign(attestationBytes(rootHash, issuedAt))
	return &Attestation{
		Root:      crypto.EncodeDigest(rootHash),
		IssuedAt:  issuedAt,
		Signature: hex.EncodeToString(sig),
	}, nil
}

// Verify reports whether the attestation's signature is valid under pk.
func (a *Attestation) Verify(pk sign.PublicKey) bool {
	rootHash, err := hex.DecodeString(a.Root)
	if err != nil || len(rootHash) != crypto.HashSizeByte {
		return false
	}
	sig, err := hex.DecodeString(a.Signature)
	if err != nil {
		return false
	}
	return pk.Verify(attestationBytes(rootHash, a.IssuedAt), sig)
}

func attestationBytes(rootHash []byte, issuedAt int64) []byte {
	b := make([]byte, 0, len(rootHash)+8)
	b = append(b, rootHash...)
	b = append(b, utils.LongToBytes(issuedAt)...)
	return b
}
