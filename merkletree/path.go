package merkletree

import (
	"encoding/json"

	"github.com/msakuta/merkle-tree/crypto"
)

// Direction records which child was followed at an ancestor during a
// descent from the root.
type Direction byte

const (
	// Left means the left child was followed.
	Left Direction = 0
	// Right means the right child was followed.
	Right Direction = 1
)

// A PathStep is one step of a traversal path: the hash of the ancestor
// node that was visited and the direction taken from it. The hash slice
// is shared with the tree and must not be modified.
type PathStep struct {
	Hash      []byte
	Direction Direction
}

// A TraversePath is the ordered sequence of steps taken from the root
// down to a matched leaf, in root-to-leaf order.
//
// Each step carries the visited ancestor's own hash, not the sibling's
// hash. A holder can use it to confirm the identity of the nodes walked
// in the published tree; it does not by itself allow recomputing the root
// from the leaf alone, which would require the sibling-hash form.
type TraversePath []PathStep

// MarshalJSON encodes the step as a [hash_hex, direction] pair, with
// direction 0 for Left and 1 for Right.
func (s PathStep) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{
		crypto.EncodeDigest(s.Hash),
		byte(s.Direction),
	})
}
