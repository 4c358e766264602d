package merkletree

import (
	"errors"
	"fmt"

	"github.com/msakuta/merkle-tree/crypto"
)

var (
	// ErrEmptyTree indicates that the requested operation needs a tree
	// built from at least one record.
	ErrEmptyTree = errors.New("[merkletree] Empty tree")
	// ErrNotFound indicates that no leaf record satisfied the search
	// predicate. This is an expected outcome, not a defect.
	ErrNotFound = errors.New("[merkletree] No matching record")
)

// A Record is the payload committed to by a single leaf: a caller-supplied
// user identifier and the user's balance. Records are immutable once
// placed in a leaf. Identifier uniqueness is the caller's responsibility;
// the tree does not validate it.
type Record struct {
	ID      uint32
	Balance uint32
}

// Serialize returns the canonical byte encoding of the record,
// "(id,balance)". The published root is only reproducible by third
// parties if every implementation serializes records this exact way.
func (r Record) Serialize() []byte {
	return []byte(fmt.Sprintf("(%d,%d)", r.ID, r.Balance))
}

// A MerkleTree is the built commitment structure over an ordered record
// set. The zero-record tree has a nil root and reports ErrEmptyTree from
// its accessors. After Build returns, the tree is immutable and safe for
// concurrent readers.
type MerkleTree struct {
	leafTag   string
	branchTag string
	root      merkleNode
	numLeaves int
}

// Build constructs the commitment tree over records, in input order.
//
// Each record becomes one leaf hashed with leafTag. Levels are then
// reduced pairwise ((n0,n1), (n2,n3), ...) until a single node remains;
// a level with an odd count pairs its last node with itself. A branch
// hash is TaggedHash(branchTag, leftHash || rightHash) over the raw
// 32-byte child digests.
//
// An empty record list yields a rootless tree, not an error.
func Build(leafTag, branchTag string, records []Record) *MerkleTree {
	m := &MerkleTree{
		leafTag:   leafTag,
		branchTag: branchTag,
		numLeaves: len(records),
	}
	if len(records) == 0 {
		return m
	}

	level := make([]merkleNode, len(records))
	for i, r := range records {
		level[i] = &leafNode{
			record:   r,
			nodeHash: crypto.TaggedHash(leafTag, r.Serialize()),
		}
	}

	for len(level) > 1 {
		next := make([]merkleNode, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left // odd count: last node paired with itself
			if i+1 < len(level) {
				right = level[i+1]
			}
			combined := make([]byte, 0, 2*crypto.HashSizeByte)
			combined = append(combined, left.hash()...)
			combined = append(combined, right.hash()...)
			next = append(next, &branchNode{
				leftChild:  left,
				rightChild: right,
				nodeHash:   crypto.TaggedHash(branchTag, combined),
			})
		}
		level = next
	}

	m.root = level[0]
	return m
}

// Root returns the root hash encoded as lowercase hexadecimal, or
// ErrEmptyTree if the tree was built from zero records.
func (m *MerkleTree) Root() (string, error) {
	if m.root == nil {
		return "", ErrEmptyTree
	}
	return crypto.EncodeDigest(m.root.hash()), nil
}

// NumLeaves returns the number of records the tree commits to.
func (m *MerkleTree) NumLeaves() int {
	return m.numLeaves
}

// Search locates the first record satisfying pred, traversing the tree
// depth-first, pre-order, left child before right. Along with the record
// it returns the traversal path taken from the root; see TraversePath for
// the exact path contract. When the root itself is a matching leaf (a
// one-record tree), the returned path is empty.
//
// Search returns ErrNotFound if no leaf matches and ErrEmptyTree on a
// rootless tree. It never mutates the tree, so any number of searches may
// run concurrently. The predicate must be pure for the returned path to
// be meaningful; that is the caller's obligation.
func (m *MerkleTree) Search(pred func(Record) bool) (Record, TraversePath, error) {
	if m.root == nil {
		return Record{}, nil, ErrEmptyTree
	}
	var path TraversePath
	record, found := searchNode(m.root, pred, &path)
	if !found {
		return Record{}, nil, ErrNotFound
	}
	// decouple the returned path from the scratch buffer
	final := make(TraversePath, len(path))
	copy(final, path)
	return record, final, nil
}

// searchNode recurses into n, extending path on the way down and
// truncating it again on backtrack. path always describes the descent
// from the root to n's parent slot.
func searchNode(n merkleNode, pred func(Record) bool, path *TraversePath) (Record, bool) {
	if n.isLeaf() {
		leaf := n.(*leafNode)
		if pred(leaf.record) {
			return leaf.record, true
		}
		return Record{}, false
	}

	branch := n.(*branchNode)
	*path = append(*path, PathStep{Hash: branch.nodeHash, Direction: Left})
	if record, found := searchNode(branch.leftChild, pred, path); found {
		return record, true
	}
	*path = (*path)[:len(*path)-1]

	*path = append(*path, PathStep{Hash: branch.nodeHash, Direction: Right})
	if record, found := searchNode(branch.rightChild, pred, path); found {
		return record, true
	}
	*path = (*path)[:len(*path)-1]

	return Record{}, false
}
