package merkletree

// A merkleNode is either a leaf committing to one record or a branch
// committing to its two children. Node hashes are computed at
// construction time and never mutated afterwards. Every node is owned
// exclusively by its tree; a duplicated odd node is the only case where
// two branch slots refer to the same child.
type merkleNode interface {
	isLeaf() bool
	hash() []byte
}

type leafNode struct {
	record   Record
	nodeHash []byte
}

type branchNode struct {
	leftChild  merkleNode
	rightChild merkleNode
	nodeHash   []byte
}

var _ merkleNode = (*leafNode)(nil)
var _ merkleNode = (*branchNode)(nil)

func (n *leafNode) isLeaf() bool {
	return true
}

func (n *branchNode) isLeaf() bool {
	return false
}

func (n *leafNode) hash() []byte {
	return n.nodeHash
}

func (n *branchNode) hash() []byte {
	return n.nodeHash
}
