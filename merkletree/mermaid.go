package merkletree

import (
	"fmt"
	"strings"

	"github.com/msakuta/merkle-tree/crypto"
)

// labelLen is the number of hex digits of a node hash shown in diagrams.
const labelLen = 8

// Mermaid renders the tree as a mermaid "graph TD" flowchart, a debugging
// aid for inspecting the node/child relationships. Nodes are labeled with
// a hash prefix; leaves additionally show their record. A duplicated odd
// node is drawn once per branch slot.
func (m *MerkleTree) Mermaid() string {
	var b strings.Builder
	b.WriteString("graph TD;\n")
	if m.root != nil {
		w := &mermaidWriter{b: &b}
		w.walk(m.root)
	}
	return b.String()
}

type mermaidWriter struct {
	b    *strings.Builder
	next int
}

func (w *mermaidWriter) walk(n merkleNode) int {
	id := w.next
	w.next++
	label := crypto.EncodeDigest(n.hash())[:labelLen]
	if n.isLeaf() {
		r := n.(*leafNode).record
		fmt.Fprintf(w.b, "    N%d[\"%s<br>User ID: %d<br>Balance: %d\"];\n",
			id, label, r.ID, r.Balance)
		return id
	}
	fmt.Fprintf(w.b, "    N%d[\"%s\"];\n", id, label)
	branch := n.(*branchNode)
	left := w.walk(branch.leftChild)
	right := w.walk(branch.rightChild)
	fmt.Fprintf(w.b, "    N%d --> N%d;\n", id, left)
	fmt.Fprintf(w.b, "    N%d --> N%d;\n", id, right)
	return id
}
