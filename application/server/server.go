// Package server implements the proof-of-reserve commitment server.
//
// The server builds the Merkle tree exactly once at startup, from the
// balance registry named in its configuration, and then exposes
// read-only endpoints over it: the published root, a per-user inclusion
// path, a signed root attestation and a diagram rendering. Because the
// tree never changes after startup, the handlers share it without any
// locking.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/msakuta/merkle-tree/application"
	"github.com/msakuta/merkle-tree/merkletree"
	"github.com/msakuta/merkle-tree/storage/balancedb"
)

// A ReserveServer serves the published reserve commitment over HTTP.
type ReserveServer struct {
	*application.ServerBase
	tree        *merkletree.MerkleTree
	attestation *merkletree.Attestation
}

// A UserProof is the wire form of an inclusion path lookup: the user's
// balance and the traversal path from the root to the user's leaf, each
// step a [hash_hex, direction] pair in root-to-leaf order.
type UserProof struct {
	UserBalance uint32                  `json:"user_balance"`
	Proof       merkletree.TraversePath `json:"proof"`
}

// New creates a reserve server from the given configuration: it scans
// the balance registry, builds the commitment tree over the records in
// id order and signs the root. The registry is closed again before New
// returns; the serving path runs entirely off the in-memory tree.
func New(conf *Config) (*ReserveServer, error) {
	db, err := balancedb.Open(conf.RegistryPath)
	if err != nil {
		return nil, err
	}
	records, err := db.Records()
	db.Close()
	if err != nil {
		return nil, err
	}

	tree := merkletree.Build(conf.Policies.LeafTag, conf.Policies.BranchTag, records)

	server := &ReserveServer{
		ServerBase: application.NewServerBase(conf.Logger, "Listening"),
		tree:       tree,
	}

	if root, err := tree.Root(); err == nil {
		server.attestation, err = tree.Attest(conf.SignKey(), time.Now().Unix())
		if err != nil {
			return nil, err
		}
		server.Logger().Info("Commitment built",
			"records", tree.NumLeaves(),
			"root", root)
	} else {
		server.Logger().Warn("Registry is empty; no commitment to publish")
	}

	return server, nil
}

// Run starts listening on all configured addresses.
func (server *ReserveServer) Run(addrs []*application.ServerAddress) error {
	handler := server.Handler()
	for _, addr := range addrs {
		if err := server.ListenAndHandle(addr, handler); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the server's route table.
func (server *ReserveServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /proof", server.handleRoot)
	mux.HandleFunc("GET /proof/mermaid", server.handleMermaid)
	mux.HandleFunc("GET /proof/attestation", server.handleAttestation)
	mux.HandleFunc("GET /proof/{user}", server.handleUserProof)
	return mux
}

// handleRoot serves the published root hash as plain text.
func (server *ReserveServer) handleRoot(w http.ResponseWriter, req *http.Request) {
	root, err := server.tree.Root()
	if err != nil {
		http.Error(w, "No commitment published", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, root)
}

// handleUserProof serves the inclusion path for one user. Malformed
// identifiers are rejected before the tree is consulted.
func (server *ReserveServer) handleUserProof(w http.ResponseWriter, req *http.Request) {
	id64, err := strconv.ParseUint(req.PathValue("user"), 10, 32)
	if err != nil {
		server.Logger().Warn("Malformed user id",
			"user", req.PathValue("user"),
			"address", req.RemoteAddr)
		http.Error(w, "Malformed user id", http.StatusBadRequest)
		return
	}
	id := uint32(id64)

	record, path, err := server.tree.Search(func(r merkletree.Record) bool {
		return r.ID == id
	})
	if err != nil {
		// ErrNotFound and ErrEmptyTree both mean "no such record"
		http.Error(w, "No record for user", http.StatusNotFound)
		return
	}

	server.writeJSON(w, &UserProof{
		UserBalance: record.Balance,
		Proof:       path,
	})
}

// handleAttestation serves the signed root.
func (server *ReserveServer) handleAttestation(w http.ResponseWriter, req *http.Request) {
	if server.attestation == nil {
		http.Error(w, "No commitment published", http.StatusServiceUnavailable)
		return
	}
	server.writeJSON(w, server.attestation)
}

// handleMermaid serves a mermaid flowchart of the tree, a debugging aid.
func (server *ReserveServer) handleMermaid(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, server.tree.Mermaid())
}

func (server *ReserveServer) writeJSON(w http.ResponseWriter, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		server.Logger().Error(err.Error())
		http.Error(w, "Encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf)
}
