package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msakuta/merkle-tree/application"
	"github.com/msakuta/merkle-tree/crypto/sign"
	"github.com/msakuta/merkle-tree/merkletree"
	"github.com/msakuta/merkle-tree/storage/balancedb"
)

const (
	testLeafTag   = "ProofOfReserve_Leaf"
	testBranchTag = "ProofOfReserve_Branch"
	testRoot5     = "857f9bdfbbee9207675cbde460c99682015758111b8f9aad7193832619fb1782"
)

func testRecords5() []merkletree.Record {
	return []merkletree.Record{
		{ID: 1, Balance: 1111}, {ID: 2, Balance: 2222}, {ID: 3, Balance: 3333}, {ID: 4, Balance: 4444}, {ID: 5, Balance: 5555},
	}
}

func testServer(t *testing.T, records []merkletree.Record) (*ReserveServer, sign.PublicKey) {
	t.Helper()
	key, err := sign.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	pk, _ := key.Public()

	tree := merkletree.Build(testLeafTag, testBranchTag, records)
	server := &ReserveServer{
		ServerBase: application.NewServerBase(
			&application.LoggerConfig{Environment: "production"}, "Listening"),
		tree: tree,
	}
	if tree.NumLeaves() > 0 {
		server.attestation, err = tree.Attest(key, 1700000000)
		if err != nil {
			t.Fatal(err)
		}
	}
	return server, pk
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, string(body)
}

func TestRootEndpoint(t *testing.T) {
	server, _ := testServer(t, testRecords5())
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, body := get(t, ts, "/proof")
	if status != http.StatusOK {
		t.Fatal("Expected 200, got", status)
	}
	if body != testRoot5 {
		t.Error("Root mismatch",
			"expected", testRoot5,
			"got", body)
	}
}

func TestUserProofEndpoint(t *testing.T) {
	server, _ := testServer(t, testRecords5())
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, body := get(t, ts, "/proof/3")
	if status != http.StatusOK {
		t.Fatal("Expected 200, got", status, body)
	}

	var proof struct {
		UserBalance uint32          `json:"user_balance"`
		Proof       [][]interface{} `json:"proof"`
	}
	if err := json.Unmarshal([]byte(body), &proof); err != nil {
		t.Fatal(err)
	}
	if proof.UserBalance != 3333 {
		t.Error("Wrong balance", proof.UserBalance)
	}
	if len(proof.Proof) != 3 {
		t.Fatal("Expected a 3-step proof, got", len(proof.Proof))
	}
	if proof.Proof[0][0] != testRoot5 || proof.Proof[0][1] != float64(0) {
		t.Error("First step must be the root with direction 0, got", proof.Proof[0])
	}
}

func TestUserProofMalformedID(t *testing.T) {
	server, _ := testServer(t, testRecords5())
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	for _, user := range []string{"abc", "-1", "4294967296", "1.5"} {
		status, _ := get(t, ts, "/proof/"+user)
		if status != http.StatusBadRequest {
			t.Error("Expected 400 for user", user, "got", status)
		}
	}
}

func TestUserProofNotFound(t *testing.T) {
	server, _ := testServer(t, testRecords5())
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, _ := get(t, ts, "/proof/99")
	if status != http.StatusNotFound {
		t.Error("Expected 404, got", status)
	}
}

func TestAttestationEndpoint(t *testing.T) {
	server, pk := testServer(t, testRecords5())
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, body := get(t, ts, "/proof/attestation")
	if status != http.StatusOK {
		t.Fatal("Expected 200, got", status)
	}
	var att merkletree.Attestation
	if err := json.Unmarshal([]byte(body), &att); err != nil {
		t.Fatal(err)
	}
	if att.Root != testRoot5 {
		t.Error("Attestation over the wrong root", att.Root)
	}
	if !att.Verify(pk) {
		t.Error("Served attestation does not verify")
	}
}

func TestMermaidEndpoint(t *testing.T) {
	server, _ := testServer(t, testRecords5())
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, body := get(t, ts, "/proof/mermaid")
	if status != http.StatusOK {
		t.Fatal("Expected 200, got", status)
	}
	if !strings.HasPrefix(body, "graph TD;") {
		t.Error("Expected a mermaid flowchart, got", body[:min(len(body), 40)])
	}
}

func TestEmptyTreeEndpoints(t *testing.T) {
	server, _ := testServer(t, nil)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	if status, _ := get(t, ts, "/proof"); status != http.StatusServiceUnavailable {
		t.Error("Expected 503 for the root of an empty tree, got", status)
	}
	if status, _ := get(t, ts, "/proof/1"); status != http.StatusNotFound {
		t.Error("Expected 404 for a lookup in an empty tree, got", status)
	}
	if status, _ := get(t, ts, "/proof/attestation"); status != http.StatusServiceUnavailable {
		t.Error("Expected 503 for the attestation of an empty tree, got", status)
	}
}

func TestSingleRecordProofIsEmptyArray(t *testing.T) {
	server, _ := testServer(t, []merkletree.Record{{ID: 42, Balance: 99}})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, body := get(t, ts, "/proof/42")
	if status != http.StatusOK {
		t.Fatal("Expected 200, got", status)
	}
	if !strings.Contains(body, `"proof":[]`) {
		t.Error("Single-record proof must be an empty array, got", body)
	}
}

// End-to-end: seed a registry on disk and construct the server the way
// the run command does.
func TestNewFromRegistry(t *testing.T) {
	dir := t.TempDir()
	registryPath := filepath.Join(dir, "registry")

	db, err := balancedb.Open(registryPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Seed(testRecords5()); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	key, err := sign.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	conf := NewConfig(nil,
		&application.LoggerConfig{Environment: "production"},
		registryPath,
		NewPolicies(testLeafTag, testBranchTag, "sign.priv"))
	conf.Policies.signKey = key

	server, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	status, body := get(t, ts, "/proof")
	if status != http.StatusOK || body != testRoot5 {
		t.Error("Server built from registry serves the wrong root:", status, body)
	}
}
