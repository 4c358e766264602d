package server

import (
	"path/filepath"
	"testing"

	"github.com/msakuta/merkle-tree/application"
	"github.com/msakuta/merkle-tree/crypto/sign"
	"github.com/msakuta/merkle-tree/utils"
)

func writeTestConfig(t *testing.T, dir string, policies *Policies) string {
	t.Helper()
	file := filepath.Join(dir, "config.toml")
	conf := NewConfig(
		[]*application.ServerAddress{
			{Address: "tcp://127.0.0.1:8000"},
		},
		&application.LoggerConfig{Environment: "production"},
		"registry",
		policies)
	if err := application.SaveConfig(file, conf); err != nil {
		t.Fatal(err)
	}
	return file
}

func writeTestSignKey(t *testing.T, dir string) {
	t.Helper()
	key, err := sign.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := utils.WriteFile(filepath.Join(dir, "sign.priv"), key, 0600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeTestSignKey(t, dir)
	file := writeTestConfig(t, dir,
		NewPolicies("ProofOfReserve_Leaf", "ProofOfReserve_Branch", "sign.priv"))

	conf, err := LoadConfig(file)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Policies.LeafTag != "ProofOfReserve_Leaf" {
		t.Error("Leaf tag not preserved:", conf.Policies.LeafTag)
	}
	if len(conf.SignKey()) != sign.PrivateKeySize {
		t.Error("Signing key not loaded")
	}
	if conf.RegistryPath != filepath.Join(dir, "registry") {
		t.Error("Registry path not resolved against config dir:", conf.RegistryPath)
	}
	if len(conf.Addresses) != 1 || conf.Addresses[0].Address != "tcp://127.0.0.1:8000" {
		t.Error("Addresses not preserved")
	}
}

func TestLoadConfigRejectsEqualTags(t *testing.T) {
	dir := t.TempDir()
	writeTestSignKey(t, dir)
	file := writeTestConfig(t, dir,
		NewPolicies("ProofOfReserve", "ProofOfReserve", "sign.priv"))

	if _, err := LoadConfig(file); err == nil {
		t.Error("Equal leaf and branch tags must be rejected")
	}
}

func TestLoadConfigRejectsEmptyTag(t *testing.T) {
	dir := t.TempDir()
	writeTestSignKey(t, dir)
	file := writeTestConfig(t, dir,
		NewPolicies("", "ProofOfReserve_Branch", "sign.priv"))

	if _, err := LoadConfig(file); err == nil {
		t.Error("Empty leaf tag must be rejected")
	}
}

func TestLoadConfigMissingSignKey(t *testing.T) {
	dir := t.TempDir()
	file := writeTestConfig(t, dir,
		NewPolicies("ProofOfReserve_Leaf", "ProofOfReserve_Branch", "sign.priv"))

	if _, err := LoadConfig(file); err == nil {
		t.Error("Missing signing key file must be rejected")
	}
}
