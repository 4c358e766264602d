package server

import (
	"fmt"
	"os"

	"github.com/msakuta/merkle-tree/application"
	"github.com/msakuta/merkle-tree/crypto/sign"
	"github.com/msakuta/merkle-tree/utils"
)

// Policies contains the server's commitment parameters: the two
// domain-separation tags and the path to the attestation signing key.
// The tags must be non-empty and distinct, otherwise a branch hash could
// collide with a leaf hash over the same bytes.
type Policies struct {
	LeafTag     string `toml:"leaf_tag"`
	BranchTag   string `toml:"branch_tag"`
	SignKeyPath string `toml:"sign_key_path"`
	signKey     sign.PrivateKey
}

// NewPolicies initializes a new Policies struct.
func NewPolicies(leafTag, branchTag, signKeyPath string) *Policies {
	return &Policies{
		LeafTag:     leafTag,
		BranchTag:   branchTag,
		SignKeyPath: signKeyPath,
	}
}

// A Config contains configuration values
// which are read at initialization time from
// a TOML format configuration file.
type Config struct {
	// RegistryPath locates the balance registry database.
	RegistryPath string `toml:"registry_path"`
	// Logger contains the logger configuration.
	Logger *application.LoggerConfig `toml:"logger"`
	// Policies contains the server's commitment configuration.
	Policies *Policies `toml:"policies"`
	// Addresses contains the server's connections configuration.
	Addresses []*application.ServerAddress `toml:"addresses"`
}

// NewConfig initializes a new server configuration with the given
// server addresses, logger configuration, registry path and policies.
func NewConfig(addrs []*application.ServerAddress,
	logConfig *application.LoggerConfig, registryPath string,
	policies *Policies) *Config {
	return &Config{
		RegistryPath: registryPath,
		Logger:       logConfig,
		Policies:     policies,
		Addresses:    addrs,
	}
}

// LoadConfig loads the server configuration from the corresponding
// config file. It validates the commitment tags, reads the signing key
// into the Config instance and resolves every relative path against the
// config file's directory.
func LoadConfig(file string) (*Config, error) {
	conf := new(Config)
	if err := application.LoadConfig(file, conf); err != nil {
		return nil, err
	}

	if conf.Policies == nil {
		return nil, fmt.Errorf("Missing policies section in %s", file)
	}
	if conf.Policies.LeafTag == "" || conf.Policies.BranchTag == "" {
		return nil, fmt.Errorf("Commitment tags must be non-empty")
	}
	if conf.Policies.LeafTag == conf.Policies.BranchTag {
		return nil, fmt.Errorf("Leaf and branch tags must be distinct")
	}
	if len(conf.Addresses) == 0 {
		return nil, fmt.Errorf("Missing addresses section in %s", file)
	}

	// load signing key
	signPath := utils.ResolvePath(conf.Policies.SignKeyPath, file)
	signKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	if len(signKey) != sign.PrivateKeySize {
		return nil, fmt.Errorf("Signing key must be %d bytes (got %d)",
			sign.PrivateKeySize, len(signKey))
	}
	conf.Policies.signKey = sign.PrivateKey(signKey)

	conf.RegistryPath = utils.ResolvePath(conf.RegistryPath, file)
	// also update paths for TLS cert files
	for _, addr := range conf.Addresses {
		if addr.TLSCertPath != "" {
			addr.TLSCertPath = utils.ResolvePath(addr.TLSCertPath, file)
		}
		if addr.TLSKeyPath != "" {
			addr.TLSKeyPath = utils.ResolvePath(addr.TLSKeyPath, file)
		}
	}
	// logger config
	if conf.Logger != nil && conf.Logger.Path != "" {
		conf.Logger.Path = utils.ResolvePath(conf.Logger.Path, file)
	}

	return conf, nil
}

// SignKey returns the loaded attestation signing key.
func (conf *Config) SignKey() sign.PrivateKey {
	return conf.Policies.signKey
}
