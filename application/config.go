package application

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/msakuta/merkle-tree/utils"
)

// LoadConfig reads a TOML-encoded configuration from file into conf.
func LoadConfig(file string, conf interface{}) error {
	if _, err := toml.DecodeFile(file, conf); err != nil {
		return fmt.Errorf("Failed to load config: %v", err)
	}
	return nil
}

// SaveConfig saves the given configuration to file in TOML encoding.
// It refuses to overwrite an existing file.
func SaveConfig(file string, conf interface{}) error {
	var confBuf bytes.Buffer
	e := toml.NewEncoder(&confBuf)
	if err := e.Encode(conf); err != nil {
		return err
	}
	return utils.WriteFile(file, confBuf.Bytes(), 0644)
}
