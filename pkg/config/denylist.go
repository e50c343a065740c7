package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// denyListFile is the on-disk deny-list format:
//
//	deny:
//	  - legacy_ble.so
//	  - vendor_trace.so
//
// Entries are exact module basenames, including the extension.
type denyListFile struct {
	Deny []string `yaml:"deny"`
}

// LoadDenyList loads the module deny-list from a YAML file.
func LoadDenyList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deny-list: %w", err)
	}

	var f denyListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse deny-list: %w", err)
	}

	return f.Deny, nil
}
