package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk shape of a rule set override. An empty or
// missing file means the default rule set.
type RulesFile struct {
	Rules []string `yaml:"rules"`
}

// LoadRules reads the YAML rule set at path. An empty path returns nil,
// which callers treat as "use the defaults".
func LoadRules(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	return file.Rules, nil
}
