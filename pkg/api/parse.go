package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlan builds the provisioning plan. With an empty filename the
// built-in plan is used, otherwise the YAML file is read. Environment
// settings are applied before defaults are filled and the plan is validated.
func LoadPlan(filename string, settings *Settings) (*Plan, error) {
	p := &Plan{}
	if filename != "" {
		var err error
		p, err = readPlan(filename)
		if err != nil {
			return nil, err
		}
	}

	if settings != nil {
		settings.Apply(p)
	}
	p.ApplyDefaults()

	if err := p.Validate(); err != nil {
		if p.FilePath != "" {
			return nil, fmt.Errorf("validating plan %s: %w", filename, err)
		}
		return nil, fmt.Errorf("validating plan: %w", err)
	}

	return p, nil
}

func readPlan(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	p.FilePath = absPath

	return &p, nil
}
