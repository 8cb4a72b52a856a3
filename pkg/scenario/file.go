package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk YAML layout:
//
//	scenarios:
//	  - name: staging-smoke
//	    description: optional text
//	    env:
//	      APP_ENV: staging
//	      RATE_LIMIT_PER_MINUTE: "200"
type fileFormat struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadFile reads a scenario catalog from a YAML file.
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	scs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return scs, nil
}

// Parse decodes a YAML scenario catalog and checks it for structural
// problems: empty names, duplicate names, and nil override maps.
func Parse(data []byte) ([]Scenario, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
		if f.Scenarios[i].Env == nil {
			f.Scenarios[i].Env = map[string]string{}
		}
	}
	return f.Scenarios, nil
}
