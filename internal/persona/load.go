package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape of a persona config file.
type profileFile struct {
	Personas []Profile `yaml:"personas"`
}

// LoadFile reads persona profiles from a YAML file. Invalid profiles are
// rejected with an error naming the offending entry.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse persona config: %w", err)
	}

	for i, p := range f.Personas {
		if err := ValidateProfile(p); err != nil {
			return nil, fmt.Errorf("persona %d (%q): %w", i, p.Role, err)
		}
	}
	return f.Personas, nil
}

// LoadInto merges profiles from a YAML file over an existing registry.
func LoadInto(r *Registry, path string) error {
	profiles, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		r.Register(p)
	}
	return nil
}
