package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a run record.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the report path given on the command line
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing report YAML: %w", err)
	}
	return &f, nil
}

// Save writes the run record to disk.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // report needs to be readable
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
