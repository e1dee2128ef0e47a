package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a descriptor manifest from a JSON file.
func Load(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read descriptor %s: %w", path, err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor %s: %w", path, err)
	}
	return d, nil
}

// Save writes the descriptor as an indented JSON manifest.
func Save(path string, d Descriptor) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid descriptor: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write descriptor %s: %w", path, err)
	}
	return nil
}
