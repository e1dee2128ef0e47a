// Package index loads pinned package-index files into catalog snapshots.
package index

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"denv.sh/cli/internal/core/catalog"
	"denv.sh/cli/internal/core/platform"
)

//go:embed default_index.json
var defaultIndex []byte

// File mirrors the on-disk index format: the collection revision the index
// was generated from, and one entry per package per platform.
type File struct {
	Revision string  `json:"revision"`
	Packages []Entry `json:"packages"`
}

// Entry is one package build in the index.
type Entry struct {
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	Version   string `json:"version"`
	StorePath string `json:"store_path"`
}

// Load reads an index file from disk and builds a snapshot from it.
func Load(path string) (*catalog.Snapshot, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read index %s: %w", path, err)
	}
	return parse(data, path)
}

// Default builds a snapshot from the index embedded in the binary.
func Default() (*catalog.Snapshot, string, error) {
	return parse(defaultIndex, "embedded index")
}

func parse(data []byte, source string) (*catalog.Snapshot, string, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", source, err)
	}
	if f.Revision == "" {
		return nil, "", fmt.Errorf("%s has no collection revision", source)
	}

	snapshot := catalog.NewSnapshot()
	for _, e := range f.Packages {
		if e.Name == "" || e.StorePath == "" {
			return nil, "", fmt.Errorf("%s has an incomplete entry for %q", source, e.Name)
		}
		p, err := platform.Parse(e.Platform)
		if err != nil {
			return nil, "", fmt.Errorf("%s entry %q: %w", source, e.Name, err)
		}
		snapshot.Add(p, catalog.Artifact{
			Name:      e.Name,
			Version:   e.Version,
			StorePath: e.StorePath,
		})
	}
	return snapshot, f.Revision, nil
}
