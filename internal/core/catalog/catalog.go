package catalog

import (
	"fmt"

	"denv.sh/cli/internal/core/descriptor"
	"denv.sh/cli/internal/core/platform"
)

// ErrPackageResolution is returned when a named package cannot be located
// for the requested platform.
var ErrPackageResolution = fmt.Errorf("package resolution failed")

// Artifact is a concrete build product resolved from the package collection:
// a name, the collection-provided version, and a content-addressed store path.
type Artifact struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	StorePath string `json:"store_path"`
}

// Collection is the external package collection as seen by the evaluator.
// Implementations are immutable for the lifetime of an evaluation.
type Collection interface {
	// Resolve maps a package reference to a build artifact for one platform.
	Resolve(ref descriptor.PackageRef, p platform.Platform) (Artifact, error)
}

// Snapshot is an in-memory Collection built from a pinned index. The nested
// map is keyed by package name, then platform identifier.
type Snapshot struct {
	artifacts map[string]map[string]Artifact
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{artifacts: make(map[string]map[string]Artifact)}
}

// Add records an artifact for one package on one platform. Later additions
// for the same key replace earlier ones; Add is for snapshot construction
// only and must not be called once the snapshot is in use.
func (s *Snapshot) Add(p platform.Platform, a Artifact) {
	byPlatform, ok := s.artifacts[a.Name]
	if !ok {
		byPlatform = make(map[string]Artifact)
		s.artifacts[a.Name] = byPlatform
	}
	byPlatform[p.String()] = a
}

// Resolve implements Collection.
func (s *Snapshot) Resolve(ref descriptor.PackageRef, p platform.Platform) (Artifact, error) {
	byPlatform, ok := s.artifacts[string(ref)]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s is not in the package collection", ErrPackageResolution, ref)
	}
	a, ok := byPlatform[p.String()]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s has no build for %s", ErrPackageResolution, ref, p)
	}
	return a, nil
}

// Len returns the number of distinct package names in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.artifacts)
}

// ResolveAll resolves a resolution's dev-shell package list in order. The
// first failure aborts the whole resolution; there is no partial environment
// and no retry.
func ResolveAll(c Collection, res descriptor.Resolution) ([]Artifact, error) {
	artifacts := make([]Artifact, 0, len(res.DevShell.Packages))
	for _, ref := range res.DevShell.Packages {
		a, err := c.Resolve(ref, res.Platform)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}
