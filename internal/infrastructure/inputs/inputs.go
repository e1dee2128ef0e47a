// Package inputs verifies a descriptor's pinned upstream sources and opens
// the package-collection snapshot they point at.
package inputs

import (
	"fmt"
	"regexp"

	"denv.sh/cli/internal/core/catalog"
	"denv.sh/cli/internal/core/descriptor"
	"denv.sh/cli/internal/infrastructure/index"
)

// ErrUpstreamFetch is returned when a declared source location is
// unreachable or its pinned revision is invalid.
var ErrUpstreamFetch = fmt.Errorf("upstream fetch failed")

var revisionPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Source opens package-collection snapshots for descriptor evaluation.
// An empty index path selects the index embedded in the binary.
type Source struct {
	indexPath string
}

// NewSource creates a source backed by the given index file, or by the
// embedded index when path is empty.
func NewSource(indexPath string) *Source {
	return &Source{indexPath: indexPath}
}

// Open verifies the descriptor's pinned inputs and returns the collection
// snapshot. The first failure aborts; there is no retry and no partial
// result.
func (s *Source) Open(d descriptor.Descriptor) (*catalog.Snapshot, error) {
	for _, in := range d.Inputs {
		if !revisionPattern.MatchString(in.Revision) {
			return nil, fmt.Errorf("%w: input %q has malformed revision %q", ErrUpstreamFetch, in.Name, in.Revision)
		}
	}

	var (
		snapshot *catalog.Snapshot
		revision string
		err      error
	)
	if s.indexPath == "" {
		snapshot, revision, err = index.Default()
	} else {
		snapshot, revision, err = index.Load(s.indexPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	// The snapshot must belong to one of the pinned inputs; anything else
	// means the index on disk drifted from the descriptor's pins.
	for _, in := range d.Inputs {
		if in.Revision == revision {
			return snapshot, nil
		}
	}
	return nil, fmt.Errorf("%w: index revision %s matches no pinned input", ErrUpstreamFetch, revision)
}
