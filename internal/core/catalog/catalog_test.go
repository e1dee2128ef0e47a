package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"denv.sh/cli/internal/core/descriptor"
	"denv.sh/cli/internal/core/platform"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	linux, err := platform.Parse("x86_64-linux")
	require.NoError(t, err)

	s := NewSnapshot()
	s.Add(linux, Artifact{Name: "python3", Version: "3.12.4", StorePath: "/nix/store/abc123-python3-3.12.4"})
	s.Add(linux, Artifact{Name: "uv", Version: "0.4.18", StorePath: "/nix/store/def456-uv-0.4.18"})
	return s
}

// TestSnapshot_Resolve_KnownPackage tests a successful lookup
func TestSnapshot_Resolve_KnownPackage(t *testing.T) {
	s := testSnapshot(t)
	linux, err := platform.Parse("x86_64-linux")
	require.NoError(t, err)

	a, err := s.Resolve("python3", linux)

	require.NoError(t, err)
	assert.Equal(t, "python3", a.Name)
	assert.Equal(t, "3.12.4", a.Version)
	assert.Equal(t, "/nix/store/abc123-python3-3.12.4", a.StorePath)
}

// TestSnapshot_Resolve_Failures tests the package-resolution error taxonomy
func TestSnapshot_Resolve_Failures(t *testing.T) {
	s := testSnapshot(t)

	tests := []struct {
		name        string
		ref         descriptor.PackageRef
		platform    string
		description string
	}{
		{
			name:        "UnknownPackage_ShouldFail",
			ref:         "ghc",
			platform:    "x86_64-linux",
			description: "A name outside the collection cannot resolve",
		},
		{
			name:        "KnownPackageWrongPlatform_ShouldFail",
			ref:         "python3",
			platform:    "aarch64-darwin",
			description: "A package with no build for the platform cannot resolve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := platform.Parse(tt.platform)
			require.NoError(t, err)

			a, err := s.Resolve(tt.ref, p)

			assert.ErrorIs(t, err, ErrPackageResolution, tt.description)
			assert.ErrorContains(t, err, string(tt.ref), "Error should name the failing package")
			assert.Empty(t, a.StorePath)
		})
	}
}

// TestResolveAll_PreservesOrder tests that artifacts come back in dev-shell order
func TestResolveAll_PreservesOrder(t *testing.T) {
	linux, err := platform.Parse("x86_64-linux")
	require.NoError(t, err)

	s := NewSnapshot()
	for _, name := range []string{"python3", "uv", "ruff", "libiconv"} {
		s.Add(linux, Artifact{Name: name, Version: "1.0.0", StorePath: "/nix/store/xxx-" + name})
	}

	res, err := descriptor.Builtin().Resolve(linux)
	require.NoError(t, err)

	artifacts, err := ResolveAll(s, res)
	require.NoError(t, err)

	require.Len(t, artifacts, 4)
	for i, ref := range res.DevShell.Packages {
		assert.Equal(t, string(ref), artifacts[i].Name, "Artifact order must match the package list")
	}
}

// TestResolveAll_AbortsOnFirstMiss tests the no-partial-environment policy
func TestResolveAll_AbortsOnFirstMiss(t *testing.T) {
	linux, err := platform.Parse("x86_64-linux")
	require.NoError(t, err)

	s := NewSnapshot()
	s.Add(linux, Artifact{Name: "python3", Version: "3.12.4", StorePath: "/nix/store/abc-python3"})
	// uv, ruff, libiconv deliberately absent

	res, err := descriptor.Builtin().Resolve(linux)
	require.NoError(t, err)

	artifacts, err := ResolveAll(s, res)

	assert.ErrorIs(t, err, ErrPackageResolution)
	assert.Nil(t, artifacts, "A failed resolution must not return a partial artifact list")
}
