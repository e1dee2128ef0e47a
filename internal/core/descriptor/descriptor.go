package descriptor

import (
	"fmt"

	"denv.sh/cli/internal/core/platform"
)

// PackageRef is a named pointer into the external package collection. The
// name is resolved to a concrete build artifact at evaluation time; version
// and build metadata live in the collection, not here.
type PackageRef string

// Input is a pinned upstream source location consumed during evaluation.
// The revision pins the source so repeated evaluations see identical
// package metadata.
type Input struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Revision string `json:"rev"`
}

// Descriptor is the declarative environment description: pinned inputs, the
// interpreter that forms the default artifact, the dev-shell package lists,
// and the single startup command. A Descriptor is a plain value; evaluation
// never mutates it and no package-level registry exists.
type Descriptor struct {
	Inputs         []Input      `json:"inputs"`
	Interpreter    PackageRef   `json:"interpreter"`
	Packages       []PackageRef `json:"packages"`
	DarwinPackages []PackageRef `json:"darwin_packages"`
	ShellHook      string       `json:"shell_hook"`
}

// DefaultArtifact is the standalone installable artifact: the interpreter
// environment with its extension list. The extension list is empty in the
// built-in descriptor on every platform.
type DefaultArtifact struct {
	Package    PackageRef   `json:"package"`
	Extensions []PackageRef `json:"extensions"`
}

// DevShell describes the interactive development environment: an ordered
// package list to put on the search path and exactly one startup command.
type DevShell struct {
	Packages  []PackageRef `json:"packages"`
	ShellHook string       `json:"shell_hook"`
}

// Resolution is the result of evaluating a descriptor for one platform.
type Resolution struct {
	Platform        platform.Platform `json:"-"`
	DefaultArtifact DefaultArtifact   `json:"default_artifact"`
	DevShell        DevShell          `json:"dev_shell"`
}

// Builtin returns the descriptor shipped with the binary. Package names and
// input pins are fixed at authoring time; nothing here depends on runtime
// input beyond the platform passed to Resolve.
func Builtin() Descriptor {
	return Descriptor{
		Inputs: []Input{
			{
				Name:     "pkgs",
				URL:      "github:NixOS/nixpkgs/nixpkgs-unstable",
				Revision: "4c89934b1d4a3ff9b9c8a8ba4e0b0f5bca62c0cf",
			},
			{
				Name:     "platforms",
				URL:      "github:numtide/flake-utils",
				Revision: "11707dc2f618dd54ca8739b309ec4fc024de578b",
			},
		},
		Interpreter:    "python3",
		Packages:       []PackageRef{"python3", "uv", "ruff", "libiconv"},
		DarwinPackages: []PackageRef{"apple-framework-IOKit", "apple-framework-Security"},
		ShellHook:      "exec fish",
	}
}

// Resolve evaluates the descriptor for one platform. It is a pure function:
// the same descriptor and platform always produce the same resolution.
func (d Descriptor) Resolve(p platform.Platform) (Resolution, error) {
	if p.IsZero() {
		return Resolution{}, fmt.Errorf("resolve: %w: empty identifier", platform.ErrUnsupportedPlatform)
	}
	if err := d.Validate(); err != nil {
		return Resolution{}, fmt.Errorf("resolve for %s: %w", p, err)
	}

	packages := make([]PackageRef, 0, len(d.Packages)+len(d.DarwinPackages))
	packages = append(packages, d.Packages...)
	if p.IsDarwin() {
		packages = append(packages, d.DarwinPackages...)
	}

	return Resolution{
		Platform: p,
		DefaultArtifact: DefaultArtifact{
			Package:    d.Interpreter,
			Extensions: []PackageRef{},
		},
		DevShell: DevShell{
			Packages:  packages,
			ShellHook: d.ShellHook,
		},
	}, nil
}

// Validate checks that the descriptor is well formed: a named interpreter,
// non-empty package names, a single startup command, and only pinned inputs.
func (d Descriptor) Validate() error {
	if d.Interpreter == "" {
		return fmt.Errorf("descriptor has no interpreter package")
	}
	if d.ShellHook == "" {
		return fmt.Errorf("descriptor has no shell hook")
	}
	for _, ref := range d.Packages {
		if ref == "" {
			return fmt.Errorf("descriptor has an empty package reference")
		}
	}
	for _, ref := range d.DarwinPackages {
		if ref == "" {
			return fmt.Errorf("descriptor has an empty darwin package reference")
		}
	}
	for _, in := range d.Inputs {
		if in.Name == "" {
			return fmt.Errorf("descriptor input has no name")
		}
		if in.URL == "" {
			return fmt.Errorf("input %q has no source location", in.Name)
		}
		if in.Revision == "" {
			return fmt.Errorf("input %q is not pinned to a revision", in.Name)
		}
	}
	return nil
}
