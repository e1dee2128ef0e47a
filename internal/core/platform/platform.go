package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Family groups platforms that share an operating system.
type Family string

const (
	FamilyLinux  Family = "linux"
	FamilyDarwin Family = "darwin"
)

// ErrUnsupportedPlatform is returned when an identifier is not in the
// supported set.
var ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

// Platform is a value object wrapping a validated "arch-os" identifier
// such as "x86_64-linux" or "aarch64-darwin".
type Platform struct {
	arch   string
	family Family
}

// supported is the finite set of platform identifiers the descriptor is
// evaluated for. Order here fixes the order reported by Supported.
var supported = []Platform{
	{arch: "x86_64", family: FamilyLinux},
	{arch: "aarch64", family: FamilyLinux},
	{arch: "x86_64", family: FamilyDarwin},
	{arch: "aarch64", family: FamilyDarwin},
}

// Parse validates a platform identifier against the supported set.
func Parse(identifier string) (Platform, error) {
	sep := strings.LastIndex(identifier, "-")
	if sep <= 0 || sep == len(identifier)-1 {
		return Platform{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, identifier)
	}

	candidate := Platform{
		arch:   identifier[:sep],
		family: Family(identifier[sep+1:]),
	}
	for _, p := range supported {
		if p == candidate {
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, identifier)
}

// Current maps the running process's OS and architecture to a supported
// platform identifier.
func Current() (Platform, error) {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return Parse(arch + "-" + runtime.GOOS)
}

// Supported returns the platform identifiers the descriptor can be
// evaluated for, in a stable order.
func Supported() []Platform {
	out := make([]Platform, len(supported))
	copy(out, supported)
	return out
}

// Arch returns the CPU architecture component of the identifier.
func (p Platform) Arch() string {
	return p.arch
}

// Family returns the operating-system family of the platform.
func (p Platform) Family() Family {
	return p.family
}

// IsDarwin reports whether the platform belongs to the Apple-Darwin family.
func (p Platform) IsDarwin() bool {
	return p.family == FamilyDarwin
}

// String returns the canonical "arch-os" identifier.
func (p Platform) String() string {
	return p.arch + "-" + string(p.family)
}

// IsZero reports whether the platform is the uninitialized zero value.
func (p Platform) IsZero() bool {
	return p.arch == ""
}
