package descriptor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"denv.sh/cli/internal/core/platform"
)

func mustPlatform(t testing.TB, identifier string) platform.Platform {
	t.Helper()
	p, err := platform.Parse(identifier)
	require.NoError(t, err)
	return p
}

// TestResolve_CrossPlatformPackageList tests the dev-shell package list on a
// non-Darwin platform
func TestResolve_CrossPlatformPackageList(t *testing.T) {
	res, err := Builtin().Resolve(mustPlatform(t, "x86_64-linux"))
	require.NoError(t, err)

	assert.Equal(t, []PackageRef{"python3", "uv", "ruff", "libiconv"}, res.DevShell.Packages,
		"Linux dev shell should contain exactly the four cross-platform packages, in order")
}

// TestResolve_DarwinAppendsFrameworks tests that the Apple-Darwin family gets
// exactly two extra framework packages
func TestResolve_DarwinAppendsFrameworks(t *testing.T) {
	res, err := Builtin().Resolve(mustPlatform(t, "aarch64-darwin"))
	require.NoError(t, err)

	assert.Equal(t, []PackageRef{
		"python3", "uv", "ruff", "libiconv",
		"apple-framework-IOKit", "apple-framework-Security",
	}, res.DevShell.Packages,
		"Darwin dev shell should contain the cross-platform four plus IOKit and Security")
}

// TestResolve_DefaultArtifactExtensionsEmpty tests the default artifact
// invariant on every supported platform
func TestResolve_DefaultArtifactExtensionsEmpty(t *testing.T) {
	for _, p := range platform.Supported() {
		t.Run(p.String(), func(t *testing.T) {
			res, err := Builtin().Resolve(p)
			require.NoError(t, err)

			assert.Equal(t, PackageRef("python3"), res.DefaultArtifact.Package)
			assert.Empty(t, res.DefaultArtifact.Extensions,
				"Default artifact must carry no interpreter-level extensions")
		})
	}
}

// TestResolve_SingleShellHook tests that exactly one startup command is emitted
func TestResolve_SingleShellHook(t *testing.T) {
	for _, p := range platform.Supported() {
		res, err := Builtin().Resolve(p)
		require.NoError(t, err)

		assert.Equal(t, "exec fish", res.DevShell.ShellHook)
	}
}

// TestResolve_ZeroPlatform_Fails tests that an unvalidated platform is rejected
func TestResolve_ZeroPlatform_Fails(t *testing.T) {
	res, err := Builtin().Resolve(platform.Platform{})

	assert.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
	assert.Empty(t, res.DevShell.Packages, "Failed resolve must not produce a partial dev shell")
	assert.Empty(t, res.DefaultArtifact.Package, "Failed resolve must not produce a default artifact")
}

// TestResolve_IsPure_Property verifies repeated resolution yields identical results
func TestResolve_IsPure_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom(platform.Supported()).Draw(t, "platform")
		repeats := rapid.IntRange(2, 8).Draw(t, "repeats")

		d := Builtin()
		first, err := d.Resolve(p)
		if err != nil {
			t.Fatalf("resolve %s: %v", p, err)
		}

		for i := 1; i < repeats; i++ {
			again, err := d.Resolve(p)
			if err != nil {
				t.Fatalf("repeat resolve %s: %v", p, err)
			}
			require.Equal(t, first, again, "resolution must be deterministic")
		}
	})
}

// TestResolve_PackageCounts_Property verifies the darwin branch is the only
// source of package-list variation
func TestResolve_PackageCounts_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom(platform.Supported()).Draw(t, "platform")

		res, err := Builtin().Resolve(p)
		if err != nil {
			t.Fatalf("resolve %s: %v", p, err)
		}

		want := 4
		if p.IsDarwin() {
			want = 6
		}
		if len(res.DevShell.Packages) != want {
			t.Fatalf("%s: got %d packages, want %d", p, len(res.DevShell.Packages), want)
		}
	})
}

// TestValidate_RejectsMalformedDescriptors tests descriptor validation rules
func TestValidate_RejectsMalformedDescriptors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Descriptor)
		expectError bool
		description string
	}{
		{
			name:        "Builtin_ShouldBeValid",
			mutate:      func(*Descriptor) {},
			expectError: false,
			description: "The built-in descriptor must validate",
		},
		{
			name:        "MissingInterpreter_ShouldFail",
			mutate:      func(d *Descriptor) { d.Interpreter = "" },
			expectError: true,
			description: "A descriptor without an interpreter is rejected",
		},
		{
			name:        "MissingShellHook_ShouldFail",
			mutate:      func(d *Descriptor) { d.ShellHook = "" },
			expectError: true,
			description: "A descriptor without a startup command is rejected",
		},
		{
			name:        "EmptyPackageName_ShouldFail",
			mutate:      func(d *Descriptor) { d.Packages = append(d.Packages, "") },
			expectError: true,
			description: "Empty package references are rejected",
		},
		{
			name:        "UnpinnedInput_ShouldFail",
			mutate:      func(d *Descriptor) { d.Inputs[0].Revision = "" },
			expectError: true,
			description: "Inputs must be pinned to a revision",
		},
		{
			name:        "UnnamedInput_ShouldFail",
			mutate:      func(d *Descriptor) { d.Inputs[1].Name = "" },
			expectError: true,
			description: "Inputs must be named",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Builtin()
			tt.mutate(&d)

			err := d.Validate()

			if tt.expectError {
				assert.Error(t, err, tt.description)
			} else {
				assert.NoError(t, err, tt.description)
			}
		})
	}
}

// TestLoadSave_RoundTripsManifest tests the JSON manifest form
func TestLoadSave_RoundTripsManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denv.json")
	original := Builtin()

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

// TestLoad_RejectsInvalidManifest tests load failures
func TestLoad_RejectsInvalidManifest(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("InvalidContent", func(t *testing.T) {
		d := Builtin()
		d.ShellHook = ""
		path := filepath.Join(t.TempDir(), "denv.json")
		require.Error(t, Save(path, d), "Save must refuse an invalid descriptor")
	})
}

// TestBuiltin_HasTwoPinnedInputs tests the declared upstream dependencies
func TestBuiltin_HasTwoPinnedInputs(t *testing.T) {
	d := Builtin()

	require.Len(t, d.Inputs, 2)
	for _, in := range d.Inputs {
		assert.NotEmpty(t, in.Name)
		assert.NotEmpty(t, in.URL)
		assert.Len(t, in.Revision, 40, "Inputs are pinned to full revisions")
	}
}
