// Package shell materializes a resolved dev shell: it prepares the process
// environment from resolved artifacts and runs the startup command.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"denv.sh/cli/internal/core/catalog"
	"denv.sh/cli/internal/core/descriptor"
)

// Materializer turns a resolution plus its resolved artifacts into a child
// shell process. Package materialization itself (fetching, building) belongs
// to the external collection; the materializer only wires search paths and
// spawns the hook.
type Materializer struct {
	baseEnv []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewMaterializer creates a materializer inheriting the current process
// environment and standard streams.
func NewMaterializer() *Materializer {
	return &Materializer{
		baseEnv: os.Environ(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// NewMaterializerWithOptions creates a materializer with a custom base
// environment and streams.
func NewMaterializerWithOptions(baseEnv []string, stdin io.Reader, stdout, stderr io.Writer) *Materializer {
	if baseEnv == nil {
		baseEnv = os.Environ()
	}
	return &Materializer{
		baseEnv: baseEnv,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Environment builds the child environment: every artifact's bin directory
// prepended to PATH in package order, plus the platform identifier and the
// materialized store paths.
func (m *Materializer) Environment(res descriptor.Resolution, artifacts []catalog.Artifact) []string {
	binDirs := make([]string, 0, len(artifacts))
	storePaths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		binDirs = append(binDirs, a.StorePath+"/bin")
		storePaths = append(storePaths, a.StorePath)
	}

	env := make([]string, 0, len(m.baseEnv)+3)
	pathSet := false
	for _, kv := range m.baseEnv {
		switch {
		case strings.HasPrefix(kv, "PATH="):
			env = append(env, "PATH="+strings.Join(binDirs, ":")+":"+strings.TrimPrefix(kv, "PATH="))
			pathSet = true
		case strings.HasPrefix(kv, "DENV_PLATFORM="), strings.HasPrefix(kv, "DENV_STORE_PATHS="):
			// replaced below
		default:
			env = append(env, kv)
		}
	}
	if !pathSet {
		env = append(env, "PATH="+strings.Join(binDirs, ":"))
	}
	env = append(env, "DENV_PLATFORM="+res.Platform.String())
	env = append(env, "DENV_STORE_PATHS="+strings.Join(storePaths, ":"))
	return env
}

// Enter runs the dev shell's single startup command with the materialized
// environment. It blocks until the command exits; cancellation comes from
// the caller's context.
func (m *Materializer) Enter(ctx context.Context, res descriptor.Resolution, artifacts []catalog.Artifact) error {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", res.DevShell.ShellHook)
	cmd.Env = m.Environment(res, artifacts)
	cmd.Stdin = m.stdin
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("shell hook %q failed: %w", res.DevShell.ShellHook, err)
	}
	return nil
}
