package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"denv.sh/cli/internal/core/catalog"
	"denv.sh/cli/internal/core/descriptor"
	"denv.sh/cli/internal/core/platform"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	packageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// resolveOutput is the machine-readable form of an evaluation.
type resolveOutput struct {
	Platform        string                     `json:"platform"`
	DefaultArtifact descriptor.DefaultArtifact `json:"default_artifact"`
	DevShell        descriptor.DevShell        `json:"dev_shell"`
	Artifacts       []catalog.Artifact         `json:"artifacts"`
}

// newResolveCommand creates the resolve subcommand
func newResolveCommand(container *Container) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve [platform]",
		Short: "Evaluate the descriptor for a platform",
		Long: `Resolve evaluates the descriptor for the given platform identifier and
prints the default artifact and the dev-shell specification. With no
argument the host platform is used.

Examples:
  denv resolve                  # resolve for the host platform
  denv resolve aarch64-darwin   # resolve for Apple silicon
  denv resolve --json           # machine-readable output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := targetPlatform(args)
			if err != nil {
				return err
			}

			res, artifacts, err := evaluate(container, p)
			if err != nil {
				return err
			}

			if jsonOutput {
				out := resolveOutput{
					Platform:        p.String(),
					DefaultArtifact: res.DefaultArtifact,
					DevShell:        res.DevShell,
					Artifacts:       artifacts,
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal resolution: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			cmd.Println(renderResolution(res, artifacts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the resolution as JSON")

	return cmd
}

// targetPlatform picks the platform from the argument list, falling back to
// the host platform.
func targetPlatform(args []string) (platform.Platform, error) {
	if len(args) > 0 {
		return platform.Parse(args[0])
	}
	return platform.Current()
}

// evaluate runs the whole pipeline: descriptor resolution, input
// verification, and package resolution against the collection snapshot.
// Any failure aborts with no partial result.
func evaluate(container *Container, p platform.Platform) (descriptor.Resolution, []catalog.Artifact, error) {
	res, err := container.Descriptor.Resolve(p)
	if err != nil {
		return descriptor.Resolution{}, nil, err
	}

	snapshot, err := container.Source.Open(container.Descriptor)
	if err != nil {
		return descriptor.Resolution{}, nil, err
	}

	artifacts, err := catalog.ResolveAll(snapshot, res)
	if err != nil {
		return descriptor.Resolution{}, nil, err
	}
	return res, artifacts, nil
}

// renderResolution formats an evaluation for human consumption.
func renderResolution(res descriptor.Resolution, artifacts []catalog.Artifact) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Environment for %s", res.Platform)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Default artifact: "))
	b.WriteString(packageStyle.Render(string(res.DefaultArtifact.Package)))
	if len(res.DefaultArtifact.Extensions) == 0 {
		b.WriteString(labelStyle.Render(" (no extensions)"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Dev shell packages:"))
	b.WriteString("\n")
	for _, a := range artifacts {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			packageStyle.Render(fmt.Sprintf("%-26s", a.Name+"-"+a.Version)),
			pathStyle.Render(a.StorePath)))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Shell hook: "))
	b.WriteString(res.DevShell.ShellHook)
	return b.String()
}
