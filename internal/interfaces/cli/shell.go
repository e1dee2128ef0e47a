package cli

import (
	"github.com/spf13/cobra"

	"denv.sh/cli/internal/core/platform"
	"denv.sh/cli/internal/infrastructure/shell"
)

// newShellCommand creates the shell subcommand
func newShellCommand(container *Container) *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "shell [platform]",
		Short: "Enter the development shell",
		Long: `Shell resolves the descriptor, puts every listed package on the search
path, and runs the descriptor's startup command. The command blocks until
the spawned shell exits.

Examples:
  denv shell                 # enter the dev shell for the host platform
  denv shell x86_64-linux    # cross-resolve for another platform
  denv shell --pick          # choose the platform interactively`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   platform.Platform
				err error
			)
			if pick && len(args) == 0 {
				p, err = pickPlatform()
			} else {
				p, err = targetPlatform(args)
			}
			if err != nil {
				return err
			}

			res, artifacts, err := evaluate(container, p)
			if err != nil {
				return err
			}

			container.debugf("entering shell for %s with %d packages", p, len(artifacts))
			return shell.NewMaterializer().Enter(cmd.Context(), res, artifacts)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "Pick the target platform interactively")

	return cmd
}
