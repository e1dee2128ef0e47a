package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"denv.sh/cli/internal/core/platform"
)

// newPlatformsCommand creates the platforms subcommand
func newPlatformsCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the supported platform identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, hostErr := platform.Current()

			var b strings.Builder
			b.WriteString(titleStyle.Render("Supported platforms"))
			b.WriteString("\n")
			for _, p := range platform.Supported() {
				b.WriteString("  " + packageStyle.Render(p.String()))
				if hostErr == nil && p == host {
					b.WriteString(labelStyle.Render("  (host)"))
				}
				b.WriteString("\n")
			}
			cmd.Print(b.String())
			return nil
		},
	}
}
