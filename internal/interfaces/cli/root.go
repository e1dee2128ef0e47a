package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"denv.sh/cli/internal/config"
	"denv.sh/cli/internal/core/descriptor"
	"denv.sh/cli/internal/infrastructure/inputs"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// Container holds the dependencies shared by CLI commands. It is populated
// once per invocation, before any command runs.
type Container struct {
	Config     config.Config
	Descriptor descriptor.Descriptor
	Source     *inputs.Source
}

// NewRootCommand builds the denv command tree.
func NewRootCommand() *cobra.Command {
	container := &Container{}

	rootCmd := &cobra.Command{
		Use:   "denv",
		Short: "denv - declarative development environment descriptor",
		Long: `denv evaluates a declarative environment descriptor for a target platform
and materializes the resulting development shell.

A descriptor pins its upstream package collection, names a fixed set of
packages for the shell search path, and declares a single startup command.
Evaluation is pure: the same descriptor and platform always produce the
same environment.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return container.initialize(cmd)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.config/denv/config.json)")
	rootCmd.PersistentFlags().String("descriptor", "", "Descriptor manifest path (default: built-in descriptor)")
	rootCmd.PersistentFlags().String("index", "", "Package index path (default: embedded index)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")

	rootCmd.AddCommand(newResolveCommand(container))
	rootCmd.AddCommand(newShellCommand(container))
	rootCmd.AddCommand(newPlatformsCommand(container))

	return rootCmd
}

// Execute runs the CLI and exits non-zero on any evaluation failure.
func Execute(ctx context.Context) {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "denv: %v\n", err)
		os.Exit(1)
	}
}

// initialize loads configuration and the descriptor, applying flag overrides
// on top of env and file configuration.
func (c *Container) initialize(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg := config.LoadConfigFrom(configPath)

	if path, _ := cmd.Flags().GetString("descriptor"); path != "" {
		cfg.DescriptorPath = path
	}
	if path, _ := cmd.Flags().GetString("index"); path != "" {
		cfg.IndexPath = path
	}
	if dbg, _ := cmd.Flags().GetBool("debug"); dbg {
		cfg.Debug = true
	}
	c.Config = cfg

	if cfg.DescriptorPath == "" {
		c.Descriptor = descriptor.Builtin()
	} else {
		d, err := descriptor.Load(cfg.DescriptorPath)
		if err != nil {
			return err
		}
		c.Descriptor = d
	}

	c.Source = inputs.NewSource(cfg.IndexPath)
	c.debugf("descriptor: %s, index: %s", orBuiltin(cfg.DescriptorPath), orEmbedded(cfg.IndexPath))
	return nil
}

// debugf prints to stderr when debug output is enabled.
func (c *Container) debugf(format string, args ...interface{}) {
	if c.Config.Debug {
		fmt.Fprintf(os.Stderr, "denv: "+format+"\n", args...)
	}
}

func orBuiltin(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func orEmbedded(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}
