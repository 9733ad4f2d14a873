package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rebuildgate/internal"
)

// flagRegistrar is implemented by controllers that own subcommand flags.
type flagRegistrar interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "rebuildgate",
		Short: "Rebuild the project before a push when the build is stale",
		Long: `A git pre-push hook that decides whether the project must be rebuilt before
pushing. It compares the commit times of the configured root directories with
the last push and the build artifact, follows source dependencies into staged
files, and runs the configured build command when needed.

Usage:
  rebuildgate install       Install the hook into the current repository
  rebuildgate check         Show the decision without building
  rebuildgate init          Write a default .rebuildgate.yaml`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Decide without running the build command")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	// Settings overrides
	cmd.PersistentFlags().String("build-command", "",
		"Command that rebuilds the project (overrides build_command)")
	cmd.PersistentFlags().Bool("enforce-build", false,
		"Block the push when the rebuild fails (overrides enforce_build)")
	cmd.PersistentFlags().Int("max-depth", 0,
		"Maximum traversal depth (overrides max_depth)")
	cmd.PersistentFlags().String("git-backend", "",
		"Git backend: cli or native (overrides git.backend)")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if registrar, ok := ctrl.(flagRegistrar); ok {
			registrar.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	_ = godotenv.Load()

	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'rebuildgate': %s", err)
	}
}
