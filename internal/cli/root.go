package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configDir string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("FIRSTAID_CONFIG_DIR")
	if envConfig == "" {
		envConfig = "configs"
	}

	cmd := &cobra.Command{
		Use:          "firstaid",
		Short:        "First-aid training backend",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configDir, "config", envConfig, "directory containing config.yaml")
	cmd.AddCommand(NewServeCmd(&configDir))
	cmd.AddCommand(NewMigrateCmd(&configDir))
	cmd.AddCommand(NewSeedCmd(&configDir))
	return cmd
}
