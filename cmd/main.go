package main

import (
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd собирает дерево команд, без подкоманды запускается сервис
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "smc-botcore",
		Short:         "Telegram bot core: command routing, keyboards and fast long polling",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runService(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to TOML config file")

	root.AddCommand(
		newRunCmd(&configPath),
		newPublishCommandsCmd(&configPath),
		newResetCursorCmd(&configPath),
		newStoreTokenCmd(),
	)

	return root
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot (long polling or webhook) with the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runService(cmd.Context(), *configPath)
		},
	}
}
