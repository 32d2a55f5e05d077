// @title        kristvault API
// @version      1.0
// @description  Local Krist wallet vault: wallets, address derivation and backup import/export.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"github.com/AlexZinkM/kristvault/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kristvault",
		Short:         "Local encrypted Krist wallet vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			cfg := config.Get()
			return config.SetupLogger(cfg.LogLevel, cfg.LogPretty)
		},
	}

	cmd.AddCommand(
		newInitCmd(),
		newServeCmd(),
		newDeriveCmd(),
		newAddCmd(),
		newListCmd(),
		newImportCmd(),
		newExportCmd(),
		newPasswdCmd(),
	)
	return cmd
}
