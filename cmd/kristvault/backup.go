package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlexZinkM/kristvault/internal/backup"
	"github.com/AlexZinkM/kristvault/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var noOverwrite bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import wallets from a backup file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read backup")
			}

			ctx := context.Background()
			ws, closeStore, err := openStore()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open store")
			}
			defer closeStore()

			s, err := unlock(ctx, ws)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to unlock vault")
			}
			defer s.Lock()

			password, err := config.PromptPassword("Enter backup master password: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read backup password")
			}

			total, done := 0, 0
			progress := backup.ProgressFuncs{
				OnTotal: func(n int) { total = n },
				OnStep: func() {
					done++
					log.Debug().Int("done", done).Int("total", total).Msg("Import progress")
				},
			}

			report, err := backup.NewService(backupConfig(), ws).Import(ctx, s, string(raw), password, noOverwrite, progress)
			if err != nil {
				log.Fatal().Err(err).Msg("Import failed")
			}
			printReport(report)
		},
	}

	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "Never change labels of wallets that already exist")
	return cmd
}

func printReport(r *backup.Report) {
	for _, key := range r.Keys {
		for _, m := range r.Messages[key] {
			line := fmt.Sprintf("%-8s %s: %s", m.Type, key, m.Code)
			if m.Field != "" {
				line += " (" + m.Field + ")"
			}
			if m.Err != nil {
				line += ": " + m.Err.Error()
			}
			fmt.Println(line)
		}
	}
	fmt.Printf("%d new, %d skipped, %d warnings, %d errors\n",
		r.NewWallets, r.SkippedWallets, r.Count(backup.MessageWarning), r.Count(backup.MessageError))
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the vault as a backup",
		Run: func(cmd *cobra.Command, args []string) {
			ws, closeStore, err := openStore()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open store")
			}
			defer closeStore()

			raw, err := backup.Export(context.Background(), ws)
			if err != nil {
				log.Fatal().Err(err).Msg("Export failed")
			}

			if out == "" || out == "-" {
				fmt.Println(raw)
				return
			}
			if err := os.WriteFile(out, []byte(raw+"\n"), 0600); err != nil {
				log.Fatal().Err(err).Msg("Failed to write backup")
			}
			log.Info().Str("file", out).Msg("Backup written")
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
