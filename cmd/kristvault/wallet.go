package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlexZinkM/kristvault/internal/config"
	"github.com/AlexZinkM/kristvault/internal/vault"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newDeriveCmd() *cobra.Command {
	var format, username string

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the address of a wallet password without storing it",
		Run: func(cmd *cobra.Command, args []string) {
			f := krist.DefaultFormat
			if format != "" {
				parsed, err := krist.ParseKeyFormat(format)
				if err != nil {
					log.Fatal().Err(err).Msg("Invalid format")
				}
				f = parsed
			}

			password, err := config.PromptPassword("Enter wallet password: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read wallet password")
			}

			_, address, err := krist.CalculateAddress(f, password, username)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to derive address")
			}
			fmt.Println(address)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Wallet format (default kristwallet)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username for username formats")
	return cmd
}

func newAddCmd() *cobra.Command {
	var format string
	var data krist.WalletData

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a wallet to the vault",
		Run: func(cmd *cobra.Command, args []string) {
			l := limits()
			f, err := l.ParseFormat(format)
			if err != nil {
				log.Fatal().Err(err).Msg("Invalid format")
			}
			data.Format = f

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

			password, err := config.PromptPassword("Enter wallet password: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read wallet password")
			}

			w, err := vault.AddWallet(ctx, ws, s, l, data, password)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to add wallet")
			}
			fmt.Println(w.Address)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Wallet format (default kristwallet)")
	cmd.Flags().StringVarP(&data.Username, "username", "u", "", "Username for username formats")
	cmd.Flags().StringVarP(&data.Label, "label", "l", "", "Wallet label")
	cmd.Flags().StringVarP(&data.Category, "category", "c", "", "Wallet category")
	return cmd
}

func newListCmd() *cobra.Command {
	var withQR bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets in the vault",
		Run: func(cmd *cobra.Command, args []string) {
			ws, closeStore, err := openStore()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open store")
			}
			defer closeStore()

			wallets, err := ws.Wallets(context.Background())
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to list wallets")
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tLABEL\tCATEGORY\tFORMAT")
			for _, w := range wallets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Address, w.Label, w.Category, w.Format)
			}
			tw.Flush()

			if !withQR {
				return
			}
			for _, w := range wallets {
				qr, err := krist.QRText(w.Address)
				if err != nil {
					log.Fatal().Err(err).Msg("Failed to render QR code")
				}
				fmt.Printf("\n%s\n%s", w.Address, qr)
			}
		},
	}

	cmd.Flags().BoolVar(&withQR, "qr", false, "Print a QR code for each address")
	return cmd
}
