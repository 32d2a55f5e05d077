package main

import (
	"context"
	"errors"

	"github.com/AlexZinkM/kristvault/internal/config"
	"github.com/AlexZinkM/kristvault/internal/session"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Set up the master password of a new vault",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			ws, closeStore, err := openStore()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open store")
			}
			defer closeStore()

			password, err := newPassword("Choose master password: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read master password")
			}

			s, err := session.Setup(ctx, ws, password)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to set up vault")
			}
			s.Lock()
			log.Info().Str("db", config.Get().DBPath).Msg("Vault initialized")
		},
	}
}

func newPasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the master password and re-encrypt every wallet",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			ws, closeStore, err := openStore()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open store")
			}
			defer closeStore()

			current, err := unlock(ctx, ws)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to unlock vault")
			}

			// the env variable only ever holds the current password
			password, err := confirmPrompt("Enter new master password: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read new master password")
			}

			next, err := session.ChangePassword(ctx, ws, current, password)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to change master password")
			}
			next.Lock()
		},
	}
}

// newPassword reads a password to set up, from the environment or a
// confirmed prompt
func newPassword(prompt string) (string, error) {
	if password, err := config.MasterPasswordFromEnv(); err != nil || password != "" {
		return password, err
	}
	return confirmPrompt(prompt)
}

func confirmPrompt(prompt string) (string, error) {
	password, err := config.PromptPassword(prompt)
	if err != nil {
		return "", err
	}
	again, err := config.PromptPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != again {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
