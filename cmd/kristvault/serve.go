package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/kristvault/internal/api"
	"github.com/AlexZinkM/kristvault/internal/backup"
	"github.com/AlexZinkM/kristvault/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Unlock the vault and serve the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			if err := serve(cmd.Context()); err != nil {
				log.Fatal().Err(err).Msg("Server failed")
			}
		},
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	s, err := unlock(ctx, ws)
	if err != nil {
		return err
	}
	defer s.Lock()

	router, err := api.SetupRouter(api.Deps{
		Wallets: ws,
		Session: s,
		Backup:  backup.NewService(backupConfig(), ws),
		Limits:  limits(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.Get().Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Serving API")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
