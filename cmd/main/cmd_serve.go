package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [corpus] [n] [seed]",
		Short: "Train once and serve generated sentences over HTTP",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.ApiAddr = addr
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			model, seed, err := flags.trainModel(cmd, cfg, logger)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			NewGenerateAPI(model, seed, cfg, logger).RegisterRoutes(mux)
			apiHttpServer := &http.Server{Addr: cfg.Server.ApiAddr, Handler: mux}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errChan := make(chan error, 1)
			go func() {
				logger.Info("Starting api server", "address", apiHttpServer.Addr)
				if err := apiHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
				close(errChan)
			}()

			select {
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("api server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Stopping api server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
			defer cancel()
			if err = apiHttpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("Api server shutdown failed", "error", err)
				return err
			}
			logger.Info("Api server stopped.")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server_config.api_addr)")
	return cmd
}
