package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/confio/stakevote/x/voting"
)

const shutdownTimeout = 5 * time.Second

// ServeCmd starts the rest server on the configured address.
func ServeCmd(d *daemon) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the voting queries and messages over http",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := d.loadEngine(cmd)
			if err != nil {
				return err
			}
			router := mux.NewRouter()
			voting.AppModuleBasic{}.RegisterRESTRoutes(engine, router, d.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, &http.Server{Addr: d.cfg.RESTAddress, Handler: router}, d)
		},
	}
}

// serve runs srv until ctx is done
func serve(ctx context.Context, srv *http.Server, d *daemon) error {
	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("starting rest server", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	d.logger.Info("shutting down rest server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
