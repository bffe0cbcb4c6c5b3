package cli

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/higexxp/issuedash/internal/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			if port == 0 {
				port = deps.Config.Port
			}

			h := server.NewHandler(server.HandlerConfig{
				Dependencies: deps.Deps,
				Time:         deps.Time,
				Sync:         deps.Sync,
				Broadcaster:  deps.Broadcaster,
				Logger:       deps.Logger,
			})
			mux := http.NewServeMux()
			h.RegisterRoutes(mux)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			deps.Logger.Info("starting dashboard API", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (defaults to config)")
	return cmd
}
