package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook receiver and the send API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateForServe(); err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Server.Port
			}

			a := newApp(cfg)
			a.logEvents()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.server().ListenAndServe(ctx, fmt.Sprintf(":%d", port), cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from SERVER_PORT)")
	return cmd
}
