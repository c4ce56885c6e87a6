package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mutt/internal/httpapi"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func runServe(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	cfg := httpapi.Config{
		Service:          a.svc,
		Addr:             addr,
		LeaderboardLimit: a.cfg.Leaderboard.Limit,
		Logger:           a.log,
	}
	if a.graph != nil {
		cfg.Ancestry = a.graph
	}
	return httpapi.NewServer(cfg).Serve(ctx)
}
