package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/automenta/mcr/internal/boot"
	"github.com/automenta/mcr/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the service and keep its metrics endpoint up until interrupted",
	Long: `serve wires the full service from configuration and, if metrics are
enabled, exposes Prometheus counters on the configured address. It holds
the process open until SIGINT or SIGTERM so an operator can scrape it;
it does not stand up any request-handling transport of its own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := boot.Build(context.Background(), cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if svc.Metrics != nil {
			srv := metrics.NewServer(cfg.Metrics.Addr)
			if err := srv.Start(); err != nil {
				return err
			}
			defer func() { _ = srv.Stop(ctx) }()
		} else {
			fmt.Println("metrics disabled; serve has nothing to do but wait for shutdown")
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nshutting down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
