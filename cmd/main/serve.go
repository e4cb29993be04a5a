package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoboard/src/scheduler"
	"cryptoboard/src/server"
	"cryptoboard/src/storage"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard page and JSON API",
	Long: `Start the HTTP server. The page, the /api routes and the /ws socket all
render on demand from the provider.

When archive.enabled is set, a cron job also stores a snapshot of the
configured dashboard in the snapshot database.

Example:
  cryptoboard serve -c config/default.yaml`,
	RunE: runServe,
}

var serveHost string
var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "override the listen host")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override the listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	if serveHost != "" {
		a.cfg.Host = serveHost
	}
	if servePort != 0 {
		a.cfg.Port = servePort
	}

	store, err := storage.NewSnapshotStore(a.cfg.MConfig, a.log.Named("storage"))
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.NewDashboardServer(a.cfg.MConfig, a.dash, store, a.log.Named("server"))

	if a.cfg.Archive.Enabled {
		// Two provider round trips per panel pair, each bounded by the timeout.
		timeout := 3 * time.Duration(a.cfg.Network.RequestTimeout) * time.Second
		archive := scheduler.NewArchiveScheduler(a.dash, store, timeout, a.log.Named("archive"))
		if err := archive.Register(a.cfg.Archive.Schedule); err != nil {
			return err
		}
		archive.Start()
		defer archive.Stop()
		srv.Archive = archive
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		a.log.Info("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
