package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazypower/frecd/internal/config"
	"github.com/lazypower/frecd/internal/frecency"
	"github.com/lazypower/frecd/internal/history"
	"github.com/lazypower/frecd/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	// Resolve rankings path
	storePath := cfg.Store.Path
	if storePath == "" {
		var err error
		storePath, err = frecency.DefaultStorePath()
		if err != nil {
			return fmt.Errorf("resolve store path: %w", err)
		}
	}

	store := frecency.WithPath(storePath)
	store.SetHalfLifeDays(cfg.Store.HalfLifeDays)
	if err := store.Load(); err != nil {
		// Rankings are cache data, not a system of record: a corrupt file
		// should not keep the daemon down.
		fmt.Fprintf(os.Stderr, "warning: could not load rankings (%v), starting empty\n", err)
	}

	// History journal is optional; without it the daemon still ranks.
	var hist *history.DB
	if cfg.History.Enabled {
		histPath := cfg.History.Path
		if histPath == "" {
			var err error
			histPath, err = history.DefaultDBPath()
			if err != nil {
				return fmt.Errorf("resolve history path: %w", err)
			}
		}
		var err error
		hist, err = history.Open(histPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history disabled (%v)\n", err)
			hist = nil
		} else {
			defer hist.Close()
			fmt.Fprintf(os.Stderr, "  history: %s\n", histPath)
		}
	}

	srv := server.New(store, hist, VersionString())
	srv.StartFlushTimer(time.Duration(cfg.Store.FlushSeconds) * time.Second)
	defer srv.Stop()

	addr := cfg.ListenAddr()
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "frecd serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  rankings: %s\n", storePath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}

	// Last flush so mutations inside the final debounce window survive.
	return srv.Flush()
}
