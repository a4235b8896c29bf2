package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"freeflix/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
	}
	flags := cmd.Flags()
	flags.String("host", "", "listen host")
	flags.IntP("port", "p", 0, "listen port")
	flags.String("tmdb-key", "", "TMDB API key (empty serves mock data)")
	flags.Bool("demo", false, "serve mock data even when a TMDB key is set")
	flags.String("cache-dir", "", "metadata cache directory")
	flags.String("log-file", "", "also write logs to this rotating file")
	flags.String("default-source", "", "embed provider used for new players")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		manager := opts.manager()
		v := manager.Viper()
		lo.Must0(v.BindPFlag("server.host", flags.Lookup("host")))
		lo.Must0(v.BindPFlag("server.port", flags.Lookup("port")))
		lo.Must0(v.BindPFlag("metadata.tmdbApiKey", flags.Lookup("tmdb-key")))
		lo.Must0(v.BindPFlag("metadata.demo", flags.Lookup("demo")))
		lo.Must0(v.BindPFlag("metadata.cacheDir", flags.Lookup("cache-dir")))
		lo.Must0(v.BindPFlag("log.file", flags.Lookup("log-file")))
		lo.Must0(v.BindPFlag("player.defaultSource", flags.Lookup("default-source")))

		settings, err := manager.Load()
		if err != nil {
			return err
		}
		restoreLog := setupLogging(settings.Log, cmd.ErrOrStderr())
		defer restoreLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, settings)
	}
	return cmd
}

func serve(ctx context.Context, settings config.Settings) error {
	a := newApp(settings, afero.NewOsFs())
	defer a.Close()

	srv := &http.Server{
		Addr:              settings.Server.Addr(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupLogging sends the standard logger to stderr and, when configured, a
// rotating file. The returned func restores stderr-only output.
func setupLogging(s config.LogSettings, stderr io.Writer) func() {
	if s.File == "" {
		log.SetOutput(stderr)
		return func() {}
	}
	rotator := &lumberjack.Logger{
		Filename:   s.File,
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(stderr, rotator))
	log.Printf("[server] logging to %s", s.File)
	return func() {
		log.SetOutput(stderr)
		rotator.Close()
	}
}
