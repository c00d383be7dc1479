package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"agilegame/internal/button"
	"agilegame/internal/config"
	"agilegame/internal/game"
	"agilegame/internal/handlers"
	"agilegame/internal/logging"
	"agilegame/internal/snapshot"
)

//go:embed static/*
var embeddedStatic embed.FS

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.New(os.Stdout, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	store := game.NewStore(
		game.WithSnapshotter(snapshot.NewWriter(cfg.ResultsDir, log)),
		game.WithLogger(log),
	)

	if cfg.NoGPIO {
		log.Warn().Msg("GPIO disabled, web-only mode")
	} else {
		watcher, err := button.Open(button.Config{
			Chip:     cfg.Chip,
			Pin:      cfg.Pin,
			Debounce: cfg.Debounce,
		}, store, log)
		if err != nil {
			log.Warn().Err(err).Msg("GPIO init failed, web-only mode")
		} else {
			defer watcher.Close()
			log.Info().
				Str("chip", cfg.Chip).
				Int("pin", cfg.Pin).
				Dur("debounce", cfg.Debounce).
				Msg("button ready")
		}
	}

	handler, err := newRouter(store, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Streams stay open for the whole session.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
		// Request contexts end with ctx, which is what stops the streams.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return server.Close()
		}
		return nil
	})
	return g.Wait()
}

func newRouter(store *game.Store, log zerolog.Logger) (http.Handler, error) {
	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests(log))
	r.Use(middleware.Recoverer)

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	handlers.NewStreamHandler(store, log).RegisterRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		handlers.NewDashboardHandler(store).RegisterRoutes(r)
		handlers.NewGameHandler(store, log).RegisterRoutes(r)
	})
	return r, nil
}
