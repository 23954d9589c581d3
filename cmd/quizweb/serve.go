package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/carousel"
	"github.com/claes/quizweb/internal/catalog"
	apphttp "github.com/claes/quizweb/internal/http"
	"github.com/claes/quizweb/internal/session"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game hub and archive pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	clock, err := archive.NewZoneClock(cfg.TimeZone)
	if err != nil {
		return err
	}

	sessions := session.NewManager(func(gameKey string, sig carousel.Signal) *carousel.Component {
		return carousel.New(st, gameKey,
			carousel.WithSignal(sig),
			carousel.WithLogger(logger.With(zap.String("component", "carousel"))),
		)
	}, cfg.SessionTTL, logger)

	handler := apphttp.NewServer(apphttp.Options{
		Catalog:       cat,
		Store:         st,
		Sessions:      sessions,
		Clock:         clock,
		Logger:        logger,
		BasePath:      cfg.BasePath,
		StaticDir:     staticDir(cfg.StaticDir, logger),
		QuestionCount: cfg.QuestionCount,
		RenderWait:    cfg.RenderWait,
	})

	srv := &nethttp.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.Addr), zap.String("base", cfg.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx, cfg.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			_ = srv.Close()
		}
		return nil
	})

	err = g.Wait()
	logger.Info("server stopped")
	return err
}

// staticDir disables image serving when the directory is missing.
func staticDir(dir string, logger *zap.Logger) string {
	if dir == "" {
		return ""
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		logger.Warn("static directory unavailable, images disabled", zap.String("dir", dir))
		return ""
	}
	return dir
}
