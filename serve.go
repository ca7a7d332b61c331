package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kiriseka/portfolio/internal/config"
	"github.com/kiriseka/portfolio/internal/contact"
	"github.com/kiriseka/portfolio/internal/content"
	"github.com/kiriseka/portfolio/internal/server"
	"github.com/kiriseka/portfolio/internal/store"
)

// maxContactSessions bounds how many contact-form sessions are tracked
// at once.
const maxContactSessions = 10000

func newTransmitter(c config.ContactConfig) contact.Transmitter {
	if c.Mode == config.ContactSMTP {
		return &contact.SMTP{
			Host: c.SMTPHost,
			Port: c.SMTPPort,
			User: c.SMTPUser,
			Pass: c.SMTPPass,
			To:   c.ToEmail,
		}
	}
	return contact.Simulated{Delay: c.Delay}
}

func runServe(ctx context.Context) error {
	gin.SetMode(cfg.GinMode)

	docs, err := content.NewStore(cfg.ContentPath)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx := newTransmitter(cfg.Contact)
	svc := contact.NewService(tx, db, contact.NewSessions(time.Hour, maxContactSessions), logger)

	srv, err := server.New(server.Deps{
		Config:  cfg,
		Content: docs,
		Store:   db,
		Contact: svc,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var watcher *content.Watcher
	if cfg.ContentWatch {
		if watcher, err = content.NewWatcher(docs, logger); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", httpServer.Addr),
			zap.String("contact", tx.Name()),
			zap.String("content", contentSource(docs)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		srv.Wait()
		logger.Info("server stopped")
		return err
	})

	g.Go(func() error {
		return sweepVisitors(ctx, db, cfg.VisitorRetention, cfg.SweepInterval)
	})

	if watcher != nil {
		g.Go(func() error { return watcher.Run(ctx) })
	}

	return g.Wait()
}

// sweepVisitors prunes old visitor records at start-up and then every
// interval until ctx is done.
func sweepVisitors(ctx context.Context, db *store.Store, retention, interval time.Duration) error {
	prune := func() {
		n, err := db.PruneVisitors(ctx, time.Now(), retention)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Warn("visitor cleanup failed", zap.Error(err))
		case n > 0:
			logger.Info("privacy cleanup", zap.Int64("removed", n), zap.Duration("retention", retention))
		}
	}

	prune()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			prune()
		}
	}
}

func contentSource(s *content.Store) string {
	if s.Path() == "" {
		return "embedded"
	}
	return s.Path()
}
