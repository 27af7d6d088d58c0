package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"ai-tutor-be/internal/bootstrap"
	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/server"
	"ai-tutor-be/internal/tracer"
	"ai-tutor-be/pkg/database"
	"ai-tutor-be/pkg/events"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer log.Sync()

	// 2. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing, log)
	defer shutdownTracer(context.Background())

	// 3. Database, only when a persistent todo list is configured
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Error("MAIN", "Unable to connect to database", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, log)
	if err != nil {
		log.Error("MAIN", "Unable to build container", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. First index. A broken corpus is logged and the empty index serves
	// until a reindex succeeds.
	if _, err := container.ReindexService.Reindex(ctx, events.ReasonStartup); err != nil {
		log.Error("MAIN", "Initial indexing failed", map[string]interface{}{"error": err.Error()})
	}

	if err := container.ReindexService.Consume(ctx); err != nil {
		log.Error("MAIN", "Unable to start reindex consumer", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// 6. Server and background services
	srv := server.New(cfg, container)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Run)

	if container.Watcher != nil {
		g.Go(func() error {
			if err := container.Watcher.Run(gctx); err != nil {
				log.Warn("MAIN", "Corpus watcher stopped", map[string]interface{}{"error": err.Error()})
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("MAIN", "Server stopped with error", map[string]interface{}{"error": err.Error()})
	}
}
