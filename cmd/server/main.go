package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	approuting "github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/application/routing"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/cache"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/config"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/logger"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/persistence"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/routific"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/scheduler"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/interfaces/http/handler"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting OSMS routing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Routing provider
	provider, err := routific.NewClient(&routific.Config{
		APIKey:         cfg.Routing.APIKey,
		BaseURL:        cfg.Routing.BaseURL,
		WorkspaceID:    cfg.Routing.WorkspaceID,
		TimeoutSeconds: cfg.Routing.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create routing provider client", zap.Error(err))
	}

	// Application services
	gateway := persistence.NewGormOrderGateway(db.DB)
	builder := approuting.NewRequestBuilder()
	reconciler := approuting.NewPlacementReconciler(gateway, provider, builder, log)
	syncer := approuting.NewStatusSyncer(gateway, provider, log)

	// Sync lock: Redis when configured, process-local otherwise
	var syncLock cache.SyncLock
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		syncLock = cache.NewRedisSyncLock(redisClient)
		log.Info("Redis sync lock enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		syncLock = cache.NewMemorySyncLock()
	}

	// Scheduler
	if cfg.Scheduler.Enabled {
		routingScheduler, err := scheduler.NewRoutingScheduler(
			scheduler.RoutingSchedulerConfig{
				SyncInterval: cfg.Scheduler.SyncInterval,
				CycleTimeout: cfg.Scheduler.CycleTimeout,
				LockTTL:      cfg.Scheduler.LockTTL,
			},
			reconciler,
			syncer,
			syncLock,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create routing scheduler", zap.Error(err))
		}
		if err := routingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start routing scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := routingScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping routing scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP server
	engine := router.New(router.Config{
		System:  handler.NewSystemHandler(db),
		Routing: handler.NewRoutingHandler(reconciler, syncer, log),
		Logger:  log,
		Env:     cfg.App.Env,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
