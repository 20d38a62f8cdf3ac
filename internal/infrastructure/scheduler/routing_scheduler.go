package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	approuting "github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/application/routing"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/cache"
)

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// OrderProcessor runs one placement cycle
type OrderProcessor interface {
	ProcessOrders(ctx context.Context) (*approuting.ReconcileResult, error)
}

// StatusRefresher runs one status refresh cycle
type StatusRefresher interface {
	UpdatePlacedOrdersStatus(ctx context.Context) (*approuting.RefreshResult, error)
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// RoutingSchedulerConfig holds configuration for the routing sync scheduler
type RoutingSchedulerConfig struct {
	// SyncInterval is the pause between sync cycles
	SyncInterval time.Duration
	// CycleTimeout bounds one full cycle (placement plus refresh)
	CycleTimeout time.Duration
	// LockTTL is the expiry of the cross-replica sync lock
	LockTTL time.Duration
}

// DefaultRoutingSchedulerConfig returns default configuration
func DefaultRoutingSchedulerConfig() RoutingSchedulerConfig {
	return RoutingSchedulerConfig{
		SyncInterval: 5 * time.Minute,
		CycleTimeout: 2 * time.Minute,
		LockTTL:      3 * time.Minute,
	}
}

// Validate validates the configuration
func (c *RoutingSchedulerConfig) Validate() error {
	if c.SyncInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.CycleTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.LockTTL < c.CycleTimeout {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// RoutingScheduler
// ---------------------------------------------------------------------------

// RoutingScheduler periodically runs the two sync cycles against the routing
// provider: first order placement, then status refresh. Cycles never overlap
// within one process, and the sync lock keeps replicas from running cycles
// concurrently across processes.
type RoutingScheduler struct {
	config    RoutingSchedulerConfig
	processor OrderProcessor
	refresher StatusRefresher
	lock      cache.SyncLock
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewRoutingScheduler creates a new routing sync scheduler
func NewRoutingScheduler(
	config RoutingSchedulerConfig,
	processor OrderProcessor,
	refresher StatusRefresher,
	lock cache.SyncLock,
	logger *zap.Logger,
) (*RoutingScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if lock == nil {
		lock = cache.NewMemorySyncLock()
	}

	return &RoutingScheduler{
		config:    config,
		processor: processor,
		refresher: refresher,
		lock:      lock,
		logger:    logger,
	}, nil
}

// Start starts the scheduler loop
func (s *RoutingScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Routing sync scheduler started",
		zap.Duration("sync_interval", s.config.SyncInterval),
		zap.Duration("cycle_timeout", s.config.CycleTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running cycle to finish
func (s *RoutingScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Routing sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Routing sync scheduler stop timed out")
		return ctx.Err()
	}
}

// loop runs sync cycles on the ticker until the context is cancelled.
// The first cycle runs immediately on start.
func (s *RoutingScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	s.runCycle(ctx)

	ticker := time.NewTicker(s.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle executes one full sync cycle under the cross-replica lock
func (s *RoutingScheduler) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	cycleLogger := s.logger.With(zap.String("cycle_id", cycleID))

	acquired, err := s.lock.Acquire(ctx, s.config.LockTTL)
	if err != nil {
		cycleLogger.Error("Failed to acquire sync lock", zap.Error(err))
		return
	}
	if !acquired {
		cycleLogger.Debug("Sync cycle skipped, lock held elsewhere")
		return
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
			cycleLogger.Warn("Failed to release sync lock", zap.Error(err))
		}
	}()

	cycleCtx, cancel := context.WithTimeout(ctx, s.config.CycleTimeout)
	defer cancel()

	start := time.Now()

	placement, err := s.processor.ProcessOrders(cycleCtx)
	if err != nil {
		cycleLogger.Error("Order placement cycle failed", zap.Error(err))
	} else {
		cycleLogger.Info("Order placement cycle finished",
			zap.Int("total", placement.TotalCount),
			zap.Int("success", placement.SuccessCount),
			zap.Int("failed", placement.FailedCount),
		)
	}

	refresh, err := s.refresher.UpdatePlacedOrdersStatus(cycleCtx)
	if err != nil {
		cycleLogger.Error("Status refresh cycle failed", zap.Error(err))
	} else {
		cycleLogger.Info("Status refresh cycle finished",
			zap.Int("total", refresh.TotalCount),
			zap.Int("success", refresh.SuccessCount),
			zap.Int("failed", refresh.FailedCount),
		)
	}

	cycleLogger.Info("Sync cycle complete", zap.Duration("elapsed", time.Since(start)))
}
