package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	approuting "github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/application/routing"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/cache"
)

// ---------------------------------------------------------------------------
// Test Doubles
// ---------------------------------------------------------------------------

type stubProcessor struct {
	calls atomic.Int32
	err   error
}

func (s *stubProcessor) ProcessOrders(ctx context.Context) (*approuting.ReconcileResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &approuting.ReconcileResult{CompletedAt: time.Now()}, nil
}

type stubRefresher struct {
	calls atomic.Int32
	err   error
}

func (s *stubRefresher) UpdatePlacedOrdersStatus(ctx context.Context) (*approuting.RefreshResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &approuting.RefreshResult{CompletedAt: time.Now()}, nil
}

type deniedLock struct{}

func (deniedLock) Acquire(context.Context, time.Duration) (bool, error) { return false, nil }
func (deniedLock) Release(context.Context) error                        { return nil }

func testConfig() RoutingSchedulerConfig {
	return RoutingSchedulerConfig{
		SyncInterval: 50 * time.Millisecond,
		CycleTimeout: time.Second,
		LockTTL:      time.Second,
	}
}

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestRoutingSchedulerConfig_Validate(t *testing.T) {
	cfg := DefaultRoutingSchedulerConfig()
	assert.NoError(t, cfg.Validate())

	cfg = DefaultRoutingSchedulerConfig()
	cfg.SyncInterval = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultRoutingSchedulerConfig()
	cfg.CycleTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	// Lock must outlive the cycle
	cfg = DefaultRoutingSchedulerConfig()
	cfg.LockTTL = cfg.CycleTimeout - time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

// ---------------------------------------------------------------------------
// Scheduler Tests
// ---------------------------------------------------------------------------

func TestRoutingScheduler_RunsBothCycles(t *testing.T) {
	processor := &stubProcessor{}
	refresher := &stubRefresher{}

	s, err := NewRoutingScheduler(testConfig(), processor, refresher, nil, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(stopCtx)
	}()

	require.Eventually(t, func() bool {
		return processor.calls.Load() >= 2 && refresher.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestRoutingScheduler_RefreshRunsAfterPlacementFailure(t *testing.T) {
	processor := &stubProcessor{err: errors.New("provider down")}
	refresher := &stubRefresher{}

	s, err := NewRoutingScheduler(testConfig(), processor, refresher, nil, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(stopCtx)
	}()

	require.Eventually(t, func() bool {
		return refresher.calls.Load() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestRoutingScheduler_SkipsCycleWhenLockHeld(t *testing.T) {
	processor := &stubProcessor{}
	refresher := &stubRefresher{}

	s, err := NewRoutingScheduler(testConfig(), processor, refresher, deniedLock{}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))

	time.Sleep(120 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	assert.Equal(t, int32(0), processor.calls.Load())
	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestRoutingScheduler_StartIdempotent(t *testing.T) {
	s, err := NewRoutingScheduler(testConfig(), &stubProcessor{}, &stubRefresher{}, cache.NewMemorySyncLock(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
}

func TestRoutingScheduler_StopWithoutStart(t *testing.T) {
	s, err := NewRoutingScheduler(testConfig(), &stubProcessor{}, &stubRefresher{}, nil, zap.NewNop())
	require.NoError(t, err)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(stopCtx))
}
