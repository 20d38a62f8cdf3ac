package routing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// StatusSyncer refreshes the local shadow copies of placed orders that are
// still in a non-terminal state. Completed placements are excluded from the
// refresh set for good: they are immutable and fetching them again would only
// burn provider calls.
type StatusSyncer struct {
	gateway  routing.OrderGateway
	provider routing.RoutingProvider
	logger   *zap.Logger
}

// NewStatusSyncer creates a new StatusSyncer
func NewStatusSyncer(gateway routing.OrderGateway, provider routing.RoutingProvider, logger *zap.Logger) *StatusSyncer {
	return &StatusSyncer{
		gateway:  gateway,
		provider: provider,
		logger:   logger,
	}
}

// UpdatePlacedOrdersStatus runs one refresh cycle. Each placed order's
// fetch-and-overwrite is its own unit; a failure is recorded and skipped,
// never propagated to the batch. An error is returned only when the
// refreshable set itself cannot be loaded.
func (s *StatusSyncer) UpdatePlacedOrdersStatus(ctx context.Context) (*RefreshResult, error) {
	placements, err := s.gateway.FindRefreshable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load refreshable placed orders: %w", err)
	}

	result := &RefreshResult{TotalCount: len(placements)}
	if len(placements) == 0 {
		result.CompletedAt = time.Now()
		return result, nil
	}

	outcomes := make(chan refreshOutcome, len(placements))
	var wg sync.WaitGroup
	for i := range placements {
		wg.Add(1)
		go func(placed routing.PlacedOrder) {
			defer wg.Done()
			outcomes <- s.refreshOne(ctx, placed)
		}(placements[i])
	}
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.err != nil {
			s.logger.Error("Placed order refresh failed; will retry next cycle",
				zap.Int64("order_id", outcome.orderID),
				zap.String("uuid", outcome.uuid),
				zap.Error(outcome.err),
			)
			result.FailedCount++
			result.Failures = append(result.Failures, ItemFailure{
				OrderID: outcome.orderID,
				UUID:    outcome.uuid,
				Reason:  outcome.err.Error(),
			})
			continue
		}
		result.SuccessCount++
		result.Refreshed = append(result.Refreshed, *outcome.refreshed)
	}

	result.CompletedAt = time.Now()
	return result, nil
}

// refreshOutcome is the settled result of one placed order's refresh unit
type refreshOutcome struct {
	orderID   int64
	uuid      string
	refreshed *routing.PlacedOrder
	err       error
}

// refreshOne fetches the current remote detail for one placed order and
// overwrites the local shadow copy. UUID and CustomerOrderNumber come from
// the local row and are never taken from the remote payload.
func (s *StatusSyncer) refreshOne(ctx context.Context, placed routing.PlacedOrder) refreshOutcome {
	detail, err := s.provider.GetOrder(ctx, placed.UUID)
	if err != nil {
		return refreshOutcome{
			orderID: placed.CustomerOrderNumber,
			uuid:    placed.UUID,
			err:     fmt.Errorf("fetch order detail: %w", err),
		}
	}

	record := recordFromDetail(detail, placed.CustomerOrderNumber, s.logger)
	// Keyed by the local row, not whatever the provider echoed.
	record.PlacedOrder.UUID = placed.UUID
	for i := range record.TimeWindows {
		record.TimeWindows[i].UUID = placed.UUID
	}
	for i := range record.Locations {
		record.Locations[i].UUID = placed.UUID
	}

	if err := s.gateway.SaveRefresh(ctx, record); err != nil {
		return refreshOutcome{
			orderID: placed.CustomerOrderNumber,
			uuid:    placed.UUID,
			err:     fmt.Errorf("persist refresh: %w", err),
		}
	}

	return refreshOutcome{
		orderID:   placed.CustomerOrderNumber,
		uuid:      placed.UUID,
		refreshed: &record.PlacedOrder,
	}
}
