package routing

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// PlacementReconciler orchestrates one placement cycle: it loads all
// unplaced orders, submits them to the routing provider as a single batch,
// and for every accepted order fetches the full remote detail and persists
// it atomically, flipping the order's IsPlaced flag.
//
// Per-order work after the batch submit is isolated: a failed detail fetch
// or persistence unit leaves that order unplaced for the next cycle and
// never blocks or rolls back sibling orders.
type PlacementReconciler struct {
	gateway  routing.OrderGateway
	provider routing.RoutingProvider
	builder  *RequestBuilder
	logger   *zap.Logger
}

// NewPlacementReconciler creates a new PlacementReconciler
func NewPlacementReconciler(
	gateway routing.OrderGateway,
	provider routing.RoutingProvider,
	builder *RequestBuilder,
	logger *zap.Logger,
) *PlacementReconciler {
	return &PlacementReconciler{
		gateway:  gateway,
		provider: provider,
		builder:  builder,
		logger:   logger,
	}
}

// ProcessOrders runs one placement cycle and returns the per-cycle result.
// An error is returned only for batch-level faults (loading eligible orders,
// the submit call itself); at that point nothing has been persisted, so the
// whole cycle is safe to retry wholesale. An empty eligible set is a success
// with zero counts, not an error.
func (r *PlacementReconciler) ProcessOrders(ctx context.Context) (*ReconcileResult, error) {
	orders, err := r.gateway.FindUnplaced(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unplaced orders: %w", err)
	}

	result := &ReconcileResult{TotalCount: len(orders)}
	if len(orders) == 0 {
		result.CompletedAt = time.Now()
		return result, nil
	}

	// Build one submission per order. A build failure excludes that order
	// from the batch without aborting the cycle.
	batch := make([]routing.RouteSubmission, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if !o.Eligible() {
			// A placement committed between the select and now; skip it.
			result.TotalCount--
			continue
		}
		submission, err := r.builder.Build(o)
		if err != nil {
			r.logger.Error("Skipping order with incomplete routing data",
				zap.Int64("order_id", o.ID),
				zap.Error(err),
			)
			result.FailedCount++
			result.Failures = append(result.Failures, ItemFailure{OrderID: o.ID, Reason: err.Error()})
			continue
		}
		batch = append(batch, submission)
	}

	if len(batch) == 0 {
		result.CompletedAt = time.Now()
		return result, nil
	}

	acks, err := r.provider.SubmitOrders(ctx, batch)
	if err != nil {
		// Nothing has been persisted yet; the next cycle re-selects the
		// same unplaced orders and retries the submission wholesale.
		return nil, fmt.Errorf("submit order batch: %w", err)
	}

	r.logger.Info("Order batch accepted by routing provider",
		zap.Int("submitted", len(batch)),
		zap.Int("accepted", len(acks)),
	)

	// Settle all accepted orders concurrently; each outcome is captured
	// individually and failures never abort the group.
	outcomes := make(chan placementOutcome, len(acks))
	var wg sync.WaitGroup
	for _, ack := range acks {
		wg.Add(1)
		go func(ack routing.SubmissionAck) {
			defer wg.Done()
			outcomes <- r.reconcileOne(ctx, ack)
		}(ack)
	}
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.err != nil {
			r.logger.Error("Order placement failed; will retry next cycle",
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
		result.Placed = append(result.Placed, *outcome.placed)
	}

	result.CompletedAt = time.Now()
	return result, nil
}

// placementOutcome is the settled result of one order's fetch-and-persist unit
type placementOutcome struct {
	orderID int64
	uuid    string
	placed  *routing.PlacedOrder
	err     error
}

// reconcileOne fetches full detail for one acknowledged order and persists
// its placement record atomically
func (r *PlacementReconciler) reconcileOne(ctx context.Context, ack routing.SubmissionAck) placementOutcome {
	orderID, err := strconv.ParseInt(ack.CustomerOrderNumber, 10, 64)
	if err != nil {
		return placementOutcome{
			uuid: ack.UUID,
			err:  fmt.Errorf("%w: unparseable customer order number %q", routing.ErrRoutingInvalidResponse, ack.CustomerOrderNumber),
		}
	}

	detail, err := r.provider.GetOrder(ctx, ack.UUID)
	if err != nil {
		return placementOutcome{orderID: orderID, uuid: ack.UUID, err: fmt.Errorf("fetch order detail: %w", err)}
	}

	record := recordFromDetail(detail, orderID, r.logger)
	if err := r.gateway.SavePlacement(ctx, record); err != nil {
		return placementOutcome{orderID: orderID, uuid: ack.UUID, err: fmt.Errorf("persist placement: %w", err)}
	}

	return placementOutcome{orderID: orderID, uuid: ack.UUID, placed: &record.PlacedOrder}
}

// recordFromDetail maps a remote order detail to a local placement record.
// Unknown provider statuses are kept verbatim and logged; the refresh cycle
// only ever selects the known non-terminal statuses, so an unknown value can
// never be refreshed into a terminal state by accident.
func recordFromDetail(detail *routing.RemoteOrderDetail, orderID int64, logger *zap.Logger) *routing.PlacementRecord {
	status := routing.PlacementStatus(detail.Status)
	if !status.IsValid() {
		logger.Warn("Routing provider returned unknown placement status",
			zap.String("uuid", detail.UUID),
			zap.String("status", detail.Status),
		)
	}

	record := &routing.PlacementRecord{
		PlacedOrder: routing.PlacedOrder{
			UUID:                detail.UUID,
			CustomerOrderNumber: orderID,
			Name:                detail.Name,
			Email:               detail.Email,
			Phone:               detail.Phone,
			Instructions:        detail.Instructions,
			IsScheduled:         detail.IsScheduled,
			IsCompleted:         detail.IsCompleted,
			DisplayOrderID:      detail.DisplayOrderID,
			RoutificOrderNumber: detail.RoutificOrderNumber,
			WorkspaceID:         detail.WorkspaceID,
			Status:              status,
		},
		TimeWindows: make([]routing.TimeWindow, 0, len(detail.TimeWindows)),
		Locations:   make([]routing.Location, 0, len(detail.Locations)),
	}

	for _, window := range detail.TimeWindows {
		record.TimeWindows = append(record.TimeWindows, routing.TimeWindow{
			UUID:      detail.UUID,
			StartTime: window.StartTime,
			EndTime:   window.EndTime,
		})
	}
	for _, location := range detail.Locations {
		record.Locations = append(record.Locations, routing.Location{
			UUID:      detail.UUID,
			Address:   location.Address,
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
			Timezone:  location.Timezone,
			Status:    location.Status,
		})
	}

	return record
}
