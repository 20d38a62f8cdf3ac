package routing

import (
	"time"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// ItemFailure describes one order that failed inside an otherwise-successful
// sync cycle. Failures are reported, never raised: one bad order must not
// fail the cycle.
type ItemFailure struct {
	// OrderID is the local order number, zero when it could not be resolved
	OrderID int64 `json:"order_id,omitempty"`
	// UUID is the remote identifier, empty before the provider assigned one
	UUID   string `json:"uuid,omitempty"`
	Reason string `json:"reason"`
}

// ReconcileResult is the outcome of one placement cycle
type ReconcileResult struct {
	// TotalCount is the number of eligible (unplaced) orders found
	TotalCount   int                   `json:"total_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	Placed       []routing.PlacedOrder `json:"placed"`
	Failures     []ItemFailure         `json:"failures,omitempty"`
	CompletedAt  time.Time             `json:"completed_at"`
}

// RefreshResult is the outcome of one status refresh cycle
type RefreshResult struct {
	// TotalCount is the number of non-terminal placed orders found
	TotalCount   int                   `json:"total_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	Refreshed    []routing.PlacedOrder `json:"refreshed"`
	Failures     []ItemFailure         `json:"failures,omitempty"`
	CompletedAt  time.Time             `json:"completed_at"`
}
