package routing

import (
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Routing Errors
// ---------------------------------------------------------------------------

var (
	// ErrRoutingUnavailable indicates the routing provider could not be
	// reached or rejected the batch submission. It covers the whole batch:
	// the provider gives no partial-success signal on submit.
	ErrRoutingUnavailable = errors.New("routing: provider unavailable")

	// ErrRoutingRequestFailed indicates a per-order provider request failed
	ErrRoutingRequestFailed = errors.New("routing: provider request failed")

	// ErrRoutingInvalidResponse indicates the provider returned a payload
	// that could not be decoded or contradicts what was submitted
	ErrRoutingInvalidResponse = errors.New("routing: invalid provider response")

	// ErrPlacedOrderNotFound indicates the provider has no order for the uuid
	ErrPlacedOrderNotFound = errors.New("routing: placed order not found")

	// ErrPlacementExists indicates a placement for the uuid is already
	// recorded locally. Expected on retry after a failed persistence unit:
	// the unique index on uuid safely rejects the duplicate.
	ErrPlacementExists = errors.New("routing: placement already recorded")
)

// ---------------------------------------------------------------------------
// PlacementStatus
// ---------------------------------------------------------------------------

// PlacementStatus is the lifecycle status of a placed order on the routing
// provider. The lifecycle is monotonic: not-scheduled -> scheduled ->
// completed, with completed absorbing.
type PlacementStatus string

const (
	// PlacementStatusNotScheduled indicates the order is placed but has no
	// route assignment yet
	PlacementStatusNotScheduled PlacementStatus = "not-scheduled"
	// PlacementStatusScheduled indicates the order is on a planned route
	PlacementStatusScheduled PlacementStatus = "scheduled"
	// PlacementStatusCompleted indicates the delivery is done; terminal
	PlacementStatusCompleted PlacementStatus = "completed"
)

// IsValid returns true if the status is one of the known lifecycle states
func (s PlacementStatus) IsValid() bool {
	switch s {
	case PlacementStatusNotScheduled, PlacementStatusScheduled, PlacementStatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further refresh is expected for the status.
// Unknown provider statuses are treated as non-terminal so they keep being
// observed rather than silently frozen.
func (s PlacementStatus) IsTerminal() bool {
	return s == PlacementStatusCompleted
}

// String returns the string representation of PlacementStatus
func (s PlacementStatus) String() string {
	return string(s)
}

// RefreshableStatuses returns the statuses eligible for a refresh cycle
func RefreshableStatuses() []PlacementStatus {
	return []PlacementStatus{PlacementStatusNotScheduled, PlacementStatusScheduled}
}

// ---------------------------------------------------------------------------
// Remote-Shadow Entities
// ---------------------------------------------------------------------------

// PlacedOrder is the local shadow of an order accepted by the routing
// provider. Exactly one exists per successfully submitted Order;
// CustomerOrderNumber is the local order ID echoed back by the provider.
// UUID and CustomerOrderNumber are immutable after creation; everything else
// is refreshed by the status sync cycle.
type PlacedOrder struct {
	ID                  int64
	UUID                string
	CustomerOrderNumber int64
	Name                string
	Email               string
	Phone               string
	Instructions        string
	IsScheduled         bool
	IsCompleted         bool
	DisplayOrderID      string
	RoutificOrderNumber int64
	WorkspaceID         int64
	Status              PlacementStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TimeWindow is a delivery time window scheduled by the provider, keyed by
// the owning PlacedOrder's UUID. Times are stored verbatim as the provider
// reports them.
type TimeWindow struct {
	ID        int64
	UUID      string
	StartTime string
	EndTime   string
}

// Location is a geocoded stop attached to a placed order, keyed by the
// owning PlacedOrder's UUID. At minimum the drop-off address exists.
type Location struct {
	ID        int64
	UUID      string
	Address   string
	Latitude  float64
	Longitude float64
	Timezone  string
	Status    string
}

// PlacementRecord is one order's fully-detailed remote state: the placed
// order plus its time windows and locations. A record is always persisted as
// a single atomic unit; records of different orders are independent.
type PlacementRecord struct {
	PlacedOrder PlacedOrder
	TimeWindows []TimeWindow
	Locations   []Location
}
