package routing

import (
	"context"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/order"
)

// ---------------------------------------------------------------------------
// Outbound Submission Payload
// ---------------------------------------------------------------------------

// SubmissionLocation is a stop in an outbound route submission
type SubmissionLocation struct {
	Address string `json:"address" validate:"required"`
}

// SubmissionTimeWindow is a requested delivery window in a route submission
type SubmissionTimeWindow struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// RouteSubmission is one entry of the outbound batch payload sent to the
// routing provider. It is transient and never persisted. The provider is
// expected to echo CustomerOrderNumber back unchanged; it carries the local
// order ID for the return trip.
type RouteSubmission struct {
	Name                string                 `json:"name"`
	Locations           []SubmissionLocation   `json:"locations" validate:"required,min=1,dive"`
	Phone               string                 `json:"phone" validate:"required"`
	Email               string                 `json:"email" validate:"required,email"`
	Duration            int                    `json:"duration"`
	Load                int                    `json:"load"`
	Instructions        string                 `json:"instructions"`
	TimeWindows         []SubmissionTimeWindow `json:"timeWindows" validate:"dive"`
	CustomerOrderNumber string                 `json:"customerOrderNumber" validate:"required"`
}

// SubmissionAck is the provider's per-order acknowledgement of a batch submit
type SubmissionAck struct {
	UUID                string
	CustomerOrderNumber string
}

// RemoteOrderDetail is the full provider-side state of one placed order as
// returned by a fetch-by-uuid. Status carries the raw provider value; callers
// decide how to treat values outside the known lifecycle.
type RemoteOrderDetail struct {
	UUID                string
	Name                string
	Email               string
	Phone               string
	Instructions        string
	IsScheduled         bool
	IsCompleted         bool
	DisplayOrderID      string
	RoutificOrderNumber int64
	CustomerOrderNumber string
	WorkspaceID         int64
	Status              string
	TimeWindows         []TimeWindow
	Locations           []Location
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// RoutingProvider is the port to the external route-optimization provider.
// The concrete adapter lives in the infrastructure layer; it holds only
// configuration, never persisted state.
type RoutingProvider interface {
	// SubmitOrders submits the whole batch in one call. Transport failures
	// and non-success responses fail the entire batch with
	// ErrRoutingUnavailable; the provider gives no partial result here.
	SubmitOrders(ctx context.Context, batch []RouteSubmission) ([]SubmissionAck, error)

	// GetOrder fetches the full detail of one previously-submitted order.
	// Calls are independent: one failure must not affect sibling fetches.
	GetOrder(ctx context.Context, uuid string) (*RemoteOrderDetail, error)
}

// OrderGateway is the storage port for the routing engine. Implementations
// must make SavePlacement and SaveRefresh atomic per record: all writes for
// one order commit or roll back together, while records of different orders
// remain independent.
type OrderGateway interface {
	// FindUnplaced returns all orders eligible for submission
	// (IsPlaced == false), with client and shipping address joined
	FindUnplaced(ctx context.Context) ([]order.Order, error)

	// SavePlacement persists a new placement record and flips the source
	// order's IsPlaced flag in one transaction. A duplicate UUID is
	// rejected with ErrPlacementExists.
	SavePlacement(ctx context.Context, record *PlacementRecord) error

	// FindRefreshable returns placed orders whose status is non-terminal
	FindRefreshable(ctx context.Context) ([]PlacedOrder, error)

	// SaveRefresh overwrites a placement record keyed by UUID, leaving UUID
	// and CustomerOrderNumber untouched, in one transaction. Returns
	// ErrPlacedOrderNotFound if no placement exists for the UUID.
	SaveRefresh(ctx context.Context, record *PlacementRecord) error
}
