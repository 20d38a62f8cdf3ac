package routific

import (
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// ---------------------------------------------------------------------------
// Wire Types
// ---------------------------------------------------------------------------

// submissionAckResponse is one entry of the batch-submit response body
type submissionAckResponse struct {
	UUID                string `json:"uuid"`
	CustomerOrderNumber string `json:"customerOrderNumber"`
}

// timeWindowResponse is a scheduled delivery window in an order detail
type timeWindowResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// locationResponse is a geocoded stop in an order detail
type locationResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Status    string  `json:"status"`
}

// orderDetailResponse is the response body of a fetch-by-uuid
type orderDetailResponse struct {
	UUID                string               `json:"uuid"`
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	Instructions        string               `json:"instructions"`
	IsScheduled         bool                 `json:"isScheduled"`
	IsCompleted         bool                 `json:"isCompleted"`
	DisplayOrderID      string               `json:"displayOrderId"`
	RoutificOrderNumber int64                `json:"routificOrderNumber"`
	CustomerOrderNumber string               `json:"customerOrderNumber"`
	WorkspaceID         int64                `json:"workspaceId"`
	Status              string               `json:"status"`
	TimeWindows         []timeWindowResponse `json:"timeWindows"`
	Locations           []locationResponse   `json:"locations"`
}

// errorResponse is the provider's error envelope on non-2xx responses
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

// toDomain maps an order detail response to the domain representation
func (r *orderDetailResponse) toDomain() *routing.RemoteOrderDetail {
	detail := &routing.RemoteOrderDetail{
		UUID:                r.UUID,
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Instructions:        r.Instructions,
		IsScheduled:         r.IsScheduled,
		IsCompleted:         r.IsCompleted,
		DisplayOrderID:      r.DisplayOrderID,
		RoutificOrderNumber: r.RoutificOrderNumber,
		CustomerOrderNumber: r.CustomerOrderNumber,
		WorkspaceID:         r.WorkspaceID,
		Status:              r.Status,
		TimeWindows:         make([]routing.TimeWindow, 0, len(r.TimeWindows)),
		Locations:           make([]routing.Location, 0, len(r.Locations)),
	}

	for _, w := range r.TimeWindows {
		detail.TimeWindows = append(detail.TimeWindows, routing.TimeWindow{
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}
	for _, l := range r.Locations {
		detail.Locations = append(detail.Locations, routing.Location{
			Address:   l.Address,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			Timezone:  l.Timezone,
			Status:    l.Status,
		})
	}

	return detail
}
