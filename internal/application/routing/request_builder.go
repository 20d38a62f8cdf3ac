package routing

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/order"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// Submission defaults. Every order ships as a single unit load from the
// store's side; the provider derives service duration itself.
const (
	submissionName  = "OSMS"
	defaultDuration = 0
	defaultLoad     = 1
)

// RequestBuilder maps a local order, joined with its owning client and
// shipping address, into the provider's order-submission shape. The built
// submission is validated here so a bad order surfaces as that order's build
// failure and never reaches the batch.
type RequestBuilder struct {
	validate *validator.Validate
}

// NewRequestBuilder creates a new RequestBuilder
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{validate: validator.New()}
}

// Build converts one order into a RouteSubmission. Missing or invalid joined
// data is a data-integrity fault and is returned as an error, never papered
// over.
func (b *RequestBuilder) Build(o *order.Order) (routing.RouteSubmission, error) {
	if o.ShippingAddress == nil {
		return routing.RouteSubmission{}, fmt.Errorf("%w: order %d", order.ErrMissingShippingAddress, o.ID)
	}
	if o.Client == nil {
		return routing.RouteSubmission{}, fmt.Errorf("%w: order %d", order.ErrMissingClient, o.ID)
	}

	addr := o.ShippingAddress
	routeAddress := fmt.Sprintf("%s, %s, %s - %s", addr.Address, addr.City, addr.Country, addr.ZipCode)

	submission := routing.RouteSubmission{
		Name:                submissionName,
		Locations:           []routing.SubmissionLocation{{Address: routeAddress}},
		Phone:               addr.ContactNo,
		Email:               o.Client.Email,
		Duration:            defaultDuration,
		Load:                defaultLoad,
		Instructions:        o.Note,
		TimeWindows:         []routing.SubmissionTimeWindow{},
		CustomerOrderNumber: strconv.FormatInt(o.ID, 10),
	}

	if err := b.validate.Struct(&submission); err != nil {
		return routing.RouteSubmission{}, fmt.Errorf("order %d: invalid route submission: %w", o.ID, err)
	}

	return submission, nil
}
