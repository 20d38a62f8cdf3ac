package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/order"
)

func testOrder() *order.Order {
	return &order.Order{
		ID:       42,
		ClientID: 7,
		Note:     "leave at the back door",
		Client: &order.Client{
			ID:        7,
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		},
		ShippingAddress: &order.ShippingAddress{
			OrderID:   42,
			Address:   "1 Main St",
			City:      "Ames",
			Country:   "US",
			ZipCode:   "50010",
			ContactNo: "+1-515-555-0199",
		},
	}
}

func TestRequestBuilder_Build(t *testing.T) {
	builder := NewRequestBuilder()

	submission, err := builder.Build(testOrder())
	require.NoError(t, err)

	assert.Equal(t, "OSMS", submission.Name)
	assert.Equal(t, "42", submission.CustomerOrderNumber)
	assert.Equal(t, "jane@example.com", submission.Email)
	assert.Equal(t, "+1-515-555-0199", submission.Phone)
	assert.Equal(t, "leave at the back door", submission.Instructions)
	assert.Equal(t, 0, submission.Duration)
	assert.Equal(t, 1, submission.Load)

	require.Len(t, submission.Locations, 1)
	assert.Equal(t, "1 Main St, Ames, US - 50010", submission.Locations[0].Address)

	assert.NotNil(t, submission.TimeWindows)
	assert.Empty(t, submission.TimeWindows)
}

func TestRequestBuilder_Build_EmptyNote(t *testing.T) {
	o := testOrder()
	o.Note = ""

	submission, err := NewRequestBuilder().Build(o)
	require.NoError(t, err)

	assert.Equal(t, "", submission.Instructions)
}

func TestRequestBuilder_Build_MissingShippingAddress(t *testing.T) {
	o := testOrder()
	o.ShippingAddress = nil

	_, err := NewRequestBuilder().Build(o)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrMissingShippingAddress)
}

func TestRequestBuilder_Build_MissingClient(t *testing.T) {
	o := testOrder()
	o.Client = nil

	_, err := NewRequestBuilder().Build(o)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrMissingClient)
}

func TestRequestBuilder_Build_EmptyContactNo(t *testing.T) {
	o := testOrder()
	o.ShippingAddress.ContactNo = ""

	_, err := NewRequestBuilder().Build(o)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid route submission")
}

func TestRequestBuilder_Build_MalformedEmail(t *testing.T) {
	o := testOrder()
	o.Client.Email = "not-an-email"

	_, err := NewRequestBuilder().Build(o)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid route submission")
}
