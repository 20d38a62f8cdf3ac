package routific

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

func testSubmission(orderNumber string) routing.RouteSubmission {
	return routing.RouteSubmission{
		Name:                "OSMS",
		Locations:           []routing.SubmissionLocation{{Address: "12 Elm St, Boise, US - 83702"}},
		Phone:               "+1-208-555-0101",
		Email:               "client@example.com",
		Load:                1,
		TimeWindows:         []routing.SubmissionTimeWindow{},
		CustomerOrderNumber: orderNumber,
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&Config{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		WorkspaceID: 99,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_ConfigValidation(t *testing.T) {
	_, err := NewClient(&Config{WorkspaceID: 99})
	assert.ErrorIs(t, err, ErrConfigMissingAPIKey)

	_, err = NewClient(&Config{APIKey: "k"})
	assert.ErrorIs(t, err, ErrConfigMissingWorkspaceID)
}

func TestClient_SubmitOrders(t *testing.T) {
	var gotAuth, gotWorkspace string
	var gotBody []map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotWorkspace = r.URL.Query().Get("workspaceId")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"uuid": "uuid-1", "customerOrderNumber": "1"},
			{"uuid": "uuid-2", "customerOrderNumber": "2"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	acks, err := client.SubmitOrders(context.Background(),
		[]routing.RouteSubmission{testSubmission("1"), testSubmission("2")})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "99", gotWorkspace)
	require.Len(t, gotBody, 2)
	assert.Equal(t, "OSMS", gotBody[0]["name"])

	require.Len(t, acks, 2)
	assert.Equal(t, "uuid-1", acks[0].UUID)
	assert.Equal(t, "1", acks[0].CustomerOrderNumber)
}

func TestClient_SubmitOrders_EmptyBatch(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	acks, err := client.SubmitOrders(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, acks)
}

func TestClient_SubmitOrders_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message": "upstream exploded"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SubmitOrders(context.Background(), []routing.RouteSubmission{testSubmission("1")})

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingUnavailable)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestClient_SubmitOrders_Unreachable(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.SubmitOrders(context.Background(), []routing.RouteSubmission{testSubmission("1")})

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingUnavailable)
}

func TestClient_SubmitOrders_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SubmitOrders(context.Background(), []routing.RouteSubmission{testSubmission("1")})

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingInvalidResponse)
}

func TestClient_GetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/orders/uuid-1", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"uuid": "uuid-1",
			"name": "OSMS",
			"email": "client@example.com",
			"phone": "+1-208-555-0101",
			"instructions": "ring the bell",
			"isScheduled": true,
			"isCompleted": false,
			"displayOrderId": "R-100",
			"routificOrderNumber": 100,
			"customerOrderNumber": "42",
			"workspaceId": 99,
			"status": "scheduled",
			"timeWindows": [{"startTime": "09:00", "endTime": "12:00"}],
			"locations": [{"address": "12 Elm St", "latitude": 43.6, "longitude": -116.2, "timezone": "America/Boise", "status": "geocoded"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	detail, err := client.GetOrder(context.Background(), "uuid-1")

	require.NoError(t, err)
	assert.Equal(t, "uuid-1", detail.UUID)
	assert.Equal(t, "42", detail.CustomerOrderNumber)
	assert.True(t, detail.IsScheduled)
	assert.Equal(t, "scheduled", detail.Status)
	assert.Equal(t, int64(100), detail.RoutificOrderNumber)
	assert.Equal(t, int64(99), detail.WorkspaceID)
	require.Len(t, detail.TimeWindows, 1)
	assert.Equal(t, "09:00", detail.TimeWindows[0].StartTime)
	require.Len(t, detail.Locations, 1)
	assert.Equal(t, 43.6, detail.Locations[0].Latitude)
	assert.Equal(t, "geocoded", detail.Locations[0].Status)
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetOrder(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrPlacedOrderNotFound)
}

func TestClient_GetOrder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetOrder(context.Background(), "uuid-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingRequestFailed)
}

func TestClient_GetOrder_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetOrder(context.Background(), "uuid-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingInvalidResponse)
}

func TestClient_GetOrder_MismatchedUUID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A payload for a different order than the one requested
		_, _ = w.Write([]byte(`{"uuid": "uuid-other", "status": "scheduled"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetOrder(context.Background(), "uuid-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingInvalidResponse)
	assert.Contains(t, err.Error(), "uuid-other")
}

func TestClient_GetOrder_EmptyUUID(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	_, err := client.GetOrder(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRoutingRequestFailed)
}
