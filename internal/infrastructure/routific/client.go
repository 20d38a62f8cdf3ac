package routific

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response

// Client implements routing.RoutingProvider against the Routific product API.
// It is stateless apart from configuration and safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *http.Client
}

var _ routing.RoutingProvider = (*Client)(nil)

// NewClient creates a new Routific API client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// SubmitOrders submits the whole batch in one call. Submissions are validated
// at build time, before they reach the batch; any transport fault or
// non-success status fails the batch with ErrRoutingUnavailable. Nothing is
// retried here because the caller re-selects the same orders next cycle.
func (c *Client) SubmitOrders(ctx context.Context, batch []routing.RouteSubmission) ([]routing.SubmissionAck, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("routific: marshal batch: %w", err)
	}

	submitURL := fmt.Sprintf("%s/v1/orders?workspaceId=%s",
		c.config.BaseURL, strconv.FormatInt(c.config.WorkspaceID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("routific: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", routing.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", routing.ErrRoutingUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: submit returned %d: %s",
			routing.ErrRoutingUnavailable, resp.StatusCode, errorMessage(respBody))
	}

	var acks []submissionAckResponse
	if err := json.Unmarshal(respBody, &acks); err != nil {
		return nil, fmt.Errorf("%w: %v", routing.ErrRoutingInvalidResponse, err)
	}

	result := make([]routing.SubmissionAck, 0, len(acks))
	for _, ack := range acks {
		if ack.UUID == "" {
			return nil, fmt.Errorf("%w: ack without uuid", routing.ErrRoutingInvalidResponse)
		}
		result = append(result, routing.SubmissionAck{
			UUID:                ack.UUID,
			CustomerOrderNumber: ack.CustomerOrderNumber,
		})
	}

	return result, nil
}

// GetOrder fetches the full detail of one previously-submitted order
func (c *Client) GetOrder(ctx context.Context, uuid string) (*routing.RemoteOrderDetail, error) {
	if uuid == "" {
		return nil, fmt.Errorf("%w: empty uuid", routing.ErrRoutingRequestFailed)
	}

	detailURL := fmt.Sprintf("%s/v1/orders/%s", c.config.BaseURL, uuid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailURL, nil)
	if err != nil {
		return nil, fmt.Errorf("routific: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", routing.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", routing.ErrRoutingRequestFailed, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: uuid %s", routing.ErrPlacedOrderNotFound, uuid)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: fetch returned %d: %s",
			routing.ErrRoutingRequestFailed, resp.StatusCode, errorMessage(respBody))
	}

	var detail orderDetailResponse
	if err := json.Unmarshal(respBody, &detail); err != nil {
		return nil, fmt.Errorf("%w: %v", routing.ErrRoutingInvalidResponse, err)
	}
	// The detail keys the local placement record, so a payload for a
	// different order must never be handed back to the caller.
	if detail.UUID != uuid {
		return nil, fmt.Errorf("%w: requested uuid %s, got %q",
			routing.ErrRoutingInvalidResponse, uuid, detail.UUID)
	}

	return detail.toDomain(), nil
}

// setHeaders sets the auth and content headers common to all requests
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// errorMessage extracts a human-readable message from an error response body
func errorMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
