package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/app/models"
)

// GeneratePath is the route of the itinerary generation endpoint.
const GeneratePath = "/api/generate-itinerary"

// maxErrorBody bounds how much of a failed response is read looking for "detail".
const maxErrorBody = 64 << 10

// Client posts itinerary requests to the generation endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a Client for baseURL. A zero timeout leaves the call
// unbounded, like any plain http.Client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// Generate sends one request and classifies the outcome. Non-2xx answers
// become *models.RequestError, anything without a usable response becomes
// *models.TransportError.
func (c *Client) Generate(ctx context.Context, req models.ItineraryRequest) (*models.ItineraryResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &models.TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, &models.TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("Itinerary request failed", zap.String("city", req.City), zap.Error(err))
		return nil, &models.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &models.RequestError{
			StatusCode: resp.StatusCode,
			Message:    detailFrom(resp.Body),
		}
		c.logger.Warn("Itinerary endpoint returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", reqErr.Message),
		)
		return nil, reqErr
	}

	var result models.ItineraryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn("Failed to decode itinerary response", zap.Error(err))
		return nil, &models.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return &result, nil
}

// detailFrom extracts the "detail" message of an error body, falling back to
// the generic message when the body is not JSON or carries no detail.
func detailFrom(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return models.MsgRequestFailed
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err != nil || errResp.Detail == "" {
		return models.MsgRequestFailed
	}
	return errResp.Detail
}
