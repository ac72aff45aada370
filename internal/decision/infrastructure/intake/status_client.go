package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// StatusClient reports the final loan decision back to the intake service.
type StatusClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewStatusClient(baseURL string, timeout time.Duration) *StatusClient {
	return &StatusClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UpdateStatus issues PUT /applications/{id}/status with the final outcome.
func (c *StatusClient) UpdateStatus(ctx context.Context, applicationID string, req events.UpdateStatusRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal status update: %w", err)
	}

	url := fmt.Sprintf("%s/applications/%s/status", c.baseURL, applicationID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build status update request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("status update for application %s: %w", applicationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("intake service returned status %d for application %s", resp.StatusCode, applicationID)
	}
	return nil
}
