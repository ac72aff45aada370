// Package bureau contains the HTTP client and cache adapters for the
// external credit bureau.
package bureau

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/port"
)

// Client calls the bureau's score endpoint. It implements port.BureauGateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a bureau client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchScore retrieves the bureau score for a CPF. A 404 maps to
// port.ErrScoreNotFound; any other non-2xx status or transport failure is a
// plain error. Retrying, if any, belongs to the caller's transport.
func (c *Client) FetchScore(ctx context.Context, cpf string) (model.BureauScore, error) {
	url := fmt.Sprintf("%s/api/bureau/score/%s", c.baseURL, cpf)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.BureauScore{}, fmt.Errorf("build bureau request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.BureauScore{}, fmt.Errorf("bureau score request for cpf %s: %w", cpf, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.BureauScore{}, fmt.Errorf("cpf %s: %w", cpf, port.ErrScoreNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return model.BureauScore{}, fmt.Errorf("bureau score request for cpf %s: unexpected status %d", cpf, resp.StatusCode)
	}

	var score model.BureauScore
	if err := json.NewDecoder(resp.Body).Decode(&score); err != nil {
		return model.BureauScore{}, fmt.Errorf("decode bureau score for cpf %s: %w", cpf, err)
	}
	return score, nil
}
