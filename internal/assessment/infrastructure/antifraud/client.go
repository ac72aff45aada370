package antifraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// Client calls the external anti-fraud scoring service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type checkRequest struct {
	ApplicationID        string          `json:"applicationId"`
	CPF                  string          `json:"cpf"`
	AmountRequested      decimal.Decimal `json:"amountRequested"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
}

// CheckFraud submits the application for fraud scoring and returns the result.
func (c *Client) CheckFraud(ctx context.Context, app events.LoanApplicationReceived) (model.AntiFraudScore, error) {
	payload, err := json.Marshal(checkRequest{
		ApplicationID:        app.ApplicationID,
		CPF:                  app.CPF,
		AmountRequested:      app.AmountRequested,
		NumberOfInstallments: app.NumberOfInstallments,
		MonthlyIncome:        app.MonthlyIncome,
	})
	if err != nil {
		return model.AntiFraudScore{}, fmt.Errorf("marshal anti-fraud request: %w", err)
	}

	url := fmt.Sprintf("%s/api/antifraud/check", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return model.AntiFraudScore{}, fmt.Errorf("build anti-fraud request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AntiFraudScore{}, fmt.Errorf("anti-fraud request for application %s: %w", app.ApplicationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.AntiFraudScore{}, fmt.Errorf("anti-fraud service returned status %d for application %s", resp.StatusCode, app.ApplicationID)
	}

	var score model.AntiFraudScore
	if err := json.NewDecoder(resp.Body).Decode(&score); err != nil {
		return model.AntiFraudScore{}, fmt.Errorf("decode anti-fraud response: %w", err)
	}
	return score, nil
}
