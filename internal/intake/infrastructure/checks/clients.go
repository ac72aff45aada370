// Package checks provides HTTP adapters for the external validation
// services consulted at intake. Each adapter degrades conservatively when
// its service is unreachable: the applicant is treated as not cleared
// rather than waved through.
package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gustavodinniz/loan-flow/internal/intake/domain/port"
)

type CPFValidationClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCPFValidationClient(baseURL string, timeout time.Duration) *CPFValidationClient {
	return &CPFValidationClient{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

// ValidateCPF queries the CPF registry. On any transport or decode failure
// the CPF is reported as not regular.
func (c *CPFValidationClient) ValidateCPF(ctx context.Context, cpf string) port.CPFValidation {
	var result port.CPFValidation
	url := fmt.Sprintf("%s/api/cpf-validation/%s", c.baseURL, cpf)
	if err := getJSON(ctx, c.httpClient, url, &result); err != nil {
		return port.CPFValidation{
			Valid:   true,
			Regular: false,
			Message: "CPF validation service unavailable: " + err.Error(),
		}
	}
	return result
}

type AccountValidationClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAccountValidationClient(baseURL string, timeout time.Duration) *AccountValidationClient {
	return &AccountValidationClient{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

// CheckAccount queries account status. Failures report an inactive account.
func (c *AccountValidationClient) CheckAccount(ctx context.Context, cpf string) port.AccountValidation {
	var result port.AccountValidation
	url := fmt.Sprintf("%s/api/account-validation/%s", c.baseURL, cpf)
	if err := getJSON(ctx, c.httpClient, url, &result); err != nil {
		return port.AccountValidation{
			Active:  false,
			Message: "Account validation service unavailable: " + err.Error(),
		}
	}
	return result
}

type RestrictionClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRestrictionClient(baseURL string, timeout time.Duration) *RestrictionClient {
	return &RestrictionClient{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

// CheckRestrictions queries the internal restriction list. Failures report
// the applicant as restricted.
func (c *RestrictionClient) CheckRestrictions(ctx context.Context, cpf string) port.RestrictionCheck {
	var result port.RestrictionCheck
	url := fmt.Sprintf("%s/api/internal-restrictions/%s", c.baseURL, cpf)
	if err := getJSON(ctx, c.httpClient, url, &result); err != nil {
		return port.RestrictionCheck{
			Restricted: true,
			Message:    "Restriction service unavailable: " + err.Error(),
		}
	}
	return result
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
