package intake_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavodinniz/loan-flow/internal/decision/infrastructure/intake"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

func TestStatusClient_UpdateStatus(t *testing.T) {
	t.Run("puts the status to the application resource", func(t *testing.T) {
		var gotPath string
		var gotBody events.UpdateStatusRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		amount := decimal.RequireFromString("5000.00")
		client := intake.NewStatusClient(srv.URL, time.Second)
		err := client.UpdateStatus(context.Background(), "app-1", events.UpdateStatusRequest{
			Status:         "APPROVED",
			Reason:         "Approved with standard terms.",
			AmountApproved: &amount,
		})

		require.NoError(t, err)
		assert.Equal(t, "/applications/app-1/status", gotPath)
		assert.Equal(t, "APPROVED", gotBody.Status)
		require.NotNil(t, gotBody.AmountApproved)
		assert.True(t, gotBody.AmountApproved.Equal(amount))
	})

	t.Run("errors on a non-2xx response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := intake.NewStatusClient(srv.URL, time.Second)
		err := client.UpdateStatus(context.Background(), "app-1", events.UpdateStatusRequest{Status: "REJECTED"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("errors when the service is unreachable", func(t *testing.T) {
		client := intake.NewStatusClient("http://127.0.0.1:1", 100*time.Millisecond)
		err := client.UpdateStatus(context.Background(), "app-1", events.UpdateStatusRequest{Status: "REJECTED"})

		require.Error(t, err)
	})
}
