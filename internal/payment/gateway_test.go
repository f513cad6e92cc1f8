package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
	"github.com/Armmuh/naija-coffee-oasis/pkg/httpclient"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGateway(serverURL string) *Gateway {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return NewGateway(httpclient.New(cfg), serverURL, newTestLogger())
}

func sampleChargeRequest() ChargeRequest {
	return ChargeRequest{
		OrderID:  "order-001",
		UserID:   "user-001",
		Amount:   1430000,
		Currency: "NGN",
		Email:    "adaeze@example.com",
	}
}

func TestGateway_Charge_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/charges", r.URL.Path)

		var req ChargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order-001", req.OrderID)
		assert.Equal(t, int64(1430000), req.Amount)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(ChargeResult{Reference: "ref-abc123", Status: "success"})
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL)

	result, err := gateway.Charge(context.Background(), sampleChargeRequest())
	require.NoError(t, err)
	assert.Equal(t, "ref-abc123", result.Reference)
	assert.Equal(t, "success", result.Status)
}

func TestGateway_Charge_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL)

	result, err := gateway.Charge(context.Background(), sampleChargeRequest())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
}

func TestGateway_Charge_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL)

	result, err := gateway.Charge(context.Background(), sampleChargeRequest())
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrPaymentFailed)
}

type circuitOpenDoer struct{}

func (circuitOpenDoer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return nil, httpclient.ErrCircuitOpen
}

func TestGateway_Charge_CircuitOpen(t *testing.T) {
	gateway := NewGateway(circuitOpenDoer{}, "http://payments.invalid", newTestLogger())

	result, err := gateway.Charge(context.Background(), sampleChargeRequest())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
}

type networkErrorDoer struct{}

func (networkErrorDoer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestGateway_Charge_NetworkError(t *testing.T) {
	gateway := NewGateway(networkErrorDoer{}, "http://payments.invalid", newTestLogger())

	result, err := gateway.Charge(context.Background(), sampleChargeRequest())
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "call payment provider")
}
