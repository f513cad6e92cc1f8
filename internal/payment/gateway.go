package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
	"github.com/Armmuh/naija-coffee-oasis/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ChargeRequest holds the parameters for a card charge.
type ChargeRequest struct {
	OrderID  string `json:"order_id"`
	UserID   string `json:"user_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
}

// ChargeResult is the gateway's response to a successful charge.
type ChargeResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Gateway charges cards through an external payment provider over HTTP.
type Gateway struct {
	client  HTTPDoer
	baseURL string
	logger  *slog.Logger
}

// NewGateway creates a payment gateway client.
func NewGateway(client HTTPDoer, baseURL string, logger *slog.Logger) *Gateway {
	return &Gateway{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Charge submits a card charge for the given order. Amounts are in kobo.
// A declined charge or unreachable provider is reported as a payment failure.
func (g *Gateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, httpReq)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.PaymentFailed("payment provider is temporarily unavailable")
		}
		return nil, fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if httpclient.IsClientError(resp.StatusCode) {
			return nil, apperrors.PaymentFailed(fmt.Sprintf("charge declined for order %s", req.OrderID))
		}
		return nil, httpclient.ParseResponseError(resp, "payment provider")
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}

	g.logger.InfoContext(ctx, "card charged",
		slog.String("order_id", req.OrderID),
		slog.String("reference", result.Reference),
		slog.Int64("amount", req.Amount),
	)

	return &result, nil
}
