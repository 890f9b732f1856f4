package midtrans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/imanmaris99/amimum-api/apperrors"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "midtrans").Logger()

const defaultTimeout = 10 * time.Second

// ChargeRequest is the Snap transaction payload.
type ChargeRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	CreditCard         CreditCardOptions  `json:"credit_card"`
}

// Amount is a decimal that marshals as a bare JSON number. shopspring
// decimals quote themselves by default and Snap rejects quoted amounts.
type Amount struct{ decimal.Decimal }

func NewAmount(d decimal.Decimal) Amount { return Amount{d} }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount Amount `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CreditCardOptions struct {
	Secure bool `json:"secure"`
}

// ChargeResponse is the Snap response the initiator cares about. Raw holds
// the full body for the payment's gateway_response column.
type ChargeResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	Raw         []byte `json:"-"`
}

// TransactionStatus is the authoritative payload from GET /v2/{order_id}/status.
type TransactionStatus struct {
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
	Raw               []byte `json:"-"`
}

// Client talks to the Midtrans HTTP API. Snap issues redirect URLs; the core
// API answers status queries. Authentication is HTTP Basic with the server
// key as username and an empty password.
type Client struct {
	apiURL    string
	snapURL   string
	serverKey string
	http      *http.Client
}

func NewClient(apiURL, snapURL, serverKey string) *Client {
	return &Client{
		apiURL:    apiURL,
		snapURL:   snapURL,
		serverKey: serverKey,
		http:      &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.serverKey+":"))
}

// CreateTransaction creates a Snap transaction and returns the redirect URL
// and token for the client to follow.
func (c *Client) CreateTransaction(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to encode gateway payload", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.snapURL+"/snap/v1/transactions", bytes.NewBuffer(payload))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Error().Err(err).Str("order_id", req.TransactionDetails.OrderID).Msg("gateway charge request failed")
		return nil, apperrors.Wrap(apperrors.KindGatewayTransport, "failed to reach payment gateway", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().Int("status", resp.StatusCode).Str("order_id", req.TransactionDetails.OrderID).Msg("gateway rejected charge")
		return nil, apperrors.New(apperrors.KindGatewayUnavailable,
			fmt.Sprintf("payment gateway returned status %d", resp.StatusCode))
	}

	var out ChargeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.Wrap(apperrors.KindGatewayMalformed, "failed to parse gateway response", err)
	}
	if out.Token == "" || out.RedirectURL == "" {
		return nil, apperrors.New(apperrors.KindGatewayMalformed, "gateway response missing token or redirect_url")
	}
	out.Raw = body
	return &out, nil
}

// Status fetches the authoritative transaction state for an order id.
func (c *Client) Status(ctx context.Context, orderID string) (*TransactionStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/v2/"+orderID+"/status", nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Error().Err(err).Str("order_id", orderID).Msg("gateway status request failed")
		return nil, apperrors.Wrap(apperrors.KindGatewayTransport, "failed to reach payment gateway", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.KindTransactionNotFound, "transaction not found at gateway")
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.New(apperrors.KindGatewayAuthFailed, "gateway rejected server key")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.New(apperrors.KindGatewayTransport,
			fmt.Sprintf("payment gateway returned status %d", resp.StatusCode))
	}

	var out TransactionStatus
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.Wrap(apperrors.KindGatewayMalformed, "failed to parse gateway status", err)
	}
	if out.TransactionStatus == "" {
		return nil, apperrors.New(apperrors.KindGatewayMalformed, "gateway status missing transaction_status")
	}
	out.Raw = body
	return &out, nil
}
