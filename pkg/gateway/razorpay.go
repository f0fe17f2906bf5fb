package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const razorpayAPIBase = "https://api.razorpay.com/v1"

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	APIBase       string // overridable for tests
}

// RazorpayGateway talks to the Razorpay orders API over plain HTTP and
// verifies the HMAC signatures Razorpay attaches to checkout callbacks and
// webhooks.
type RazorpayGateway struct {
	cfg    RazorpayConfig
	client *http.Client
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func NewRazorpayGateway(cfg RazorpayConfig) (*RazorpayGateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("missing razorpay credentials")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = razorpayAPIBase
	}
	return &RazorpayGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (g *RazorpayGateway) KeyID() string {
	return g.cfg.KeyID
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, p CreateOrderParams) (*Order, error) {
	orderReq := map[string]interface{}{
		"amount":   p.AmountMinor,
		"currency": p.Currency,
		"receipt":  p.Receipt,
		"notes":    p.Notes,
	}

	body, err := g.post(ctx, "/orders", orderReq)
	if err != nil {
		return nil, err
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return nil, err
	}

	return &Order{
		ID:          orderResp.ID,
		AmountMinor: orderResp.Amount,
		Currency:    orderResp.Currency,
		Receipt:     orderResp.Receipt,
		Status:      orderResp.Status,
	}, nil
}

func (g *RazorpayGateway) post(ctx context.Context, path string, payload map[string]interface{}) ([]byte, error) {
	reqJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		"POST",
		g.cfg.APIBase+path,
		strings.NewReader(string(reqJSON)),
	)
	if err != nil {
		return nil, err
	}

	httpReq.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp map[string]interface{}
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("razorpay API error: %s", string(body))
		}
		return nil, fmt.Errorf("razorpay API error: %v", errorResp)
	}

	return body, nil
}

// VerifyPaymentSignature checks the signature Razorpay's checkout returns on
// success: HMAC-SHA256 over "<order_id>|<payment_id>" with the key secret.
func (g *RazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header: HMAC-SHA256
// over the raw request body with the webhook secret.
func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if g.cfg.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
