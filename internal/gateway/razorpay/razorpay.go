// Package razorpay is a thin client for the Razorpay Orders and Refunds
// REST APIs, plus checkout signature verification.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.razorpay.com/v1"

type Order struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount"` // minor units (paise)
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

type Refund struct {
	ID          string `json:"id"`
	PaymentID   string `json:"payment_id"`
	AmountCents int64  `json:"amount"`
	Status      string `json:"status"`
}

type Client interface {
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (*Order, error)
	RefundPayment(ctx context.Context, paymentID string, amountCents int64) (*Refund, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

func NewClient(keyID, keySecret, baseURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) post(ctx context.Context, path string, body map[string]any, out any) error {
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("razorpay %s failed: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (*Order, error) {
	body := map[string]any{
		"amount":   amountCents,
		"currency": currency,
		"receipt":  receipt,
	}
	var order Order
	if err := c.post(ctx, "/orders", body, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, errors.New("razorpay: empty order id")
	}
	return &order, nil
}

func (c *client) RefundPayment(ctx context.Context, paymentID string, amountCents int64) (*Refund, error) {
	body := map[string]any{
		"amount": amountCents,
	}
	var refund Refund
	if err := c.post(ctx, "/payments/"+paymentID+"/refund", body, &refund); err != nil {
		return nil, err
	}
	if refund.ID == "" {
		return nil, errors.New("razorpay: empty refund id")
	}
	return &refund, nil
}

// VerifySignature checks the checkout callback signature: the hex
// HMAC-SHA256 of "orderID|paymentID" keyed with the API secret.
func (c *client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
