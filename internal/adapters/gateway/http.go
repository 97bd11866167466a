// Package gateway is the HTTP client for the payment gateway capability.
// Every mutating call carries an idempotency key so gateway-side retries
// cannot double-charge; transfers are additionally tagged with the booking
// id as groupRef for reconciliation.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Authorize(ctx context.Context, amountMinor int64, payerRef string) (string, error) {
	var out struct {
		HoldRef string `json:"hold_ref"`
	}
	err := c.post(ctx, "/v1/authorizations", "auth-"+payerRef, map[string]any{
		"amount_minor": amountMinor,
		"payer_ref":    payerRef,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.HoldRef == "" {
		return "", fmt.Errorf("gateway: empty hold ref")
	}
	return out.HoldRef, nil
}

func (c *Client) Capture(ctx context.Context, holdRef string) error {
	return c.post(ctx, "/v1/captures", "capture-"+holdRef, map[string]any{
		"hold_ref": holdRef,
	}, nil)
}

func (c *Client) Transfer(ctx context.Context, amountMinor int64, destinationRef, groupRef string) (string, error) {
	var out struct {
		TransferRef string `json:"transfer_ref"`
	}
	err := c.post(ctx, "/v1/transfers", "transfer-"+groupRef, map[string]any{
		"amount_minor":    amountMinor,
		"destination_ref": destinationRef,
		"group_ref":       groupRef,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.TransferRef == "" {
		return "", fmt.Errorf("gateway: empty transfer ref")
	}
	return out.TransferRef, nil
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, body map[string]any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway %s: %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
