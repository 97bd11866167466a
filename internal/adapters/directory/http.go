// Package directory resolves booking parties against the profile service.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (ports.PartyProfile, error) {
	return c.getProfile(ctx, "/v1/customers/", customerID)
}

func (c *Client) GetLandowner(ctx context.Context, landownerID string) (ports.PartyProfile, error) {
	return c.getProfile(ctx, "/v1/landowners/", landownerID)
}

func (c *Client) getProfile(ctx context.Context, path, id string) (ports.PartyProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+id, nil)
	if err != nil {
		return ports.PartyProfile{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return ports.PartyProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ports.PartyProfile{}, domain.ErrUnknownParty
	}
	if resp.StatusCode >= 300 {
		return ports.PartyProfile{}, fmt.Errorf("directory %s%s: %s", path, id, resp.Status)
	}
	var out struct {
		PartyID           string `json:"party_id"`
		Verified          bool   `json:"verified"`
		PayoutDestination string `json:"payout_destination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.PartyProfile{}, err
	}
	return ports.PartyProfile{
		PartyID:           out.PartyID,
		Verified:          out.Verified,
		PayoutDestination: out.PayoutDestination,
	}, nil
}
