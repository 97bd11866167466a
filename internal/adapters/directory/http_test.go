package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rigpark/escrow-service/internal/domain"
)

func TestGetLandownerDecodesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/landowners/land-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"party_id":           "land-1",
			"verified":           true,
			"payout_destination": "acct_99",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	profile, err := client.GetLandowner(context.Background(), "land-1")
	if err != nil {
		t.Fatalf("GetLandowner: %v", err)
	}
	if !profile.Verified || profile.PayoutDestination != "acct_99" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestGetCustomerUnknownPartyOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.GetCustomer(context.Background(), "ghost"); !errors.Is(err, domain.ErrUnknownParty) {
		t.Fatalf("got %v, want ErrUnknownParty", err)
	}
}
