package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthorizeSendsIdempotencyKey(t *testing.T) {
	var gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/authorizations" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["payer_ref"] != "cust-1" {
			t.Fatalf("payer_ref: %v", body["payer_ref"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"hold_ref": "hold-abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-123", time.Second)
	holdRef, err := client.Authorize(context.Background(), 5_000, "cust-1")
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if holdRef != "hold-abc" {
		t.Fatalf("hold ref: %s", holdRef)
	}
	if gotKey != "auth-cust-1" {
		t.Fatalf("idempotency key: %s", gotKey)
	}
	if gotAuth != "Bearer key-123" {
		t.Fatalf("authorization header: %s", gotAuth)
	}
}

func TestTransferSurfacesGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-123", time.Second)
	if _, err := client.Transfer(context.Background(), 5_000, "acct-1", "bk-1"); err == nil {
		t.Fatalf("expected error on gateway rejection")
	}
}

func TestTransferRejectsEmptyRef(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	if _, err := client.Transfer(context.Background(), 100, "acct-1", "bk-1"); err == nil {
		t.Fatalf("expected error on empty transfer ref")
	}
}
