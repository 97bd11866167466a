package contracts

import (
	"encoding/json"
	"time"
)

type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	EventClass       string          `json:"event_class,omitempty"`
	OccurredAt       time.Time       `json:"occurred_at"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    string          `json:"schema_version"`
	Data             json.RawMessage `json:"data"`
}

type EscrowHoldCreatedPayload struct {
	EscrowID      string `json:"escrow_id"`
	BookingID     string `json:"booking_id"`
	CustomerID    string `json:"customer_id"`
	LandownerID   string `json:"landowner_id"`
	AmountMinor   int64  `json:"amount_minor"`
	TransactionID string `json:"transaction_id"`
	ReleaseDue    string `json:"release_due"`
	HeldAt        string `json:"held_at"`
}

type EscrowReleasedPayload struct {
	EscrowID      string `json:"escrow_id"`
	BookingID     string `json:"booking_id"`
	TransactionID string `json:"transaction_id"`
	AmountMinor   int64  `json:"amount_minor"`
	TransferRef   string `json:"transfer_ref"`
	ReleasedAt    string `json:"released_at"`
}

type EscrowReleaseFailedPayload struct {
	EscrowID string `json:"escrow_id"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error"`
	FailedAt string `json:"failed_at"`
}

type EscrowDisputeCreatedPayload struct {
	EscrowID   string `json:"escrow_id"`
	DisputeID  string `json:"dispute_id"`
	BookingID  string `json:"booking_id"`
	RaisedBy   string `json:"raised_by"`
	Reason     string `json:"reason"`
	DisputedAt string `json:"disputed_at"`
}
