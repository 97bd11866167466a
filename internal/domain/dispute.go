package domain

import "time"

const (
	DisputeOpen = "open"
)

type DisputeEvidence struct {
	Filename    string    `json:"filename,omitempty"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type DisputeTimelineEntry struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// Dispute is created on the first dispute request for an escrow; an escrow
// has at most one active dispute. Resolution is an external manual process,
// so Resolution stays empty inside this service.
type Dispute struct {
	DisputeID   string
	EscrowID    string
	BookingID   string
	AmountMinor int64
	RaisedBy    string
	Reason      string
	Description string
	Status      string
	Evidence    []DisputeEvidence
	Resolution  string
	Timeline    []DisputeTimelineEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
