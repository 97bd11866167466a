package domain

import "time"

const (
	StatusHeld     = "held"
	StatusReleased = "released"
)

const (
	DisputeStatusNone    = "none"
	DisputeStatusPending = "pending"
)

// Tracking mirror projection states. The mirror is the query-side shadow of
// an escrow record; "disputed" exists only here, the primary record stays
// "held" while a dispute is pending.
const (
	MirrorStatusPending   = "pending"
	MirrorStatusCompleted = "completed"
	MirrorStatusDisputed  = "disputed"
)

const (
	AuditActionCreated        = "created"
	AuditActionReleased       = "released"
	AuditActionReleaseFailed  = "release_failed"
	AuditActionForceReleased  = "force_released"
	AuditActionDisputeCreated = "dispute_created"
)

type AuditEntry struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

type SecurityChecks struct {
	CustomerVerified  bool `json:"customer_verified"`
	LandownerVerified bool `json:"landowner_verified"`
	AmountValidated   bool `json:"amount_validated"`
	RiskLevel         int  `json:"risk_level"`
}

type Tracking struct {
	Attempts    int        `json:"attempts"`
	LastAttempt *time.Time `json:"last_attempt,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

// EscrowRecord is one booking payment hold. AmountMinor is in currency
// minor units. AuditLog is append-only; Attempts never decreases.
type EscrowRecord struct {
	EscrowID             string
	BookingID            string
	CustomerID           string
	LandownerID          string
	AmountMinor          int64
	TransactionID        string
	GatewayHoldRef       string
	Status               string
	Released             bool
	ReleasedAt           *time.Time
	TransferRef          string
	DisputeStatus        string
	DisputeID            string
	SecurityChecks       SecurityChecks
	Tracking             Tracking
	AuditLog             []AuditEntry
	CreatedAt            time.Time
	ScheduledReleaseDate time.Time
	UpdatedAt            time.Time
}

// LedgerTransaction is the immutable proof that funds moved, written exactly
// once in the same commit as a successful release.
type LedgerTransaction struct {
	LedgerID      string
	EscrowID      string
	TransactionID string
	BookingID     string
	CustomerID    string
	LandownerID   string
	AmountMinor   int64
	TransferRef   string
	CreatedAt     time.Time
}

// TrackingRecord mirrors an escrow record's status and attempt history for
// cross-cutting queries the primary record is not indexed for.
type TrackingRecord struct {
	EscrowID      string
	TransactionID string
	BookingID     string
	Status        string
	Attempts      int
	LastError     string
	LastAttempt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
