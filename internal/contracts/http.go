package contracts

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type CreateHoldRequest struct {
	BookingID   string `json:"booking_id"`
	AmountMinor int64  `json:"amount_minor"`
	CustomerID  string `json:"customer_id"`
	LandownerID string `json:"landowner_id"`
}

type CreateHoldResponse struct {
	EscrowID       string `json:"escrow_id"`
	GatewayHoldRef string `json:"gateway_hold_ref"`
	TransactionID  string `json:"transaction_id"`
	Status         string `json:"status"`
	ReleaseDue     string `json:"release_due"`
}

type ReleaseResponse struct {
	EscrowID    string `json:"escrow_id"`
	Released    bool   `json:"released"`
	TransferRef string `json:"transfer_ref,omitempty"`
}

type DisputeRequest struct {
	RaisedBy    string `json:"raised_by"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
}

type DisputeResponse struct {
	DisputeID string `json:"dispute_id"`
	EscrowID  string `json:"escrow_id"`
	Status    string `json:"status"`
}

type DisputeDetailResponse struct {
	DisputeID   string                 `json:"dispute_id"`
	EscrowID    string                 `json:"escrow_id"`
	BookingID   string                 `json:"booking_id"`
	AmountMinor int64                  `json:"amount_minor"`
	RaisedBy    string                 `json:"raised_by"`
	Reason      string                 `json:"reason"`
	Description string                 `json:"description,omitempty"`
	Status      string                 `json:"status"`
	Resolution  string                 `json:"resolution,omitempty"`
	Timeline    []DisputeTimelineEntry `json:"timeline"`
	CreatedAt   string                 `json:"created_at"`
}

type DisputeTimelineEntry struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details,omitempty"`
}

type SweepResponse struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type AuditEntryResponse struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details,omitempty"`
}

type EscrowResponse struct {
	EscrowID             string               `json:"escrow_id"`
	BookingID            string               `json:"booking_id"`
	CustomerID           string               `json:"customer_id"`
	LandownerID          string               `json:"landowner_id"`
	AmountMinor          int64                `json:"amount_minor"`
	TransactionID        string               `json:"transaction_id"`
	Status               string               `json:"status"`
	Released             bool                 `json:"released"`
	TransferRef          string               `json:"transfer_ref,omitempty"`
	DisputeStatus        string               `json:"dispute_status"`
	DisputeID            string               `json:"dispute_id,omitempty"`
	Attempts             int                  `json:"attempts"`
	LastError            string               `json:"last_error,omitempty"`
	RiskLevel            int                  `json:"risk_level"`
	CreatedAt            string               `json:"created_at"`
	ScheduledReleaseDate string               `json:"scheduled_release_date"`
	ReleasedAt           string               `json:"released_at,omitempty"`
	AuditLog             []AuditEntryResponse `json:"audit_log"`
}

type TrackingResponse struct {
	EscrowID      string `json:"escrow_id"`
	TransactionID string `json:"transaction_id"`
	BookingID     string `json:"booking_id"`
	Status        string `json:"status"`
	Attempts      int    `json:"attempts"`
	LastError     string `json:"last_error,omitempty"`
	LastAttempt   string `json:"last_attempt,omitempty"`
	UpdatedAt     string `json:"updated_at"`
}
