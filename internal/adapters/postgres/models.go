package postgres

import "time"

type escrowModel struct {
	EscrowID             string     `gorm:"column:escrow_id;type:uuid;primaryKey"`
	BookingID            string     `gorm:"column:booking_id;uniqueIndex"`
	CustomerID           string     `gorm:"column:customer_id"`
	LandownerID          string     `gorm:"column:landowner_id"`
	AmountMinor          int64      `gorm:"column:amount_minor"`
	TransactionID        string     `gorm:"column:transaction_id;uniqueIndex"`
	GatewayHoldRef       string     `gorm:"column:gateway_hold_ref"`
	Status               string     `gorm:"column:status"`
	Released             bool       `gorm:"column:released"`
	ReleasedAt           *time.Time `gorm:"column:released_at"`
	TransferRef          string     `gorm:"column:transfer_ref"`
	DisputeStatus        string     `gorm:"column:dispute_status"`
	DisputeID            *string    `gorm:"column:dispute_id"`
	SecurityChecks       string     `gorm:"column:security_checks;type:jsonb"`
	Attempts             int        `gorm:"column:attempts"`
	LastAttempt          *time.Time `gorm:"column:last_attempt"`
	LastError            string     `gorm:"column:last_error"`
	AuditLog             string     `gorm:"column:audit_log;type:jsonb"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	ScheduledReleaseDate time.Time  `gorm:"column:scheduled_release_date"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (escrowModel) TableName() string { return "escrow_records" }

type disputeModel struct {
	DisputeID   string    `gorm:"column:dispute_id;type:uuid;primaryKey"`
	EscrowID    string    `gorm:"column:escrow_id;index"`
	BookingID   string    `gorm:"column:booking_id"`
	AmountMinor int64     `gorm:"column:amount_minor"`
	RaisedBy    string    `gorm:"column:raised_by"`
	Reason      string    `gorm:"column:reason"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status"`
	Evidence    string    `gorm:"column:evidence;type:jsonb"`
	Resolution  *string   `gorm:"column:resolution"`
	Timeline    string    `gorm:"column:timeline;type:jsonb"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (disputeModel) TableName() string { return "disputes" }

type ledgerTransactionModel struct {
	LedgerID      string    `gorm:"column:ledger_id;type:uuid;primaryKey"`
	EscrowID      string    `gorm:"column:escrow_id;index"`
	TransactionID string    `gorm:"column:transaction_id;index"`
	BookingID     string    `gorm:"column:booking_id"`
	CustomerID    string    `gorm:"column:customer_id"`
	LandownerID   string    `gorm:"column:landowner_id"`
	AmountMinor   int64     `gorm:"column:amount_minor"`
	TransferRef   string    `gorm:"column:transfer_ref"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (ledgerTransactionModel) TableName() string { return "ledger_transactions" }

type trackingMirrorModel struct {
	EscrowID      string     `gorm:"column:escrow_id;type:uuid;primaryKey"`
	TransactionID string     `gorm:"column:transaction_id;uniqueIndex"`
	BookingID     string     `gorm:"column:booking_id"`
	Status        string     `gorm:"column:status;index"`
	Attempts      int        `gorm:"column:attempts"`
	LastError     string     `gorm:"column:last_error"`
	LastAttempt   *time.Time `gorm:"column:last_attempt"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (trackingMirrorModel) TableName() string { return "tracking_mirror" }

type outboxModel struct {
	RecordID       string     `gorm:"column:record_id;type:uuid;primaryKey"`
	EventClass     string     `gorm:"column:event_class"`
	EventType      string     `gorm:"column:event_type"`
	PartitionKey   string     `gorm:"column:partition_key"`
	Envelope       string     `gorm:"column:envelope;type:jsonb"`
	RetryCount     int        `gorm:"column:retry_count"`
	LastError      string     `gorm:"column:last_error"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	SentAt         *time.Time `gorm:"column:sent_at"`
	DeadLetteredAt *time.Time `gorm:"column:dead_lettered_at"`
}

func (outboxModel) TableName() string { return "escrow_outbox" }
