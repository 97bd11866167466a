package application

import (
	"log/slog"
	"time"

	"github.com/rigpark/escrow-service/internal/ports"
)

// Config carries the ledger's tunables. They are injected at construction
// so tests and environments can vary them.
type Config struct {
	ServiceName      string
	HoldDays         int
	MaxRetryAttempts int
	MaxAmountMinor   int64
	SweepBatchSize   int
	MirrorCacheTTL   time.Duration
}

type Actor struct {
	SubjectID string
	Role      string
	RequestID string
}

type CreateHoldInput struct {
	BookingID   string
	AmountMinor int64
	CustomerID  string
	LandownerID string
}

type CreateHoldResult struct {
	EscrowID       string
	GatewayHoldRef string
	TransactionID  string
	ReleaseDue     time.Time
}

type ReleaseResult struct {
	Released    bool
	TransferRef string
}

type DisputeInput struct {
	RaisedBy    string
	Reason      string
	Description string
	Evidence    string
}

type DisputeResult struct {
	DisputeID string
}

type SweepResult struct {
	Attempted int
	Succeeded int
	Failed    int
}

type Service struct {
	cfg         Config
	store       ports.Store
	gateway     ports.PaymentGateway
	directory   ports.PartyDirectory
	risk        ports.RiskScorer
	mirrorCache ports.MirrorCache
	logger      *slog.Logger
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Store       ports.Store
	Gateway     ports.PaymentGateway
	Directory   ports.PartyDirectory
	Risk        ports.RiskScorer
	MirrorCache ports.MirrorCache
	Logger      *slog.Logger
	Now         func() time.Time
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "escrow-ledger-service"
	}
	if cfg.HoldDays <= 0 {
		cfg.HoldDays = 5
	}
	if cfg.MaxRetryAttempts <= 0 {
		cfg.MaxRetryAttempts = 3
	}
	if cfg.MaxAmountMinor <= 0 {
		cfg.MaxAmountMinor = 1_000_000
	}
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = 100
	}
	if cfg.MirrorCacheTTL <= 0 {
		cfg.MirrorCacheTTL = 30 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		cfg:         cfg,
		store:       deps.Store,
		gateway:     deps.Gateway,
		directory:   deps.Directory,
		risk:        deps.Risk,
		mirrorCache: deps.MirrorCache,
		logger:      logger,
		nowFn:       nowFn,
	}
}
