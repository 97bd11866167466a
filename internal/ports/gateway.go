package ports

import "context"

// PaymentGateway is the opaque card-network capability. Authorize places a
// hold without capturing; Capture converts the hold into a charge; Transfer
// moves captured funds to the payee, tagged with groupRef for
// reconciliation. All three are idempotent on the gateway side.
type PaymentGateway interface {
	Authorize(ctx context.Context, amountMinor int64, payerRef string) (holdRef string, err error)
	Capture(ctx context.Context, holdRef string) error
	Transfer(ctx context.Context, amountMinor int64, destinationRef, groupRef string) (transferRef string, err error)
}

type PartyProfile struct {
	PartyID           string
	Verified          bool
	PayoutDestination string
}

// PartyDirectory resolves booking parties to user profiles. Both parties
// must resolve before a hold is created.
type PartyDirectory interface {
	GetCustomer(ctx context.Context, customerID string) (PartyProfile, error)
	GetLandowner(ctx context.Context, landownerID string) (PartyProfile, error)
}

type RiskInput struct {
	BookingID   string
	CustomerID  string
	LandownerID string
	AmountMinor int64
}

// RiskScorer rates a hold request 0-100. The upstream model was never
// implemented, so the default implementation scores everything 0.
type RiskScorer interface {
	Score(ctx context.Context, input RiskInput) (int, error)
}
