package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rigpark/escrow-service/internal/adapters/memory"
	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeGateway struct {
	mu            sync.Mutex
	authorizeErr  error
	captureErr    error
	transferErrBy map[string]error
	authorizes    int
	captures      int
	transfers     int
}

func (g *fakeGateway) Authorize(_ context.Context, _ int64, payerRef string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorizes++
	if g.authorizeErr != nil {
		return "", g.authorizeErr
	}
	return "hold-" + payerRef, nil
}

func (g *fakeGateway) Capture(_ context.Context, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captures++
	return g.captureErr
}

func (g *fakeGateway) Transfer(_ context.Context, _ int64, _, groupRef string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transfers++
	if err := g.transferErrBy[groupRef]; err != nil {
		return "", err
	}
	return "tr-" + groupRef, nil
}

func (g *fakeGateway) counts() (int, int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authorizes, g.captures, g.transfers
}

type fakeDirectory struct {
	profiles map[string]ports.PartyProfile
}

func (d *fakeDirectory) lookup(id string) (ports.PartyProfile, error) {
	p, ok := d.profiles[id]
	if !ok {
		return ports.PartyProfile{}, domain.ErrUnknownParty
	}
	return p, nil
}

func (d *fakeDirectory) GetCustomer(_ context.Context, id string) (ports.PartyProfile, error) {
	return d.lookup(id)
}

func (d *fakeDirectory) GetLandowner(_ context.Context, id string) (ports.PartyProfile, error) {
	return d.lookup(id)
}

func newTestService(t *testing.T) (*Service, *memory.Store, *fakeGateway, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gw := &fakeGateway{transferErrBy: map[string]error{}}
	store := memory.NewStore()
	dir := &fakeDirectory{profiles: map[string]ports.PartyProfile{
		"cust-1": {PartyID: "cust-1", Verified: true, PayoutDestination: ""},
		"cust-2": {PartyID: "cust-2", Verified: true},
		"cust-3": {PartyID: "cust-3", Verified: true},
		"land-1": {PartyID: "land-1", Verified: true, PayoutDestination: "acct_land_1"},
		"land-2": {PartyID: "land-2", Verified: true, PayoutDestination: "acct_land_2"},
		"unverified": {PartyID: "unverified", Verified: false},
	}}
	svc := NewService(Dependencies{
		Store:     store,
		Gateway:   gw,
		Directory: dir,
		Now:       clock.Now,
	})
	return svc, store, gw, clock
}

func systemActor() Actor {
	return Actor{SubjectID: "svc_bookings", Role: "service", RequestID: "req-test"}
}

func mustCreateHold(t *testing.T, svc *Service, bookingID string) CreateHoldResult {
	t.Helper()
	res, err := svc.CreateHold(context.Background(), systemActor(), CreateHoldInput{
		BookingID:   bookingID,
		AmountMinor: 12_500,
		CustomerID:  "cust-1",
		LandownerID: "land-1",
	})
	if err != nil {
		t.Fatalf("CreateHold(%s): %v", bookingID, err)
	}
	return res
}

func TestCreateHoldSchedulesRelease(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-100")

	wantDue := clock.Now().AddDate(0, 0, 5)
	if !res.ReleaseDue.Equal(wantDue) {
		t.Fatalf("release due: got %v, want %v", res.ReleaseDue, wantDue)
	}
	if res.GatewayHoldRef != "hold-cust-1" {
		t.Fatalf("unexpected hold ref %q", res.GatewayHoldRef)
	}

	rec, err := store.GetEscrow(context.Background(), res.EscrowID)
	if err != nil {
		t.Fatalf("GetEscrow: %v", err)
	}
	if rec.Status != domain.StatusHeld || rec.Released {
		t.Fatalf("expected held record, got status=%s released=%v", rec.Status, rec.Released)
	}
	if rec.Tracking.Attempts != 0 {
		t.Fatalf("attempts should start at 0, got %d", rec.Tracking.Attempts)
	}
	if len(rec.AuditLog) != 1 || rec.AuditLog[0].Action != domain.AuditActionCreated {
		t.Fatalf("unexpected audit log %+v", rec.AuditLog)
	}
	if !rec.SecurityChecks.CustomerVerified || !rec.SecurityChecks.LandownerVerified || !rec.SecurityChecks.AmountValidated {
		t.Fatalf("security checks not recorded: %+v", rec.SecurityChecks)
	}

	mirror, err := store.GetMirrorByTransactionID(context.Background(), rec.TransactionID)
	if err != nil {
		t.Fatalf("mirror missing after create: %v", err)
	}
	if mirror.Status != domain.MirrorStatusPending {
		t.Fatalf("mirror status: got %s, want pending", mirror.Status)
	}

	if a, c, tr := gw.counts(); a != 1 || c != 0 || tr != 0 {
		t.Fatalf("gateway calls: authorize=%d capture=%d transfer=%d", a, c, tr)
	}
}

func TestCreateHoldValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateHold(ctx, Actor{}, CreateHoldInput{BookingID: "bk", AmountMinor: 1, CustomerID: "cust-1", LandownerID: "land-1"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("missing actor: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.CreateHold(ctx, systemActor(), CreateHoldInput{BookingID: "", AmountMinor: 1, CustomerID: "cust-1", LandownerID: "land-1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing booking: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateHold(ctx, systemActor(), CreateHoldInput{BookingID: "bk", AmountMinor: 0, CustomerID: "cust-1", LandownerID: "land-1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero amount: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateHold(ctx, systemActor(), CreateHoldInput{BookingID: "bk", AmountMinor: 1_000_001, CustomerID: "cust-1", LandownerID: "land-1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("over max amount: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateHold(ctx, systemActor(), CreateHoldInput{BookingID: "bk", AmountMinor: 1, CustomerID: "ghost", LandownerID: "land-1"}); !errors.Is(err, domain.ErrUnknownParty) {
		t.Fatalf("unknown customer: got %v, want ErrUnknownParty", err)
	}
	if _, err := svc.CreateHold(ctx, systemActor(), CreateHoldInput{BookingID: "bk", AmountMinor: 1, CustomerID: "unverified", LandownerID: "land-1"}); !errors.Is(err, domain.ErrUnknownParty) {
		t.Fatalf("unverified customer: got %v, want ErrUnknownParty", err)
	}
}

func TestCreateHoldDuplicateBooking(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	mustCreateHold(t, svc, "bk-dup")
	_, err := svc.CreateHold(context.Background(), systemActor(), CreateHoldInput{
		BookingID:   "bk-dup",
		AmountMinor: 500,
		CustomerID:  "cust-1",
		LandownerID: "land-1",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate booking: got %v, want ErrConflict", err)
	}
}

func TestCreateHoldGatewayRejectionLeavesNoState(t *testing.T) {
	svc, store, gw, _ := newTestService(t)
	gw.authorizeErr = fmt.Errorf("card declined")

	_, err := svc.CreateHold(context.Background(), systemActor(), CreateHoldInput{
		BookingID:   "bk-declined",
		AmountMinor: 500,
		CustomerID:  "cust-1",
		LandownerID: "land-1",
	})
	var gwErr *domain.GatewayError
	if !errors.As(err, &gwErr) || gwErr.Op != "authorize" {
		t.Fatalf("expected authorize gateway error, got %v", err)
	}

	gw.authorizeErr = nil
	// The booking must still be usable after a declined authorization.
	mustCreateHold(t, svc, "bk-declined")
	if _, err := store.GetEscrow(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unexpected store error: %v", err)
	}
}

func TestReleaseHonorsHoldingPeriod(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-hold")

	clock.Advance(4 * 24 * time.Hour)
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); !errors.Is(err, domain.ErrHoldingPeriod) {
		t.Fatalf("early release: got %v, want ErrHoldingPeriod", err)
	}
	rec, _ := store.GetEscrow(context.Background(), res.EscrowID)
	if rec.Tracking.Attempts != 0 {
		t.Fatalf("early release must not consume an attempt, got %d", rec.Tracking.Attempts)
	}

	clock.Advance(2 * 24 * time.Hour)
	out, err := svc.Release(context.Background(), systemActor(), res.EscrowID)
	if err != nil {
		t.Fatalf("Release after holding period: %v", err)
	}
	if !out.Released || out.TransferRef != "tr-bk-hold" {
		t.Fatalf("unexpected release result %+v", out)
	}

	rec, _ = store.GetEscrow(context.Background(), res.EscrowID)
	if !rec.Released || rec.Status != domain.StatusReleased || rec.ReleasedAt == nil {
		t.Fatalf("record not settled: %+v", rec)
	}
	actions := make([]string, 0, len(rec.AuditLog))
	for _, e := range rec.AuditLog {
		actions = append(actions, e.Action)
	}
	if len(actions) != 2 || actions[0] != domain.AuditActionCreated || actions[1] != domain.AuditActionReleased {
		t.Fatalf("audit actions: %v", actions)
	}

	ledger, err := store.ListLedgerTransactions(context.Background(), res.EscrowID)
	if err != nil {
		t.Fatalf("ListLedgerTransactions: %v", err)
	}
	if len(ledger) != 1 || ledger[0].TransferRef != "tr-bk-hold" || ledger[0].AmountMinor != 12_500 {
		t.Fatalf("unexpected ledger entries %+v", ledger)
	}

	mirror, _ := store.GetMirrorByTransactionID(context.Background(), rec.TransactionID)
	if mirror.Status != domain.MirrorStatusCompleted {
		t.Fatalf("mirror status after release: got %s, want completed", mirror.Status)
	}

	if _, c, tr := gw.counts(); c != 1 || tr != 1 {
		t.Fatalf("gateway calls after single release: capture=%d transfer=%d", c, tr)
	}
}

func TestReleaseTransfersAtMostOnce(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-race")
	clock.Advance(6 * 24 * time.Hour)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Release(context.Background(), systemActor(), res.EscrowID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrAlreadyReleased):
		default:
			t.Fatalf("unexpected concurrent release error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful release, got %d", succeeded)
	}
	if _, _, tr := gw.counts(); tr != 1 {
		t.Fatalf("transfer must happen exactly once, got %d", tr)
	}
	ledger, _ := store.ListLedgerTransactions(context.Background(), res.EscrowID)
	if len(ledger) != 1 {
		t.Fatalf("expected one ledger transaction, got %d", len(ledger))
	}
}

func TestReleaseAfterReleaseFails(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-twice")
	clock.Advance(6 * 24 * time.Hour)

	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("second release: got %v, want ErrAlreadyReleased", err)
	}
}

func TestGatewayFailureCommitsAttemptBookkeeping(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-retry")
	clock.Advance(6 * 24 * time.Hour)
	gw.captureErr = fmt.Errorf("gateway timeout")

	for i := 1; i <= 3; i++ {
		_, err := svc.Release(context.Background(), systemActor(), res.EscrowID)
		var gwErr *domain.GatewayError
		if !errors.As(err, &gwErr) || gwErr.Op != "capture" {
			t.Fatalf("attempt %d: expected capture gateway error, got %v", i, err)
		}
		rec, _ := store.GetEscrow(context.Background(), res.EscrowID)
		if rec.Tracking.Attempts != i {
			t.Fatalf("attempt %d: attempts=%d", i, rec.Tracking.Attempts)
		}
		if rec.Tracking.LastError == "" || rec.Tracking.LastAttempt == nil {
			t.Fatalf("attempt %d: bookkeeping missing: %+v", i, rec.Tracking)
		}
		if rec.AuditLog[len(rec.AuditLog)-1].Action != domain.AuditActionReleaseFailed {
			t.Fatalf("attempt %d: missing release_failed audit entry", i)
		}
	}

	// Budget exhausted: the gateway must not be contacted again.
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); !errors.Is(err, domain.ErrRetriesExhausted) {
		t.Fatalf("exhausted release: got %v, want ErrRetriesExhausted", err)
	}
	if _, c, _ := gw.counts(); c != 3 {
		t.Fatalf("capture calls after exhaustion: got %d, want 3", c)
	}
	rec, _ := store.GetEscrow(context.Background(), res.EscrowID)
	if rec.Tracking.Attempts != 3 {
		t.Fatalf("exhausted release must not mutate attempts, got %d", rec.Tracking.Attempts)
	}
}

func TestForceReleaseBypassesBudgetNotDisputes(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-force")
	clock.Advance(6 * 24 * time.Hour)
	gw.captureErr = fmt.Errorf("gateway down")
	for i := 0; i < 3; i++ {
		_, _ = svc.Release(context.Background(), systemActor(), res.EscrowID)
	}
	gw.captureErr = nil

	if _, err := svc.ForceRelease(context.Background(), systemActor(), res.EscrowID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("force release by service role: got %v, want ErrForbidden", err)
	}

	admin := Actor{SubjectID: "op_7", Role: "admin", RequestID: "req-admin"}
	out, err := svc.ForceRelease(context.Background(), admin, res.EscrowID)
	if err != nil {
		t.Fatalf("ForceRelease: %v", err)
	}
	if !out.Released {
		t.Fatalf("force release did not settle: %+v", out)
	}
	rec, _ := store.GetEscrow(context.Background(), res.EscrowID)
	if rec.AuditLog[len(rec.AuditLog)-1].Action != domain.AuditActionForceReleased {
		t.Fatalf("missing force_released audit entry: %+v", rec.AuditLog)
	}

	// A released record is final even for operators.
	if _, err := svc.ForceRelease(context.Background(), admin, res.EscrowID); !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("force release after release: got %v, want ErrAlreadyReleased", err)
	}
}

func TestDisputeBlocksRelease(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-disputed")

	disp, err := svc.Dispute(context.Background(), systemActor(), res.EscrowID, DisputeInput{
		RaisedBy: "cust-1",
		Reason:   "space was occupied",
	})
	if err != nil {
		t.Fatalf("Dispute: %v", err)
	}
	if disp.DisputeID == "" {
		t.Fatalf("empty dispute id")
	}

	clock.Advance(6 * 24 * time.Hour)
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); !errors.Is(err, domain.ErrDisputePending) {
		t.Fatalf("release of disputed hold: got %v, want ErrDisputePending", err)
	}
	if _, c, tr := gw.counts(); c != 0 || tr != 0 {
		t.Fatalf("disputed release must not contact the gateway: capture=%d transfer=%d", c, tr)
	}

	rec, _ := store.GetEscrow(context.Background(), res.EscrowID)
	if rec.Status != domain.StatusHeld || rec.DisputeStatus != domain.DisputeStatusPending {
		t.Fatalf("dispute must keep primary status held: %+v", rec)
	}
	mirror, _ := store.GetMirrorByTransactionID(context.Background(), rec.TransactionID)
	if mirror.Status != domain.MirrorStatusDisputed {
		t.Fatalf("mirror status: got %s, want disputed", mirror.Status)
	}

	stored, err := store.GetDispute(context.Background(), disp.DisputeID)
	if err != nil {
		t.Fatalf("GetDispute: %v", err)
	}
	if stored.Status != domain.DisputeOpen || stored.EscrowID != res.EscrowID {
		t.Fatalf("unexpected dispute record %+v", stored)
	}

	if _, err := svc.Dispute(context.Background(), systemActor(), res.EscrowID, DisputeInput{Reason: "again"}); !errors.Is(err, domain.ErrDisputeExists) {
		t.Fatalf("second dispute: got %v, want ErrDisputeExists", err)
	}
}

func TestDisputeAfterReleaseRejected(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-late-dispute")
	clock.Advance(6 * 24 * time.Hour)
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := svc.Dispute(context.Background(), systemActor(), res.EscrowID, DisputeInput{Reason: "too late"}); !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("dispute after release: got %v, want ErrAlreadyReleased", err)
	}
}

func TestSweepSettlesAllCandidates(t *testing.T) {
	svc, store, gw, clock := newTestService(t)
	mustCreateHold(t, svc, "bk-s1")
	mustCreateHold(t, svc, "bk-s2")
	mustCreateHold(t, svc, "bk-s3")
	notDue := mustCreateHold(t, svc, "bk-s4-late")

	// Only the first three fall due; bk-s3 fails at the transfer leg.
	gw.transferErrBy["bk-s3"] = fmt.Errorf("destination account frozen")
	clock.Advance(6 * 24 * time.Hour)
	future, _ := store.GetEscrow(context.Background(), notDue.EscrowID)
	future.ScheduledReleaseDate = clock.Now().Add(48 * time.Hour)
	if err := store.InTx(context.Background(), func(tx ports.Tx) error {
		return tx.UpdateEscrow(context.Background(), future)
	}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	result, err := svc.SweepDueReleases(context.Background(), systemActor())
	if err != nil {
		t.Fatalf("SweepDueReleases: %v", err)
	}
	if result.Attempted != 3 || result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("sweep counts: %+v", result)
	}

	// The failed candidate keeps its attempt bookkeeping and stays eligible.
	second, err := svc.SweepDueReleases(context.Background(), systemActor())
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if second.Attempted != 1 || second.Failed != 1 {
		t.Fatalf("second sweep counts: %+v", second)
	}
}

func TestSweepSkipsDisputedAndReleased(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	released := mustCreateHold(t, svc, "bk-done")
	disputed := mustCreateHold(t, svc, "bk-frozen")

	clock.Advance(6 * 24 * time.Hour)
	if _, err := svc.Release(context.Background(), systemActor(), released.EscrowID); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := svc.Dispute(context.Background(), systemActor(), disputed.EscrowID, DisputeInput{Reason: "no-show"}); err != nil {
		t.Fatalf("Dispute: %v", err)
	}

	result, err := svc.SweepDueReleases(context.Background(), systemActor())
	if err != nil {
		t.Fatalf("SweepDueReleases: %v", err)
	}
	if result.Attempted != 0 {
		t.Fatalf("sweep picked up settled records: %+v", result)
	}
}

func TestLifecycleEventsRideTheOutbox(t *testing.T) {
	svc, store, _, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-events")
	clock.Advance(6 * 24 * time.Hour)
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); err != nil {
		t.Fatalf("Release: %v", err)
	}

	pending, err := store.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 outbox events, got %d", len(pending))
	}
	if pending[0].Envelope.EventType != domain.EventEscrowHoldCreated {
		t.Fatalf("first event: %s", pending[0].Envelope.EventType)
	}
	if pending[1].Envelope.EventType != domain.EventEscrowReleased {
		t.Fatalf("second event: %s", pending[1].Envelope.EventType)
	}
	for _, rec := range pending {
		if rec.Envelope.PartitionKey != res.EscrowID {
			t.Fatalf("partition key: got %q, want escrow id", rec.Envelope.PartitionKey)
		}
		if rec.Envelope.SchemaVersion != "v1" || rec.Envelope.EventID == "" {
			t.Fatalf("malformed envelope %+v", rec.Envelope)
		}
	}
}

func TestGetTrackingServesMirror(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	res := mustCreateHold(t, svc, "bk-track")

	tr, err := svc.GetTracking(context.Background(), systemActor(), res.TransactionID)
	if err != nil {
		t.Fatalf("GetTracking: %v", err)
	}
	if tr.Status != domain.MirrorStatusPending || tr.BookingID != "bk-track" {
		t.Fatalf("unexpected tracking %+v", tr)
	}

	clock.Advance(6 * 24 * time.Hour)
	if _, err := svc.Release(context.Background(), systemActor(), res.EscrowID); err != nil {
		t.Fatalf("Release: %v", err)
	}
	tr, err = svc.GetTracking(context.Background(), systemActor(), res.TransactionID)
	if err != nil {
		t.Fatalf("GetTracking after release: %v", err)
	}
	if tr.Status != domain.MirrorStatusCompleted {
		t.Fatalf("tracking status after release: got %s, want completed", tr.Status)
	}

	if _, err := svc.GetTracking(context.Background(), systemActor(), "TXN-none"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown transaction: got %v, want ErrNotFound", err)
	}
}
