package sessions

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"easypark/internal/billing"
	"easypark/internal/gateevents"
	"easypark/internal/recognition"
	"easypark/internal/slots"
	"easypark/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo pairs an in-memory session store with a MemoryPool so the
// reserve+create and release+save units of work behave like the transactional
// repository.
type memoryRepo struct {
	mu       sync.Mutex
	pool     *slots.MemoryPool
	sessions map[uuid.UUID]*ParkingSession
}

func newMemoryRepo(pool *slots.MemoryPool) *memoryRepo {
	return &memoryRepo{
		pool:     pool,
		sessions: make(map[uuid.UUID]*ParkingSession),
	}
}

func (r *memoryRepo) OpenEntry(ctx context.Context, session *ParkingSession) error {
	if _, err := r.pool.Reserve(ctx, session.FacilityID, session.VehicleClass); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	session.ID = uuid.New()
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *memoryRepo) CloseExit(ctx context.Context, session *ParkingSession) (bool, error) {
	slotReleased := true
	if _, err := r.pool.Release(ctx, session.FacilityID, session.VehicleClass); err != nil {
		if err != slots.ErrNoOccupiedSlot {
			return false, err
		}
		slotReleased = false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *session
	r.sessions[session.ID] = &stored
	return slotReleased, nil
}

func (r *memoryRepo) FindOpenSession(ctx context.Context, holderID, facilityID uuid.UUID) (*ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *ParkingSession
	for _, s := range r.sessions {
		if s.HolderID != holderID || s.FacilityID != facilityID || !s.IsOpen() {
			continue
		}
		if newest == nil || s.EntryTime.After(newest.EntryTime) {
			newest = s
		}
	}
	if newest == nil {
		return nil, ErrNoOpenSession
	}
	found := *newest
	return &found, nil
}

func (r *memoryRepo) ListByHolderAndFacility(ctx context.Context, holderID, facilityID uuid.UUID) ([]ParkingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []ParkingSession
	for _, s := range r.sessions {
		if s.HolderID == holderID && s.FacilityID == facilityID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EntryTime.After(result[j].EntryTime)
	})
	return result, nil
}

type stubReader struct {
	result recognition.Result
}

func (s *stubReader) Recognize(ctx context.Context, imageBytes []byte) recognition.Result {
	return s.result
}

type stubRates struct {
	rates map[slots.VehicleClass]float64
}

func (s *stubRates) RateFor(ctx context.Context, facilityID uuid.UUID, class slots.VehicleClass) (float64, error) {
	return s.rates[class], nil
}

type collectingPublisher struct {
	mu     sync.Mutex
	events []*gateevents.GateEvent
}

func (p *collectingPublisher) Publish(ctx context.Context, event *gateevents.GateEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *collectingPublisher) Close() error { return nil }

func (p *collectingPublisher) ofType(t gateevents.EventType) []*gateevents.GateEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []*gateevents.GateEvent
	for _, e := range p.events {
		if e.Type == t {
			matched = append(matched, e)
		}
	}
	return matched
}

type ledgerFixture struct {
	svc        *service
	pool       *slots.MemoryPool
	repo       *memoryRepo
	publisher  *collectingPublisher
	reader     *stubReader
	facilityID uuid.UUID
}

func newLedgerFixture(t *testing.T, carSlots int) *ledgerFixture {
	t.Helper()

	pool := slots.NewMemoryPool()
	repo := newMemoryRepo(pool)
	publisher := &collectingPublisher{}
	reader := &stubReader{result: recognition.Result{RawText: "MH12AB1234", Plate: "MH12AB1234"}}
	rates := &stubRates{rates: map[slots.VehicleClass]float64{
		slots.ClassCar:  40,
		slots.ClassBike: 10,
	}}

	svc := &service{
		repo:       repo,
		pool:       pool,
		rates:      rates,
		reader:     reader,
		publisher:  publisher,
		refBuilder: billing.NewReferenceBuilder("easypark@upi", "EasyParking", "INR"),
		logger:     logger.GetDefault(),
		now:        time.Now,
	}

	facilityID := uuid.New()
	require.NoError(t, pool.Provision(context.Background(), facilityID, slots.ClassCar, carSlots))

	f := &ledgerFixture{svc: svc, pool: pool, repo: repo, publisher: publisher, reader: reader}
	f.facilityID = facilityID
	return f
}

func TestOpenEntryReservesSlotAndOpensSession(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()
	holderID := uuid.New()

	session, err := f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "MH12AB1234", session.VehicleNumber)
	assert.True(t, session.IsOpen())

	summary, err := f.pool.Summarize(ctx, f.facilityID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary[slots.ClassCar].Available)
	assert.Equal(t, 1, summary[slots.ClassCar].Occupied)

	// pool exhausted: next entry for the same class is rejected and no
	// session is created
	_, err = f.svc.OpenEntry(ctx, uuid.New(), f.facilityID, slots.ClassCar, []byte("img"))
	assert.ErrorIs(t, err, slots.ErrNoSlotAvailable)

	entries := f.publisher.ofType(gateevents.EventEntryRecorded)
	require.Len(t, entries, 1)
	assert.Equal(t, session.ID, entries[0].SessionID)
}

func TestCloseExitBillsAndReleasesSlot(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()
	holderID := uuid.New()

	entryTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	exitTime := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)

	f.svc.now = func() time.Time { return entryTime }
	session, err := f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)

	f.svc.now = func() time.Time { return exitTime }
	closed, reference, err := f.svc.CloseExit(ctx, holderID, f.facilityID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, closed.ID)
	require.NotNil(t, closed.DurationHours)
	require.NotNil(t, closed.Amount)
	assert.Equal(t, 2.5, *closed.DurationHours)
	assert.Equal(t, 100.0, *closed.Amount)
	assert.False(t, closed.IsOpen())

	assert.True(t, strings.HasPrefix(reference, "upi://pay?"))
	assert.Contains(t, reference, "am=100.00")
	assert.Contains(t, reference, closed.ID.String())

	summary, err := f.pool.Summarize(ctx, f.facilityID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary[slots.ClassCar].Available)
	assert.Equal(t, 0, summary[slots.ClassCar].Occupied)

	exits := f.publisher.ofType(gateevents.EventExitRecorded)
	require.Len(t, exits, 1)
	require.NotNil(t, exits[0].Amount)
	assert.Equal(t, 100.0, *exits[0].Amount)
}

func TestCloseExitTwiceReturnsNoOpenSession(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()
	holderID := uuid.New()

	_, err := f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)

	_, _, err = f.svc.CloseExit(ctx, holderID, f.facilityID)
	require.NoError(t, err)

	// idempotent failure: no second billing, no state change
	_, _, err = f.svc.CloseExit(ctx, holderID, f.facilityID)
	assert.ErrorIs(t, err, ErrNoOpenSession)

	exits := f.publisher.ofType(gateevents.EventExitRecorded)
	assert.Len(t, exits, 1)
}

func TestCloseExitReportsInventoryDrift(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()
	holderID := uuid.New()

	_, err := f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)

	// drift the inventory behind the ledger's back
	_, err = f.pool.Release(ctx, f.facilityID, slots.ClassCar)
	require.NoError(t, err)

	// the exit still completes for the holder
	closed, reference, err := f.svc.CloseExit(ctx, holderID, f.facilityID)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assert.NotEmpty(t, reference)

	drifts := f.publisher.ofType(gateevents.EventSlotInventoryInconsistent)
	require.Len(t, drifts, 1)
	assert.Equal(t, closed.ID, drifts[0].SessionID)
}

func TestCloseExitRejectsExitBeforeEntry(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()
	holderID := uuid.New()

	entryTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	f.svc.now = func() time.Time { return entryTime }
	_, err := f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)

	f.svc.now = func() time.Time { return entryTime.Add(-1 * time.Hour) }
	_, _, err = f.svc.CloseExit(ctx, holderID, f.facilityID)
	assert.ErrorIs(t, err, billing.ErrInvalidTimeRange)

	// session stays open and the slot stays occupied
	open, err := f.repo.FindOpenSession(ctx, holderID, f.facilityID)
	require.NoError(t, err)
	assert.True(t, open.IsOpen())

	summary, err := f.pool.Summarize(ctx, f.facilityID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary[slots.ClassCar].Occupied)
}

func TestOpenEntryAttachesDegradedPlate(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()

	f.reader.result = recognition.Unknown("")
	session, err := f.svc.OpenEntry(ctx, uuid.New(), f.facilityID, slots.ClassCar, []byte("not-an-image"))
	require.NoError(t, err)
	assert.Equal(t, recognition.PlateUnknown, session.VehicleNumber)
}

func TestSummaryForAggregatesSlotsRatesAndHistory(t *testing.T) {
	f := newLedgerFixture(t, 2)
	ctx := context.Background()
	holderID := uuid.New()

	_, err := f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)
	_, _, err = f.svc.CloseExit(ctx, holderID, f.facilityID)
	require.NoError(t, err)
	_, err = f.svc.OpenEntry(ctx, holderID, f.facilityID, slots.ClassCar, []byte("img"))
	require.NoError(t, err)

	summary, err := f.svc.SummaryFor(ctx, holderID, f.facilityID)
	require.NoError(t, err)

	assert.Equal(t, f.facilityID, summary.FacilityID)
	assert.Equal(t, 1, summary.Slots[slots.ClassCar].Available)
	assert.Equal(t, 1, summary.Slots[slots.ClassCar].Occupied)
	assert.Equal(t, 40.0, summary.Rates[slots.ClassCar])
	assert.Equal(t, 10.0, summary.Rates[slots.ClassBike])

	require.Len(t, summary.Sessions, 2)
	assert.Equal(t, "OPEN", summary.Sessions[0].Status)
	assert.Equal(t, "CLOSED", summary.Sessions[1].Status)
}
