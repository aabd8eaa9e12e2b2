package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	reservationRepo "a1care/database/repository/reservation"
	slotRepo "a1care/database/repository/slot"
	"a1care/models"
	"a1care/services/tasks"
)

// fakeResolver serves a fixed set of resolved items keyed by id.
type fakeResolver struct {
	items map[string]*models.ResolvedItem
	err   error
}

func (f *fakeResolver) Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.ResolvedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("no such item %s", id)
	}
	return item, nil
}

// fakeLedger is an in-memory slot ledger with the same exclusivity semantics
// as the mongo-backed one.
type fakeLedger struct {
	mu       sync.Mutex
	slots    map[string]*models.Slot
	released []string
}

func newFakeLedger(slots ...*models.Slot) *fakeLedger {
	l := &fakeLedger{slots: map[string]*models.Slot{}}
	for _, s := range slots {
		l.slots[s.ID] = s
	}
	return l
}

func (f *fakeLedger) GenerateSlots(ctx context.Context, providerID, date string, windows []models.SlotWindow) ([]models.Slot, error) {
	return nil, errors.New("not used")
}

func (f *fakeLedger) ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return nil, errors.New("not used")
}

func (f *fakeLedger) ListDay(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return nil, errors.New("not used")
}

func (f *fakeLedger) Get(ctx context.Context, slotID string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeLedger) Reserve(ctx context.Context, slotID, reservationID string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	if s.Reserved {
		return nil, slotRepo.ErrAlreadyReserved
	}
	s.Reserved = true
	s.ReservationID = reservationID
	out := *s
	return &out, nil
}

func (f *fakeLedger) Release(ctx context.Context, slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return slotRepo.ErrNotFound
	}
	s.Reserved = false
	s.ReservationID = ""
	f.released = append(f.released, slotID)
	return nil
}

// fakeReservationRepo keeps reservations in memory and mirrors the
// conditional-write semantics of the mongo repository.
type fakeReservationRepo struct {
	mu        sync.Mutex
	store     map[string]*models.Reservation
	createErr error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{store: map[string]*models.Reservation{}}
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *res
	f.store[res.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.store[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	out := *res
	return &out, nil
}

func (f *fakeReservationRepo) ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.store {
		if r.RequesterID == requesterID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.store {
		if r.Date == date && (r.ProviderID == providerID || r.AssignedProviderID == providerID) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) TransitionStatus(ctx context.Context, id string, from, to models.ReservationStatus, set map[string]any) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.store[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	if res.Status != from {
		return nil, reservationRepo.ErrStatusConflict
	}
	res.Status = to
	for k, v := range set {
		switch k {
		case "paymentStatus":
			res.PaymentStatus = v.(models.PaymentStatus)
		case "assignedProviderId":
			res.AssignedProviderID = v.(string)
		case "cancelReason":
			res.CancelReason = v.(string)
		}
	}
	res.UpdatedAt = time.Now()
	out := *res
	return &out, nil
}

func (f *fakeReservationRepo) SetPaymentStatus(ctx context.Context, id string, ps models.PaymentStatus) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.store[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	res.PaymentStatus = ps
	out := *res
	return &out, nil
}

func (f *fakeReservationRepo) EnsureIndexes() error { return nil }

// fakeScheduler records scheduled reminders.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []models.ReminderPayload
}

func (f *fakeScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, payload)
	return nil
}

var _ tasks.ReminderScheduler = (*fakeScheduler)(nil)

func futureDate() string {
	return time.Now().Add(72 * time.Hour).Format("2006-01-02")
}

func testEngine(resolver *fakeResolver, ledger *fakeLedger, repo *fakeReservationRepo) (*DefaultEngine, *fakeScheduler) {
	scheduler := &fakeScheduler{}
	return &DefaultEngine{
		Resolver:     resolver,
		Slots:        ledger,
		Reservations: repo,
		Reminders:    scheduler,
		Policy:       FeePolicy{Mode: FeeModeFlat, Amount: 50},
		BaseFee:      0,
		ReminderLead: time.Hour,
		Logger:       zap.NewNop(),
	}, scheduler
}

func consultationItem(providerID string, fee float64) *models.ResolvedItem {
	return &models.ResolvedItem{
		Kind:        models.ItemKindConsultation,
		ID:          providerID,
		DisplayName: "Dr. Achieng",
		Price:       fee,
		ProviderID:  providerID,
	}
}

func TestCreateCashConsultationGoesStraightToUpcoming(t *testing.T) {
	date := futureDate()
	ledger := newFakeLedger(&models.Slot{ID: "s1", ProviderID: "p1", Date: date, Start: 600, End: 660})
	repo := newFakeReservationRepo()
	engine, scheduler := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, ledger, repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          date,
		SlotID:        "s1",
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusUpcoming, res.Status)
	assert.Equal(t, models.PathSelfService, res.Path)
	assert.Equal(t, models.PaymentUnpaid, res.PaymentStatus)
	assert.Equal(t, 400.0, res.ItemPrice)
	assert.Equal(t, 50.0, res.PlatformFee)
	assert.Equal(t, 450.0, res.Total)
	assert.Equal(t, "s1", res.SlotID)
	assert.Equal(t, "p1", res.ProviderID)

	// Slot is now held by this reservation.
	assert.True(t, ledger.slots["s1"].Reserved)
	assert.Equal(t, res.ID, ledger.slots["s1"].ReservationID)

	// Upcoming with a future slot gets a reminder.
	require.Len(t, scheduler.scheduled, 1)
	assert.Equal(t, res.ID, scheduler.scheduled[0].ReservationID)
}

func TestCreateOnlinePaymentStartsPendingPayment(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, scheduler := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingPayment, res.Status)
	assert.Empty(t, scheduler.scheduled)
}

func TestCreateByStaffEntersDispatchPath(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"item1": {Kind: models.ItemKindCatalogItem, ID: "item1", DisplayName: "Home nursing visit", Price: 1500},
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "staff1",
		RequesterRole: RoleStaff,
		ItemKind:      models.ItemKindCatalogItem,
		ItemID:        "item1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PathStaffMediated, res.Path)
	assert.Equal(t, models.StatusNew, res.Status)
}

func TestCreateRejectsSlotOfAnotherProvider(t *testing.T) {
	date := futureDate()
	ledger := newFakeLedger(&models.Slot{ID: "s1", ProviderID: "p2", Date: date, Start: 600, End: 660})
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, ledger, repo)

	_, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          date,
		SlotID:        "s1",
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, ErrSlotMismatch)

	// The short-lived hold is undone and no record exists.
	assert.False(t, ledger.slots["s1"].Reserved)
	assert.Contains(t, ledger.released, "s1")
	assert.Empty(t, repo.store)
}

func TestCreateRejectsSlotOnDifferentDate(t *testing.T) {
	ledger := newFakeLedger(&models.Slot{ID: "s1", ProviderID: "p1", Date: "2030-01-01", Start: 600, End: 660})
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, ledger, repo)

	_, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          "2030-02-02",
		SlotID:        "s1",
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, ErrSlotMismatch)
	assert.False(t, ledger.slots["s1"].Reserved)
	assert.Empty(t, repo.store)
}

func TestCreateLosesSlotRace(t *testing.T) {
	date := futureDate()
	taken := &models.Slot{ID: "s1", ProviderID: "p1", Date: date, Reserved: true, ReservationID: "other"}
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, newFakeLedger(taken), repo)

	_, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          date,
		SlotID:        "s1",
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, slotRepo.ErrAlreadyReserved)
	assert.Empty(t, repo.store)
}

func TestCreatePersistFailureReleasesSlot(t *testing.T) {
	date := futureDate()
	ledger := newFakeLedger(&models.Slot{ID: "s1", ProviderID: "p1", Date: date})
	repo := newFakeReservationRepo()
	repo.createErr = errors.New("write failed")
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, ledger, repo)

	_, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          date,
		SlotID:        "s1",
		PaymentMethod: models.PaymentMethodCash,
	})
	require.Error(t, err)

	assert.False(t, ledger.slots["s1"].Reserved)
	assert.Contains(t, ledger.released, "s1")
}

func TestTransitionPayMarksPaid(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	updated, err := engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID,
		Action:        ActionPay,
		ActorID:       "u1",
		ActorRole:     RolePatient,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusUpcoming, updated.Status)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestTransitionCancelReleasesSlot(t *testing.T) {
	date := futureDate()
	ledger := newFakeLedger(&models.Slot{ID: "s1", ProviderID: "p1", Date: date, Start: 600, End: 660})
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, ledger, repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          date,
		SlotID:        "s1",
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	updated, err := engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID,
		Action:        ActionCancel,
		ActorID:       "u1",
		ActorRole:     RolePatient,
		Reason:        "schedule conflict",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, updated.Status)
	assert.Equal(t, "schedule conflict", updated.CancelReason)
	assert.False(t, ledger.slots["s1"].Reserved)
}

func TestTransitionAssignRecordsAssignee(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"item1": {Kind: models.ItemKindCatalogItem, ID: "item1", DisplayName: "Lab sample pickup", Price: 800},
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "staff1",
		RequesterRole: RoleStaff,
		ItemKind:      models.ItemKindCatalogItem,
		ItemID:        "item1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID, Action: ActionAccept, ActorID: "staff1", ActorRole: RoleStaff,
	})
	require.NoError(t, err)

	updated, err := engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID, Action: ActionAssign, ActorID: "staff1", ActorRole: RoleStaff,
		AssigneeID: "p9",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, updated.Status)
	assert.Equal(t, "p9", updated.AssignedProviderID)

	// The assignee can now confirm.
	confirmed, err := engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID, Action: ActionConfirm, ActorID: "p9", ActorRole: RoleProvider,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
}

func TestTransitionPatientCannotTouchForeignReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	_, err = engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID,
		Action:        ActionCancel,
		ActorID:       "intruder",
		ActorRole:     RolePatient,
	})
	assert.ErrorIs(t, err, ErrActorNotAllowed)
}

func TestTransitionAfterCancellationRejected(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	// Another transition lands before the pay attempt.
	_, err = repo.TransitionStatus(context.Background(), res.ID, models.StatusPendingPayment, models.StatusCancelled, nil)
	require.NoError(t, err)

	_, err = engine.Transition(context.Background(), TransitionRequest{
		ReservationID: res.ID,
		Action:        ActionPay,
		ActorID:       "u1",
		ActorRole:     RolePatient,
	})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestSetPaymentStatusWorksOnTerminalReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, newFakeLedger(), repo)

	res, err := engine.Create(context.Background(), CreateRequest{
		RequesterID:   "u1",
		RequesterRole: RolePatient,
		ItemKind:      models.ItemKindConsultation,
		ItemID:        "p1",
		Date:          futureDate(),
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)

	for _, action := range []Action{ActionPay, ActionCancel} {
		_, err = engine.Transition(context.Background(), TransitionRequest{
			ReservationID: res.ID, Action: action, ActorID: "u1", ActorRole: RolePatient,
		})
		require.NoError(t, err)
	}

	updated, err := engine.SetPaymentStatus(context.Background(), res.ID, models.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
}

func TestConcurrentSlotReservationHasExactlyOneWinner(t *testing.T) {
	date := futureDate()
	ledger := newFakeLedger(&models.Slot{ID: "s1", ProviderID: "p1", Date: date, Start: 540, End: 600})
	repo := newFakeReservationRepo()
	engine, _ := testEngine(&fakeResolver{items: map[string]*models.ResolvedItem{
		"p1": consultationItem("p1", 400),
	}}, ledger, repo)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Create(context.Background(), CreateRequest{
				RequesterID:   fmt.Sprintf("u%d", i),
				RequesterRole: RolePatient,
				ItemKind:      models.ItemKindConsultation,
				ItemID:        "p1",
				Date:          date,
				SlotID:        "s1",
				PaymentMethod: models.PaymentMethodCash,
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, slotRepo.ErrAlreadyReserved)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, repo.store, 1)
}
