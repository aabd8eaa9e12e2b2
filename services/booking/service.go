package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "a1care/database/repository/reservation"
	"a1care/models"
	"a1care/services/catalog"
	"a1care/services/notification"
	"a1care/services/slot"
	"a1care/services/tasks"
)

// DefaultEngine is the production implementation of Engine.
type DefaultEngine struct {
	Resolver     catalog.Resolver
	Slots        slot.Ledger
	Reservations reservationRepo.ReservationRepository
	Notifier     notification.Service
	Reminders    tasks.ReminderScheduler // optional
	Policy       FeePolicy
	BaseFee      float64
	ReminderLead time.Duration
	Logger       *zap.Logger
}

// Create resolves the bookable item, reserves the slot (if any) before the
// record exists, freezes the price, and persists the reservation in its
// initial status. If persistence fails after the slot was won, the slot is
// released again; a failed release is logged as a fatal inconsistency.
func (e *DefaultEngine) Create(ctx context.Context, req CreateRequest) (*models.Reservation, error) {
	item, err := e.Resolver.Resolve(ctx, req.ItemKind, req.ItemID)
	if err != nil {
		return nil, err
	}

	reservationID := uuid.New().String()

	var held *models.Slot
	if req.SlotID != "" {
		held, err = e.Slots.Reserve(ctx, req.SlotID, reservationID)
		if err != nil {
			return nil, err
		}
		// The held slot must agree with the booking it was submitted with.
		if held.Date != req.Date {
			e.compensateSlot(ctx, held, reservationID)
			return nil, fmt.Errorf("%w: slot %s is on %s, booking is for %s", ErrSlotMismatch, held.ID, held.Date, req.Date)
		}
		if item.ProviderID != "" && held.ProviderID != item.ProviderID {
			e.compensateSlot(ctx, held, reservationID)
			return nil, fmt.Errorf("%w: slot %s belongs to another provider", ErrSlotMismatch, held.ID)
		}
	}

	quote := ComputeQuote(e.BaseFee, item.Price, e.Policy)
	path, status := initialState(req.RequesterRole, req.PaymentMethod)

	res := &models.Reservation{
		ID:            reservationID,
		RequesterID:   req.RequesterID,
		ItemKind:      item.Kind,
		ItemID:        item.ID,
		ItemName:      item.DisplayName,
		ProviderID:    item.ProviderID,
		Date:          req.Date,
		BaseFee:       quote.BaseFee,
		ItemPrice:     quote.ItemPrice,
		PlatformFee:   quote.PlatformFee,
		Total:         quote.Total,
		Status:        status,
		PaymentStatus: models.PaymentUnpaid,
		PaymentMethod: req.PaymentMethod,
		Path:          path,
	}
	if held != nil {
		res.SlotID = held.ID
		if res.ProviderID == "" {
			res.ProviderID = held.ProviderID
		}
	}

	if err := e.Reservations.Create(ctx, res); err != nil {
		e.compensateSlot(ctx, held, reservationID)
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}

	e.Logger.Info("reservation created",
		zap.String("reservationId", res.ID),
		zap.String("itemKind", string(res.ItemKind)),
		zap.String("status", string(res.Status)),
		zap.String("path", string(res.Path)),
		zap.Float64("total", res.Total),
	)

	if res.Status == models.StatusUpcoming {
		e.scheduleReminder(res, held)
	}
	return res, nil
}

// initialState derives the fulfillment path and initial status. Bookings
// raised by staff or admins go onto the dispatch (staff-mediated) path;
// patient bookings are self-service, where cash payment skips the
// PendingPayment stage.
func initialState(role Role, method models.PaymentMethod) (models.FulfillmentPath, models.ReservationStatus) {
	if role == RoleStaff || role == RoleAdmin {
		return models.PathStaffMediated, models.StatusNew
	}
	if method == models.PaymentMethodCash {
		return models.PathSelfService, models.StatusUpcoming
	}
	return models.PathSelfService, models.StatusPendingPayment
}

// compensateSlot undoes a slot hold when the booking cannot go ahead, whether
// the persist failed or the slot turned out not to match. A failure here
// leaves an orphaned exclusive hold and requires manual reconciliation, so
// it is logged at error level with everything an operator needs.
func (e *DefaultEngine) compensateSlot(ctx context.Context, held *models.Slot, reservationID string) {
	if held == nil {
		return
	}
	if err := e.Slots.Release(ctx, held.ID); err != nil {
		e.Logger.Error("compensating slot release failed; slot is orphaned and needs manual reconciliation",
			zap.String("slotId", held.ID),
			zap.String("reservationId", reservationID),
			zap.String("providerId", held.ProviderID),
			zap.String("date", held.Date),
			zap.Error(err),
		)
	}
}

// Transition validates the action against the transition table and applies it
// with a conditional write keyed on the expected current status, so a stale
// attempt fails instead of clobbering a newer state.
func (e *DefaultEngine) Transition(ctx context.Context, req TransitionRequest) (*models.Reservation, error) {
	res, err := e.Reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if req.ActorRole == RolePatient && res.RequesterID != req.ActorID {
		return nil, fmt.Errorf("%w: reservation belongs to another requester", ErrActorNotAllowed)
	}

	target, err := resolveTransition(res, req.Action, req.ActorRole)
	if err != nil {
		return nil, err
	}

	set, err := transitionFields(res, req)
	if err != nil {
		return nil, err
	}

	updated, err := e.Reservations.TransitionStatus(ctx, res.ID, res.Status, target, set)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrStatusConflict) {
			return nil, &TransitionError{Action: req.Action, From: string(res.Status), Reason: "status changed concurrently"}
		}
		return nil, err
	}

	if req.Action == ActionCancel && updated.SlotID != "" {
		if rErr := e.Slots.Release(ctx, updated.SlotID); rErr != nil {
			e.Logger.Error("slot release on cancellation failed; slot needs manual reconciliation",
				zap.String("slotId", updated.SlotID),
				zap.String("reservationId", updated.ID),
				zap.Error(rErr),
			)
		}
	}

	e.Logger.Info("reservation transitioned",
		zap.String("reservationId", updated.ID),
		zap.String("action", string(req.Action)),
		zap.String("from", string(res.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("actorRole", string(req.ActorRole)),
	)
	if e.Notifier != nil {
		if nErr := e.Notifier.BookingStatusChanged(ctx, updated, res.Status); nErr != nil {
			e.Logger.Warn("status change notification failed", zap.Error(nErr))
		}
	}
	if updated.Status == models.StatusUpcoming || updated.Status == models.StatusConfirmed {
		e.scheduleReminder(updated, nil)
	}
	return updated, nil
}

// transitionFields builds the extra field updates that ride along with the
// status write.
func transitionFields(res *models.Reservation, req TransitionRequest) (map[string]any, error) {
	set := map[string]any{}
	switch req.Action {
	case ActionPay:
		set["paymentStatus"] = models.PaymentPaid
	case ActionAssign:
		if req.AssigneeID == "" {
			return nil, fmt.Errorf("assign requires an assignee id")
		}
		set["assignedProviderId"] = req.AssigneeID
	case ActionCancel:
		set["cancelReason"] = req.Reason
	case ActionComplete:
		// Payment-status override, e.g. cash collected on completion.
		if req.PaymentStatus != "" {
			set["paymentStatus"] = req.PaymentStatus
		}
	}
	return set, nil
}

func (e *DefaultEngine) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return e.Reservations.GetByID(ctx, id)
}

func (e *DefaultEngine) SetPaymentStatus(ctx context.Context, id string, ps models.PaymentStatus) (*models.Reservation, error) {
	updated, err := e.Reservations.SetPaymentStatus(ctx, id, ps)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("payment status updated",
		zap.String("reservationId", id),
		zap.String("paymentStatus", string(ps)),
	)
	return updated, nil
}

func (e *DefaultEngine) ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error) {
	return e.Reservations.ListByRequester(ctx, requesterID)
}

func (e *DefaultEngine) ListByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Reservation, error) {
	return e.Reservations.ListByProviderAndDate(ctx, providerID, date)
}

// scheduleReminder enqueues an appointment reminder ahead of the slot start.
// Reservations without a slot (e.g. free-form catalog orders) get none.
func (e *DefaultEngine) scheduleReminder(res *models.Reservation, held *models.Slot) {
	if e.Reminders == nil || res.SlotID == "" {
		return
	}

	if held == nil {
		loaded, err := e.Slots.Get(context.Background(), res.SlotID)
		if err != nil {
			e.Logger.Warn("cannot schedule reminder: slot lookup failed",
				zap.String("reservationId", res.ID), zap.String("slotId", res.SlotID), zap.Error(err))
			return
		}
		held = loaded
	}
	start := held.Start
	day, err := time.Parse("2006-01-02", res.Date)
	if err != nil {
		e.Logger.Warn("cannot schedule reminder: bad reservation date",
			zap.String("reservationId", res.ID), zap.String("date", res.Date))
		return
	}
	fireAt := day.Add(time.Duration(start)*time.Minute - e.ReminderLead)
	if fireAt.Before(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		ReservationID: res.ID,
		RequesterID:   res.RequesterID,
		ProviderID:    res.ProviderID,
		ItemName:      res.ItemName,
		Date:          res.Date,
		Start:         start,
	}
	if err := e.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		e.Logger.Warn("failed to schedule reminder",
			zap.String("reservationId", res.ID), zap.Error(err))
	}
}
