package booking

import (
	"context"

	"a1care/models"
)

// CreateRequest is the engine-level input for creating a reservation.
type CreateRequest struct {
	RequesterID   string
	RequesterRole Role
	ItemKind      models.ItemKind
	ItemID        string
	Date          string
	SlotID        string // optional
	PaymentMethod models.PaymentMethod
}

// TransitionRequest is the engine-level input for a status action.
type TransitionRequest struct {
	ReservationID string
	Action        Action
	ActorID       string
	ActorRole     Role
	AssigneeID    string               // assign
	Reason        string               // cancel
	PaymentStatus models.PaymentStatus // optional complete override
}

// Engine drives a reservation through its lifecycle: creation with slot
// reservation and a frozen price, then role-guarded status transitions.
type Engine interface {
	Create(ctx context.Context, req CreateRequest) (*models.Reservation, error)
	Transition(ctx context.Context, req TransitionRequest) (*models.Reservation, error)
	Get(ctx context.Context, id string) (*models.Reservation, error)
	// SetPaymentStatus corrects the payment record independently of the
	// lifecycle, e.g. marking a refund on a cancelled reservation.
	SetPaymentStatus(ctx context.Context, id string, ps models.PaymentStatus) (*models.Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error)
	ListByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Reservation, error)
}
