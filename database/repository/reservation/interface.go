// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"

	"a1care/database"
	"a1care/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means the reservation id does not exist.
	ErrNotFound = errors.New("reservation not found")
	// ErrStatusConflict means the reservation's current status no longer
	// matches the expected source status of a transition (a concurrent
	// transition landed first).
	ErrStatusConflict = errors.New("reservation status changed concurrently")
)

type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Reservation, error)
	ListByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Reservation, error)
	// TransitionStatus conditionally moves the reservation from the expected
	// status to the target status, applying any extra field updates in the
	// same write. A stale expected status yields ErrStatusConflict rather
	// than clobbering a newer state.
	TransitionStatus(ctx context.Context, id string, from, to models.ReservationStatus, set map[string]any) (*models.Reservation, error)
	// SetPaymentStatus corrects the payment status without touching the
	// lifecycle status (permitted even on terminal reservations).
	SetPaymentStatus(ctx context.Context, id string, ps models.PaymentStatus) (*models.Reservation, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	return &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
}
