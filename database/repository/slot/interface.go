// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"a1care/database"
	"a1care/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means the slot id does not exist.
	ErrNotFound = errors.New("slot not found")
	// ErrAlreadyReserved means another reservation holds the slot.
	ErrAlreadyReserved = errors.New("slot already reserved")
)

type SlotRepository interface {
	// CreateMany inserts the given slots. Slots whose (provider, date, start,
	// end) already exist are skipped, making bulk generation retry-safe.
	// Returns the ids actually inserted.
	CreateMany(ctx context.Context, slots []models.Slot) ([]string, error)
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
	// GetAvailable returns unreserved slots for provider+date, ordered by start.
	GetAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error)
	MaxSequence(ctx context.Context, providerID, date string) (int, error)
	// Reserve atomically flips the slot from unreserved to reserved for the
	// given reservation. Exactly one concurrent caller succeeds; the rest get
	// ErrAlreadyReserved. Returns the reserved slot on success.
	Reserve(ctx context.Context, slotID, reservationID string) (*models.Slot, error)
	// Release clears the reserved flag and reservation id. Releasing an
	// unreserved slot is a no-op.
	Release(ctx context.Context, slotID string) (*models.Slot, error)
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
}
