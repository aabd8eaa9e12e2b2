package slot

import (
	"context"

	"a1care/models"
)

// Ledger owns the per-provider, per-day slot inventory and guarantees at most
// one active reservation per slot.
type Ledger interface {
	// GenerateSlots creates one slot per window with the next sequence number
	// for that provider+date. Windows that duplicate an existing slot are
	// skipped silently so providers can safely retry.
	GenerateSlots(ctx context.Context, providerID, date string, windows []models.SlotWindow) ([]models.Slot, error)
	// ListAvailable returns unreserved slots for provider+date ordered by
	// start time. Read-only and re-queryable.
	ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error)
	// ListDay returns every slot for provider+date, reserved or not, ordered
	// by start time. Backs the provider's own schedule view.
	ListDay(ctx context.Context, providerID, date string) ([]models.Slot, error)
	// Get returns a single slot regardless of its reservation state.
	Get(ctx context.Context, slotID string) (*models.Slot, error)
	// Reserve grants the slot to exactly one reservation; losers get
	// slotRepo.ErrAlreadyReserved.
	Reserve(ctx context.Context, slotID, reservationID string) (*models.Slot, error)
	// Release returns a slot to the pool. Idempotent; used only by
	// cancellation and by the create-path compensation.
	Release(ctx context.Context, slotID string) error
}
