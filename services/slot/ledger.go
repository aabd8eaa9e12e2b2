package slot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	slotRepo "a1care/database/repository/slot"
	"a1care/models"
	"a1care/utils"
)

const minutesPerDay = 24 * 60

// DefaultLedger implements Ledger over the slot repository, with a short-TTL
// redis cache in front of availability reads.
type DefaultLedger struct {
	Repo     slotRepo.SlotRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

func availabilityKey(providerID, date string) string {
	return fmt.Sprintf("avail:%s:%s", providerID, date)
}

func (l *DefaultLedger) GenerateSlots(ctx context.Context, providerID, date string, windows []models.SlotWindow) ([]models.Slot, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("at least one window is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	for _, w := range windows {
		if w.Start < 0 || w.End > minutesPerDay || w.Start >= w.End {
			return nil, fmt.Errorf("invalid window [%d, %d]", w.Start, w.End)
		}
	}

	maxSeq, err := l.Repo.MaxSequence(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next slot sequence: %w", err)
	}

	ordered := make([]models.SlotWindow, len(windows))
	copy(ordered, windows)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	slots := make([]models.Slot, len(ordered))
	for i, w := range ordered {
		slots[i] = models.Slot{
			ID:         uuid.New().String(),
			ProviderID: providerID,
			Date:       date,
			Sequence:   maxSeq + i + 1,
			Start:      w.Start,
			End:        w.End,
		}
	}

	insertedIDs, err := l.Repo.CreateMany(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slots: %w", err)
	}
	l.invalidate(ctx, providerID, date)

	inserted := make(map[string]bool, len(insertedIDs))
	for _, id := range insertedIDs {
		inserted[id] = true
	}
	created := make([]models.Slot, 0, len(insertedIDs))
	for _, s := range slots {
		if inserted[s.ID] {
			created = append(created, s)
		}
	}
	return created, nil
}

func (l *DefaultLedger) ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	key := availabilityKey(providerID, date)
	if l.Cache != nil {
		if cached, err := l.Cache.Get(ctx, key).Result(); err == nil {
			var slots []models.Slot
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := l.Repo.GetAvailable(ctx, providerID, date)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			if err := l.Cache.Set(ctx, key, data, l.ttl()).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache availability",
					zap.String("providerId", providerID), zap.String("date", date), zap.Error(err))
			}
		}
	}
	return slots, nil
}

func (l *DefaultLedger) ListDay(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return l.Repo.GetByProviderAndDate(ctx, providerID, date)
}

func (l *DefaultLedger) Get(ctx context.Context, slotID string) (*models.Slot, error) {
	return l.Repo.GetByID(ctx, slotID)
}

func (l *DefaultLedger) Reserve(ctx context.Context, slotID, reservationID string) (*models.Slot, error) {
	slot, err := l.Repo.Reserve(ctx, slotID, reservationID)
	if err != nil {
		return nil, err
	}
	l.invalidate(ctx, slot.ProviderID, slot.Date)
	return slot, nil
}

func (l *DefaultLedger) Release(ctx context.Context, slotID string) error {
	slot, err := l.Repo.Release(ctx, slotID)
	if err != nil {
		return err
	}
	l.invalidate(ctx, slot.ProviderID, slot.Date)
	return nil
}

func (l *DefaultLedger) ttl() time.Duration {
	if l.CacheTTL > 0 {
		return l.CacheTTL
	}
	return 30 * time.Second
}

func (l *DefaultLedger) invalidate(ctx context.Context, providerID, date string) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Del(ctx, availabilityKey(providerID, date)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("providerId", providerID), zap.String("date", date), zap.Error(err))
	}
}
