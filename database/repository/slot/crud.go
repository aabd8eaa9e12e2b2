// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"a1care/models"
)

func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(slots))
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = time.Now()
		}
		docs = append(docs, slot)
		ids = append(ids, slot.ID)
	}

	// Unordered insert: duplicate windows hit the unique
	// (providerId, date, start, end) index and are skipped, the rest land.
	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		bwe, ok := err.(mongo.BulkWriteException)
		if !ok {
			return nil, fmt.Errorf("failed to insert slots: %w", err)
		}
		dup := make(map[int]bool, len(bwe.WriteErrors))
		for _, we := range bwe.WriteErrors {
			if !mongo.IsDuplicateKeyError(we.WriteError) {
				return nil, fmt.Errorf("failed to insert slots: %w", err)
			}
			dup[we.Index] = true
		}
		inserted := make([]string, 0, len(ids))
		for i, id := range ids {
			if !dup[i] {
				inserted = append(inserted, id)
			}
		}
		return inserted, nil
	}
	return ids, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", slotID, err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return r.find(ctx, bson.M{"providerId": providerID, "date": date})
}

func (r *mongoSlotRepo) GetAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return r.find(ctx, bson.M{"providerId": providerID, "date": date, "reserved": false})
}

func (r *mongoSlotRepo) find(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) MaxSequence(ctx context.Context, providerID, date string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"providerId": providerID, "date": date}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "maxSeq": bson.M{"$max": "$sequence"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate max sequence: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		MaxSeq int `bson:"maxSeq"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("decode error: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].MaxSeq, nil
}
