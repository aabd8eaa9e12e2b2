// File: database/repository/slot/reserve.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"a1care/models"
)

// Reserve tests and sets the reserved flag in a single conditional
// FindOneAndUpdate, so two concurrent callers can never both win the same
// slot.
func (r *mongoSlotRepo) Reserve(ctx context.Context, slotID, reservationID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "reserved": false}
	update := bson.M{"$set": bson.M{
		"reserved":      true,
		"reservationId": reservationID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err == nil {
		return &slot, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to reserve slot %s: %w", slotID, err)
	}

	// No unreserved slot matched: either the id is unknown or somebody else
	// holds it. Distinguish the two for the caller.
	count, cErr := r.coll.CountDocuments(ctx, bson.M{"id": slotID})
	if cErr != nil {
		return nil, fmt.Errorf("failed to check slot %s after reserve miss: %w", slotID, cErr)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrAlreadyReserved
}

func (r *mongoSlotRepo) Release(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"reserved": false},
		"$unset": bson.M{"reservationId": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": slotID}, update, opts).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to release slot %s: %w", slotID, err)
	}
	return &slot, nil
}
