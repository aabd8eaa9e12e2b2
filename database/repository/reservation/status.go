// File: database/repository/reservation/status.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"a1care/models"
)

func (r *mongoReservationRepo) TransitionStatus(ctx context.Context, id string, from, to models.ReservationStatus, set map[string]any) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields := bson.M{
		"status":    to,
		"updatedAt": time.Now(),
	}
	for k, v := range set {
		fields[k] = v
	}

	// Filtering on the expected source status makes the write a compare-and-
	// swap: a transition racing against a newer one simply misses.
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": fields}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res)
	if err == nil {
		return &res, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to transition reservation %s: %w", id, err)
	}

	count, cErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if cErr != nil {
		return nil, fmt.Errorf("failed to check reservation %s after transition miss: %w", id, cErr)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrStatusConflict
}

func (r *mongoReservationRepo) SetPaymentStatus(ctx context.Context, id string, ps models.PaymentStatus) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"paymentStatus": ps,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&res)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set payment status for %s: %w", id, err)
	}
	return &res, nil
}
