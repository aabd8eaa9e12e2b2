// File: database/repository/catalog/deactivate.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func deactivateSet() bson.M {
	return bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}}
}

// DeactivateCategory soft-deletes a category and cascades to its
// subcategories and their items.
func (r *mongoCatalogRepo) DeactivateCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.categories.UpdateOne(ctx, bson.M{"id": id}, deactivateSet())
	if err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	subIDs, err := r.subCategoryIDs(ctx, id)
	if err != nil {
		return err
	}
	if _, err := r.subCategories.UpdateMany(ctx, bson.M{"categoryId": id}, deactivateSet()); err != nil {
		return fmt.Errorf("failed to cascade deactivation to subcategories of %s: %w", id, err)
	}
	if len(subIDs) > 0 {
		filter := bson.M{"subCategoryId": bson.M{"$in": subIDs}}
		if _, err := r.items.UpdateMany(ctx, filter, deactivateSet()); err != nil {
			return fmt.Errorf("failed to cascade deactivation to items of category %s: %w", id, err)
		}
	}
	return nil
}

// DeactivateSubCategory soft-deletes a subcategory and cascades to its items.
func (r *mongoCatalogRepo) DeactivateSubCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.subCategories.UpdateOne(ctx, bson.M{"id": id}, deactivateSet())
	if err != nil {
		return fmt.Errorf("failed to deactivate subcategory %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.items.UpdateMany(ctx, bson.M{"subCategoryId": id}, deactivateSet()); err != nil {
		return fmt.Errorf("failed to cascade deactivation to items of %s: %w", id, err)
	}
	return nil
}

func (r *mongoCatalogRepo) DeactivateItem(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.items.UpdateOne(ctx, bson.M{"id": id}, deactivateSet())
	if err != nil {
		return fmt.Errorf("failed to deactivate catalog item %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) subCategoryIDs(ctx context.Context, categoryID string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.subCategories.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategory ids: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding subcategory ids: %w", err)
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}
