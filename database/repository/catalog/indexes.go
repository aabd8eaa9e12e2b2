// FILE: database/repository/catalog/indexes.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the catalog collections.
func (r *mongoCatalogRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := func(name string) *options.IndexOptions {
		return options.Index().SetUnique(true).SetName(name)
	}

	if _, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: unique("unique_id"),
	}); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}

	if _, err := r.subCategories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique("unique_id")},
		{
			Keys:    bson.D{{Key: "categoryId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("category_active_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create subcategory indexes: %w", err)
	}

	if _, err := r.items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique("unique_id")},
		{
			Keys:    bson.D{{Key: "subCategoryId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("subcategory_active_idx"),
		},
	}); err != nil {
		return fmt.Errorf("failed to create catalog item indexes: %w", err)
	}
	return nil
}
