// File: database/repository/catalog/crud.go
package catalogRepo

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

func (r *mongoCatalogRepo) GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.ServiceCategory
	if err := r.categories.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category %s: %w", id, err)
	}
	return &c, nil
}

func (r *mongoCatalogRepo) GetSubCategory(ctx context.Context, id string) (*models.ServiceSubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sc models.ServiceSubCategory
	if err := r.subCategories.FindOne(ctx, bson.M{"id": id}).Decode(&sc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch subcategory %s: %w", id, err)
	}
	return &sc, nil
}

func (r *mongoCatalogRepo) GetItem(ctx context.Context, id string) (*models.ServiceItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item models.ServiceItem
	if err := r.items.FindOne(ctx, bson.M{"id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch catalog item %s: %w", id, err)
	}
	return &item, nil
}

func (r *mongoCatalogRepo) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.categories.Find(ctx, bson.M{"active": true}, listOpts())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ServiceCategory
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding categories: %w", err)
	}
	return out, nil
}

func (r *mongoCatalogRepo) ListSubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"categoryId": categoryID, "active": true}
	cursor, err := r.subCategories.Find(ctx, filter, listOpts())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subcategories: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ServiceSubCategory
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding subcategories: %w", err)
	}
	return out, nil
}

func (r *mongoCatalogRepo) ListItems(ctx context.Context, subCategoryID string) ([]models.ServiceItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"subCategoryId": subCategoryID, "active": true}
	cursor, err := r.items.Find(ctx, filter, listOpts())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog items: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ServiceItem
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding catalog items: %w", err)
	}
	return out, nil
}

func listOpts() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}

func (r *mongoCatalogRepo) CreateCategory(ctx context.Context, c *models.ServiceCategory) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stampNode(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	c.Active = true
	if _, err := r.categories.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) CreateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stampNode(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
	sc.Active = true
	if _, err := r.subCategories.InsertOne(ctx, sc); err != nil {
		return fmt.Errorf("failed to insert subcategory: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepo) CreateItem(ctx context.Context, item *models.ServiceItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stampNode(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	item.Active = true
	if _, err := r.items.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert catalog item: %w", err)
	}
	return nil
}

func stampNode(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
