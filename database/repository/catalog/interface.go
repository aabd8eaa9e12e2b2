// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"
	"errors"

	"a1care/database"
	"a1care/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound means the requested catalog node does not exist.
var ErrNotFound = errors.New("catalog node not found")

type CatalogRepository interface {
	GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error)
	GetSubCategory(ctx context.Context, id string) (*models.ServiceSubCategory, error)
	GetItem(ctx context.Context, id string) (*models.ServiceItem, error)

	ListCategories(ctx context.Context) ([]models.ServiceCategory, error)
	ListSubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error)
	ListItems(ctx context.Context, subCategoryID string) ([]models.ServiceItem, error)

	CreateCategory(ctx context.Context, c *models.ServiceCategory) error
	CreateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error
	CreateItem(ctx context.Context, item *models.ServiceItem) error

	// Deactivate* soft-delete a node; deactivating a parent cascades to its
	// descendants so they stop resolving.
	DeactivateCategory(ctx context.Context, id string) error
	DeactivateSubCategory(ctx context.Context, id string) error
	DeactivateItem(ctx context.Context, id string) error

	EnsureIndexes() error
}

type mongoCatalogRepo struct {
	categories    *mongo.Collection
	subCategories *mongo.Collection
	items         *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &mongoCatalogRepo{
		categories:    db.Collection("catalog_categories"),
		subCategories: db.Collection("catalog_subcategories"),
		items:         db.Collection("catalog_items"),
	}
}
