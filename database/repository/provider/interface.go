// File: database/repository/provider/interface.go
package providerRepo

import (
	"context"
	"errors"

	"a1care/database"
	"a1care/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound means the provider id does not exist.
var ErrNotFound = errors.New("provider not found")

type ProviderRepository interface {
	Create(ctx context.Context, p *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	ListActive(ctx context.Context) ([]models.Provider, error)
	SetConsultationFee(ctx context.Context, id string, fee float64) (*models.Provider, error)
	EnsureIndexes() error
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new MongoDB ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	return &mongoProviderRepo{
		coll: database.DB().Collection("providers"),
	}
}
