package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "a1care/database/repository/catalog"
	providerRepo "a1care/database/repository/provider"
	"a1care/models"
)

// DefaultResolver resolves both bookable item kinds through the same contract.
type DefaultResolver struct {
	Catalog   catalogRepo.CatalogRepository
	Providers providerRepo.ProviderRepository
	// DefaultConsultationFee applies when a provider has no fee configured.
	DefaultConsultationFee float64
}

func (r *DefaultResolver) Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.ResolvedItem, error) {
	switch kind {
	case models.ItemKindConsultation:
		return r.resolveConsultation(ctx, id)
	case models.ItemKindCatalogItem:
		return r.resolveCatalogItem(ctx, id)
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrItemNotFound, kind)
	}
}

func (r *DefaultResolver) resolveConsultation(ctx context.Context, providerID string) (*models.ResolvedItem, error) {
	prov, err := r.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: provider %s", ErrItemNotFound, providerID)
		}
		return nil, err
	}
	if !prov.Active {
		return nil, fmt.Errorf("%w: provider %s is inactive", ErrItemNotFound, providerID)
	}

	fee := prov.ConsultationFee
	if fee <= 0 {
		fee = r.DefaultConsultationFee
	}
	return &models.ResolvedItem{
		Kind:        models.ItemKindConsultation,
		ID:          prov.ID,
		DisplayName: prov.Name,
		Price:       fee,
		ProviderID:  prov.ID,
	}, nil
}

// resolveCatalogItem walks from the leaf up to the root. An inactive node
// anywhere on the path makes the leaf unbookable, even if the leaf itself is
// still flagged active.
func (r *DefaultResolver) resolveCatalogItem(ctx context.Context, itemID string) (*models.ResolvedItem, error) {
	item, err := r.Catalog.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: catalog item %s", ErrItemNotFound, itemID)
		}
		return nil, err
	}
	if !item.Active {
		return nil, fmt.Errorf("%w: catalog item %s is inactive", ErrItemNotFound, itemID)
	}

	sub, err := r.Catalog.GetSubCategory(ctx, item.SubCategoryID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: subcategory %s of item %s", ErrItemNotFound, item.SubCategoryID, itemID)
		}
		return nil, err
	}
	if !sub.Active {
		return nil, fmt.Errorf("%w: subcategory %s is inactive", ErrItemNotFound, sub.ID)
	}

	cat, err := r.Catalog.GetCategory(ctx, sub.CategoryID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s of item %s", ErrItemNotFound, sub.CategoryID, itemID)
		}
		return nil, err
	}
	if !cat.Active {
		return nil, fmt.Errorf("%w: category %s is inactive", ErrItemNotFound, cat.ID)
	}

	return &models.ResolvedItem{
		Kind:        models.ItemKindCatalogItem,
		ID:          item.ID,
		DisplayName: item.Name,
		Price:       item.Price, // 0 is valid: free items are bookable
		Mode:        item.Mode,
	}, nil
}
