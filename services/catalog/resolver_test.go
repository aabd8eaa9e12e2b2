package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogRepo "a1care/database/repository/catalog"
	providerRepo "a1care/database/repository/provider"
	"a1care/models"
)

// fakeCatalogRepo serves catalog nodes from maps.
type fakeCatalogRepo struct {
	categories    map[string]*models.ServiceCategory
	subCategories map[string]*models.ServiceSubCategory
	items         map[string]*models.ServiceItem
}

func (f *fakeCatalogRepo) GetCategory(ctx context.Context, id string) (*models.ServiceCategory, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalogRepo) GetSubCategory(ctx context.Context, id string) (*models.ServiceSubCategory, error) {
	if sc, ok := f.subCategories[id]; ok {
		return sc, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalogRepo) GetItem(ctx context.Context, id string) (*models.ServiceItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalogRepo) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) ListSubCategories(ctx context.Context, categoryID string) ([]models.ServiceSubCategory, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) ListItems(ctx context.Context, subCategoryID string) ([]models.ServiceItem, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) CreateCategory(ctx context.Context, c *models.ServiceCategory) error {
	return nil
}

func (f *fakeCatalogRepo) CreateSubCategory(ctx context.Context, sc *models.ServiceSubCategory) error {
	return nil
}

func (f *fakeCatalogRepo) CreateItem(ctx context.Context, item *models.ServiceItem) error {
	return nil
}

func (f *fakeCatalogRepo) DeactivateCategory(ctx context.Context, id string) error    { return nil }
func (f *fakeCatalogRepo) DeactivateSubCategory(ctx context.Context, id string) error { return nil }
func (f *fakeCatalogRepo) DeactivateItem(ctx context.Context, id string) error        { return nil }
func (f *fakeCatalogRepo) EnsureIndexes() error                                       { return nil }

// fakeProviderRepo serves provider profiles from a map.
type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error { return nil }

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if p, ok := f.providers[id]; ok {
		return p, nil
	}
	return nil, providerRepo.ErrNotFound
}

func (f *fakeProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	return nil, nil
}

func (f *fakeProviderRepo) SetConsultationFee(ctx context.Context, id string, fee float64) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (f *fakeProviderRepo) EnsureIndexes() error { return nil }

func activeCatalogTree() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		categories: map[string]*models.ServiceCategory{
			"cat1": {ID: "cat1", Name: "Home Care", Active: true},
		},
		subCategories: map[string]*models.ServiceSubCategory{
			"sub1": {ID: "sub1", CategoryID: "cat1", Name: "Nursing", Active: true},
		},
		items: map[string]*models.ServiceItem{
			"item1": {ID: "item1", SubCategoryID: "sub1", Name: "Wound dressing", Price: 1200, Mode: models.ModeHomeVisit, Active: true},
			"free1": {ID: "free1", SubCategoryID: "sub1", Name: "Prescription upload", Price: 0, Mode: models.ModeRemote, Active: true},
		},
	}
}

func newResolver(cat *fakeCatalogRepo, prov *fakeProviderRepo) *DefaultResolver {
	return &DefaultResolver{
		Catalog:                cat,
		Providers:              prov,
		DefaultConsultationFee: 300,
	}
}

func TestResolveCatalogItem(t *testing.T) {
	r := newResolver(activeCatalogTree(), &fakeProviderRepo{})

	item, err := r.Resolve(context.Background(), models.ItemKindCatalogItem, "item1")
	require.NoError(t, err)

	assert.Equal(t, models.ItemKindCatalogItem, item.Kind)
	assert.Equal(t, "Wound dressing", item.DisplayName)
	assert.Equal(t, 1200.0, item.Price)
	assert.Equal(t, models.ModeHomeVisit, item.Mode)
	assert.Empty(t, item.ProviderID)
}

func TestResolveFreeItemKeepsZeroPrice(t *testing.T) {
	r := newResolver(activeCatalogTree(), &fakeProviderRepo{})

	item, err := r.Resolve(context.Background(), models.ItemKindCatalogItem, "free1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, item.Price)
}

func TestResolveUnknownItem(t *testing.T) {
	r := newResolver(activeCatalogTree(), &fakeProviderRepo{})

	_, err := r.Resolve(context.Background(), models.ItemKindCatalogItem, "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestResolveItemWithInactiveAncestorFails(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*fakeCatalogRepo)
	}{
		{"inactive item", func(f *fakeCatalogRepo) { f.items["item1"].Active = false }},
		{"inactive subcategory", func(f *fakeCatalogRepo) { f.subCategories["sub1"].Active = false }},
		{"inactive category", func(f *fakeCatalogRepo) { f.categories["cat1"].Active = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := activeCatalogTree()
			tc.mod(tree)
			r := newResolver(tree, &fakeProviderRepo{})

			_, err := r.Resolve(context.Background(), models.ItemKindCatalogItem, "item1")
			assert.ErrorIs(t, err, ErrItemNotFound)
		})
	}
}

func TestResolveConsultationUsesProviderFee(t *testing.T) {
	prov := &fakeProviderRepo{providers: map[string]*models.Provider{
		"p1": {ID: "p1", Name: "Dr. Achieng", ConsultationFee: 450, Active: true},
	}}
	r := newResolver(activeCatalogTree(), prov)

	item, err := r.Resolve(context.Background(), models.ItemKindConsultation, "p1")
	require.NoError(t, err)

	assert.Equal(t, models.ItemKindConsultation, item.Kind)
	assert.Equal(t, 450.0, item.Price)
	assert.Equal(t, "p1", item.ProviderID)
}

func TestResolveConsultationFallsBackToDefaultFee(t *testing.T) {
	prov := &fakeProviderRepo{providers: map[string]*models.Provider{
		"p1": {ID: "p1", Name: "Dr. Otieno", ConsultationFee: 0, Active: true},
	}}
	r := newResolver(activeCatalogTree(), prov)

	item, err := r.Resolve(context.Background(), models.ItemKindConsultation, "p1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, item.Price)
}

func TestResolveInactiveProviderFails(t *testing.T) {
	prov := &fakeProviderRepo{providers: map[string]*models.Provider{
		"p1": {ID: "p1", Name: "Dr. Otieno", Active: false},
	}}
	r := newResolver(activeCatalogTree(), prov)

	_, err := r.Resolve(context.Background(), models.ItemKindConsultation, "p1")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestResolveUnknownKind(t *testing.T) {
	r := newResolver(activeCatalogTree(), &fakeProviderRepo{})

	_, err := r.Resolve(context.Background(), models.ItemKind("bundle"), "x")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
