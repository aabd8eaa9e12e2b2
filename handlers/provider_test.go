package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	providerRepo "a1care/database/repository/provider"
	"a1care/middleware"
	"a1care/models"
)

// fakeProviderRepo records fee updates so tests can assert whether the
// handler let the call through.
type fakeProviderRepo struct {
	providers map[string]*models.Provider
	feeCalls  []string
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error {
	f.providers[p.ID] = p
	return nil
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) SetConsultationFee(ctx context.Context, id string, fee float64) (*models.Provider, error) {
	f.feeCalls = append(f.feeCalls, id)
	p, ok := f.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	p.ConsultationFee = fee
	out := *p
	return &out, nil
}

func (f *fakeProviderRepo) EnsureIndexes() error { return nil }

func setFeeContext(t *testing.T, repo *fakeProviderRepo, targetID, requesterID, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/providers/"+targetID+"/consultation-fee", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	c.Set(middleware.ContextRequesterID, requesterID)
	c.Set(middleware.ContextRole, role)

	h := &ProviderHandler{Repo: repo}
	h.SetConsultationFeeHandler(c)
	return w
}

func TestSetConsultationFeeProviderCannotTouchAnotherProvider(t *testing.T) {
	repo := &fakeProviderRepo{providers: map[string]*models.Provider{
		"p1": {ID: "p1", Name: "Dr. Achieng", ConsultationFee: 450, Active: true},
	}}

	w := setFeeContext(t, repo, "p1", "p2", "provider", `{"consultationFee": 1}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.feeCalls)
	assert.Equal(t, 450.0, repo.providers["p1"].ConsultationFee)
}

func TestSetConsultationFeeProviderUpdatesOwnFee(t *testing.T) {
	repo := &fakeProviderRepo{providers: map[string]*models.Provider{
		"p1": {ID: "p1", Name: "Dr. Achieng", ConsultationFee: 450, Active: true},
	}}

	w := setFeeContext(t, repo, "p1", "p1", "provider", `{"consultationFee": 500}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"p1"}, repo.feeCalls)
	assert.Equal(t, 500.0, repo.providers["p1"].ConsultationFee)
}

func TestSetConsultationFeeStaffUpdatesAnyProvider(t *testing.T) {
	repo := &fakeProviderRepo{providers: map[string]*models.Provider{
		"p1": {ID: "p1", Name: "Dr. Achieng", ConsultationFee: 450, Active: true},
	}}

	w := setFeeContext(t, repo, "p1", "staff1", "staff", `{"consultationFee": 600}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 600.0, repo.providers["p1"].ConsultationFee)
}
