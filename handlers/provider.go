package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	providerRepo "a1care/database/repository/provider"
	"a1care/middleware"
	"a1care/models"
)

// ProviderHandler serves provider profiles and consultation fee management.
type ProviderHandler struct {
	Repo providerRepo.ProviderRepository
}

// ListProvidersHandler returns all active providers.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetProviderHandler returns details for a specific provider.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	id := c.Param("id")
	provider, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		getLogger(c).Error("Failed to get provider", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get provider"})
		return
	}
	c.JSON(http.StatusOK, provider)
}

// CreateProviderHandler registers a new provider profile.
func (h *ProviderHandler) CreateProviderHandler(c *gin.Context) {
	logger := getLogger(c)
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		logger.Error("Invalid provider creation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if provider.ConsultationFee < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consultationFee must not be negative"})
		return
	}
	if err := h.Repo.Create(c.Request.Context(), &provider); err != nil {
		logger.Error("Failed to create provider", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// SetConsultationFeeHandler updates a provider's consultation fee. Existing
// reservations keep their frozen price.
func (h *ProviderHandler) SetConsultationFeeHandler(c *gin.Context) {
	id := c.Param("id")

	role := c.GetString(middleware.ContextRole)
	if role == "provider" && id != c.GetString(middleware.ContextRequesterID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions for this resource"})
		return
	}

	var body struct {
		ConsultationFee float64 `json:"consultationFee" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	provider, err := h.Repo.SetConsultationFee(c.Request.Context(), id, body.ConsultationFee)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		getLogger(c).Error("Failed to set consultation fee", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set consultation fee"})
		return
	}
	c.JSON(http.StatusOK, provider)
}
