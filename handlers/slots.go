package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"a1care/middleware"
	"a1care/models"
	"a1care/services/slot"
)

// SlotHandler exposes slot generation and availability lookups.
type SlotHandler struct {
	Ledger slot.Ledger
}

// GenerateSlotsHandler creates slots on the authenticated provider's calendar.
// Windows that already exist are skipped, so retries are safe.
func (h *SlotHandler) GenerateSlotsHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString(middleware.ContextRequesterID)

	var req models.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	created, err := h.Ledger.GenerateSlots(c.Request.Context(), providerID, req.Date, req.Windows)
	if err != nil {
		logger.Error("Failed to generate slots",
			zap.String("providerId", providerID),
			zap.String("date", req.Date),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to generate slots", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": created, "count": len(created)})
}

// ListDayScheduleHandler returns every slot on a provider's day, reserved
// included. Providers see only their own schedule; staff see any.
func (h *SlotHandler) ListDayScheduleHandler(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}

	role := c.GetString(middleware.ContextRole)
	if role == "provider" && providerID != c.GetString(middleware.ContextRequesterID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions for this resource"})
		return
	}

	slots, err := h.Ledger.ListDay(c.Request.Context(), providerID, date)
	if err != nil {
		getLogger(c).Error("Failed to list day schedule",
			zap.String("providerId", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list day schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListAvailableSlotsHandler returns a provider's open slots for a day,
// ordered by start time.
func (h *SlotHandler) ListAvailableSlotsHandler(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}

	slots, err := h.Ledger.ListAvailable(c.Request.Context(), providerID, date)
	if err != nil {
		getLogger(c).Error("Failed to list available slots",
			zap.String("providerId", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list available slots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
