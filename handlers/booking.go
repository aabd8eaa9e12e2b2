package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reservationRepo "a1care/database/repository/reservation"
	slotRepo "a1care/database/repository/slot"
	"a1care/middleware"
	"a1care/models"
	"a1care/services/booking"
	"a1care/services/catalog"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Engine booking.Engine
}

// CreateBookingHandler creates a reservation for the authenticated requester.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	req := booking.CreateRequest{
		RequesterID:   c.GetString(middleware.ContextRequesterID),
		RequesterRole: booking.Role(c.GetString(middleware.ContextRole)),
		ItemKind:      input.ItemKind,
		ItemID:        input.ItemID,
		Date:          input.Date,
		SlotID:        input.SlotID,
		PaymentMethod: input.PaymentMethod,
	}

	res, err := h.Engine.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrItemNotFound), errors.Is(err, slotRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, slotRepo.ErrAlreadyReserved):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is no longer available", "code": "SlotUnavailable"})
		case errors.Is(err, booking.ErrSlotMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create reservation", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

// TransitionBookingHandler applies a lifecycle action to a reservation.
// The action name comes from the URL, extra fields from the body.
func (h *BookingHandler) TransitionBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.TransitionInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
			return
		}
	}
	if input.PaymentStatus != "" {
		switch input.PaymentStatus {
		case models.PaymentUnpaid, models.PaymentPaid, models.PaymentRefunded:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status: " + string(input.PaymentStatus)})
			return
		}
	}

	req := booking.TransitionRequest{
		ReservationID: c.Param("id"),
		Action:        booking.Action(c.Param("action")),
		ActorID:       c.GetString(middleware.ContextRequesterID),
		ActorRole:     booking.Role(c.GetString(middleware.ContextRole)),
		AssigneeID:    input.AssigneeID,
		Reason:        input.Reason,
		PaymentStatus: input.PaymentStatus,
	}

	res, err := h.Engine.Transition(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, booking.ErrActorNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to transition reservation",
				zap.String("reservationId", req.ReservationID),
				zap.String("action", string(req.Action)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// SetPaymentStatusHandler corrects a reservation's payment record, e.g.
// marking a refund after cancellation. Terminal reservations are permitted.
func (h *BookingHandler) SetPaymentStatusHandler(c *gin.Context) {
	var body struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	switch body.PaymentStatus {
	case models.PaymentUnpaid, models.PaymentPaid, models.PaymentRefunded:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status: " + string(body.PaymentStatus)})
		return
	}

	res, err := h.Engine.SetPaymentStatus(c.Request.Context(), c.Param("id"), body.PaymentStatus)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		getLogger(c).Error("Failed to set payment status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set payment status"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetBookingHandler returns a single reservation.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Engine.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		getLogger(c).Error("Failed to get reservation", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reservation"})
		return
	}

	// Patients may only view their own reservations.
	role := c.GetString(middleware.ContextRole)
	if role == "patient" && res.RequesterID != c.GetString(middleware.ContextRequesterID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions for this resource"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListMyBookingsHandler returns the authenticated requester's reservations,
// newest first.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	requesterID := c.GetString(middleware.ContextRequesterID)
	list, err := h.Engine.ListByRequester(c.Request.Context(), requesterID)
	if err != nil {
		getLogger(c).Error("Failed to list reservations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": list})
}

// ListProviderBookingsHandler returns a provider's reservations for one day,
// covering both consultation bookings and staff assignments.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
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

	list, err := h.Engine.ListByProviderAndDate(c.Request.Context(), providerID, date)
	if err != nil {
		getLogger(c).Error("Failed to list provider reservations",
			zap.String("providerId", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": list})
}
