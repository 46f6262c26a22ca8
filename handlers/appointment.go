package handlers

import (
	"errors"
	"net/http"

	"docassist/middleware"
	"docassist/models"
	"docassist/services/booking"
	"docassist/services/user"
	"docassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the booking lifecycle. No appointment row
// exists until payment completes; initiate only opens a checkout session.
type AppointmentHandler struct {
	BookingService booking.BookingService
	UserService    user.UserService
}

// InitiateBookingHandler handles POST /api/appointments. On success the
// client is handed the checkout URL to redirect to.
func (h *AppointmentHandler) InitiateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString(middleware.CtxUserID)

	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	caller, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("Caller lookup failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
		return
	}

	session, doc, err := h.BookingService.Initiate(c.Request.Context(), caller, req)
	if err != nil {
		var invalidDate *booking.InvalidDateError
		var duplicate *booking.DuplicateBookingError
		switch {
		case errors.Is(err, booking.ErrDoctorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &invalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &duplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Booking initiate failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": session.URL,
		"session_id":   session.ID,
		"doctor":       doc,
	})
}

// ListMyAppointmentsHandler handles GET /api/appointments.
func (h *AppointmentHandler) ListMyAppointmentsHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	appts, err := h.BookingService.ListByUser(userID)
	if err != nil {
		utils.GetLogger().Error("List appointments failed", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointmentHandler handles POST /api/appointments/:id/cancel.
// Owners can cancel their own appointments; admins can cancel any.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	apptID := c.Param("id")
	callerID := c.GetString(middleware.CtxUserID)
	isAdmin := c.GetString(middleware.CtxUserRole) == models.RoleAdmin

	appt, err := h.BookingService.Cancel(apptID, callerID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Cancel failed", zap.String("id", apptID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		}
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListAllAppointmentsHandler handles GET /api/admin/appointments.
func (h *AppointmentHandler) ListAllAppointmentsHandler(c *gin.Context) {
	appts, err := h.BookingService.ListAll()
	if err != nil {
		utils.GetLogger().Error("List all appointments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}
