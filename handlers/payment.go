package handlers

import (
	"io"
	"net/http"

	"docassist/services/booking"
	"docassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler receives payment-provider callbacks. Both entry points
// converge on the same idempotent confirmation, so it does not matter
// which of the webhook or the verify poll lands first.
type PaymentHandler struct {
	BookingService booking.BookingService
	Gateway        booking.CheckoutGateway
}

// WebhookHandler handles POST /api/payments/webhook. The raw body is
// needed for signature verification, so binding is bypassed.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	session, err := h.Gateway.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logger.Warn("Webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}
	if session == nil {
		// An event type this system does not act on.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if _, err := h.BookingService.ConfirmSession(c.Request.Context(), session); err != nil {
		logger.Error("Webhook confirmation failed", zap.String("session", session.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// VerifyHandler handles GET /api/payments/verify, taking the session id
// either as a path segment or as the session_id query parameter. The
// success page polls this with the id from its redirect URL; it is
// unauthenticated because the shopper may return in a fresh browser
// session.
func (h *PaymentHandler) VerifyHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	result, err := h.BookingService.VerifyPayment(c.Request.Context(), sessionID)
	if err != nil {
		utils.GetLogger().Error("Payment verify failed", zap.String("session", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
