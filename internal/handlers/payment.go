// internal/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// POST /api/payments/process
//
// A declined charge is still a 200: the attempt was processed, its
// outcome is in the payload. Only invalid requests and server faults
// use error statuses.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	var req services.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	txn, err := h.paymentService.ProcessPayment(*identity.UserID, &req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	if txn.Status == models.TransactionStatusSuccess {
		c.JSON(http.StatusOK, gin.H{
			"message":        "Payment successful",
			"status":         txn.Status,
			"transaction_id": txn.TransactionID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment failed. Please try again.",
		"status":         txn.Status,
		"transaction_id": txn.TransactionID,
	})
}
