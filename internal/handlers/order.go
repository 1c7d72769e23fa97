// internal/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(*identity.UserID, &req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order created",
		"order":        order,
		"order_number": order.OrderNumber,
	})
}

// GET /api/orders
//
// Buyers get their order history; sellers get the sold-item view, same
// as /api/seller/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	if identity.IsSeller() {
		h.ListSellerOrders(c)
		return
	}

	orders, err := h.orderService.ListBuyerOrders(*identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/seller/orders
func (h *OrderHandler) ListSellerOrders(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	items, err := h.orderService.ListSellerOrders(*identity.SellerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_items": items})
}

// POST /api/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(orderID, *identity.UserID, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
