// internal/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type cartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	items, err := h.cartService.ListCart(*identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// POST /api/cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.cartService.AddItem(*identity.UserID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

// PUT /api/cart/:product_id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	if err := h.cartService.UpdateItem(*identity.UserID, productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// DELETE /api/cart/:product_id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	productID, ok := parseID(c, "product_id")
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(*identity.UserID, productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	if err := h.cartService.ClearCart(*identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
