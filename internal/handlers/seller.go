// internal/handlers/seller.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

type SellerHandler struct {
	dashboardService *services.DashboardService
}

func NewSellerHandler(dashboardService *services.DashboardService) *SellerHandler {
	return &SellerHandler{dashboardService: dashboardService}
}

// GET /api/seller/dashboard
func (h *SellerHandler) Dashboard(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	data, err := h.dashboardService.GetDashboard(*identity.SellerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
