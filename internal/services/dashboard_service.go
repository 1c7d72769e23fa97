// internal/services/dashboard_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

// DashboardService assembles the seller landing page: aggregate
// counters plus a short tail of recent order lines.
type DashboardService struct {
	db *gorm.DB
}

// RecentOrderLine is one of the seller's recent order items flattened
// for display.
type RecentOrderLine struct {
	OrderNumber  string  `json:"order_number"`
	ProductName  string  `json:"product_name"`
	CustomerName string  `json:"customer_name"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

type DashboardData struct {
	Stats        models.SellerStats `json:"stats"`
	RecentOrders []RecentOrderLine  `json:"recent_orders"`
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// GetDashboard returns the seller's aggregates and five most recent
// order lines. A seller with no stats row yet gets zeroed counters
// rather than an error.
func (s *DashboardService) GetDashboard(sellerID int64) (*DashboardData, error) {
	var stats models.SellerStats
	err := s.db.Where("seller_id = ?", sellerID).First(&stats).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load seller stats: %w", err)
		}
		stats = models.SellerStats{SellerID: sellerID}
	}

	var items []models.OrderItem
	err = s.db.Where("seller_id = ?", sellerID).
		Preload("Order").Preload("Order.User").Preload("Product").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Order("orders.created_at DESC").
		Limit(5).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	recent := make([]RecentOrderLine, 0, len(items))
	for _, item := range items {
		recent = append(recent, RecentOrderLine{
			OrderNumber:  item.Order.OrderNumber,
			ProductName:  item.Product.Name,
			CustomerName: item.Order.User.FullName,
			Quantity:     item.Quantity,
			TotalPrice:   item.TotalPrice,
			Status:       string(item.Status),
			CreatedAt:    item.Order.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return &DashboardData{Stats: stats, RecentOrders: recent}, nil
}
