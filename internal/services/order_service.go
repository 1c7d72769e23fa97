// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

// OrderService converts carts to orders and drives the order lifecycle.
// Everything that moves stock runs inside a single database
// transaction; stock decrements are guarded conditional updates so two
// concurrent checkouts cannot oversell.
type OrderService struct {
	db       *gorm.DB
	cfg      *config.Config
	activity *ActivityService
}

type CreateOrderRequest struct {
	ShippingAddress map[string]interface{} `json:"shipping_address" validate:"required"`
	PaymentMethod   string                 `json:"payment_method,omitempty"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, activity *ActivityService) *OrderService {
	return &OrderService{db: db, cfg: cfg, activity: activity}
}

// generateOrderNumber derives a human-readable number from the current
// date plus a random 4-digit suffix. Not guaranteed globally unique; a
// collision is a tolerated data-quality defect, not a hard error.
func generateOrderNumber() string {
	return fmt.Sprintf("TS%s%d", time.Now().Format("20060102"), 1000+rand.Intn(9000))
}

// CreateOrder places an order from the buyer's cart: snapshot prices
// and sellers into order items, decrement stock, clear the cart and
// write the audit row, all in one transaction. Any failure rolls the
// whole operation back.
func (s *OrderService) CreateOrder(userID int64, req *CreateOrderRequest, ip string) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var cartItems []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Find(&cartItems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	// Pre-validate stock and compute totals. The guarded update inside
	// the transaction below is the authoritative check; this pass only
	// produces a friendly error naming the product.
	var itemsTotal float64
	for _, item := range cartItems {
		if item.Product.StockQuantity < item.Quantity {
			return nil, &InsufficientStockError{ProductName: item.Product.Name}
		}
		itemsTotal += item.Product.Price * float64(item.Quantity)
	}

	province, _ := req.ShippingAddress["province"].(string)
	shippingFee := CalculateShipping(s.cfg.Shipping, province, 1)
	totalAmount := itemsTotal + shippingFee

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "credit_card"
	}

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          userID,
		TotalAmount:     totalAmount,
		ShippingFee:     shippingFee,
		ShippingAddress: models.JSONB(req.ShippingAddress),
		PaymentMethod:   paymentMethod,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range cartItems {
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				SellerID:   item.Product.SellerID,
				Quantity:   item.Quantity,
				UnitPrice:  item.Product.Price,
				TotalPrice: item.Product.Price * float64(item.Quantity),
				Status:     models.OrderItemStatusPending,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			// Guarded decrement: zero rows affected means a concurrent
			// checkout drained the stock since the pre-check.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &InsufficientStockError{ProductName: item.Product.Name}
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return s.activity.RecordTx(tx, userID, models.ActorTypeBuyer, "order_created", ip)
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.TotalAmount,
	}).Info("Order created")

	return order, nil
}

// ListBuyerOrders returns the buyer's orders, newest first, with their
// items.
func (s *OrderService) ListBuyerOrders(userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// ListSellerOrders returns the seller's order lines joined with their
// orders, products and customers, newest first.
func (s *OrderService) ListSellerOrders(sellerID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.Where("seller_id = ?", sellerID).
		Preload("Order").Preload("Order.User").Preload("Product").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Order("orders.created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller orders: %w", err)
	}
	return items, nil
}

// CancelOrder cancels a pending or confirmed order owned by the buyer,
// restoring stock for every item exactly once. Unknown, foreign and
// already-cancelled orders all surface as ErrNotCancellable.
func (s *OrderService) CancelOrder(orderID, userID int64, ip string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("id = ? AND user_id = ? AND status IN ?",
			orderID, userID,
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusConfirmed}).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotCancellable
			}
			return err
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}
		err = tx.Model(&models.OrderItem{}).
			Where("order_id = ?", orderID).
			Update("status", models.OrderItemStatusCancelled).Error
		if err != nil {
			return err
		}

		return s.activity.RecordTx(tx, userID, models.ActorTypeBuyer, "order_cancelled", ip)
	})
	if err != nil {
		if errors.Is(err, ErrNotCancellable) {
			return err
		}
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"user_id":  userID,
	}).Info("Order cancelled")

	return nil
}
