// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

// CartService manages pending-purchase lines. Stock is checked at
// mutation time only; nothing is reserved until an order is placed.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) ListCart(userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Product").Preload("Product.Seller").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return items, nil
}

// AddItem adds quantity to the buyer's line for the product, creating
// the line if absent. The combined quantity may not exceed current
// stock.
func (s *CartService) AddItem(userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var product models.Product
	err := s.db.Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if product.StockQuantity < quantity {
		return ErrOutOfStock
	}

	var existing models.CartItem
	err = s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	switch {
	case err == nil:
		newQuantity := existing.Quantity + quantity
		if newQuantity > product.StockQuantity {
			return ErrOutOfStock
		}
		if err := s.db.Model(&existing).Update("quantity", newQuantity).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(item).Error; err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return fmt.Errorf("database error: %w", err)
	}

	return nil
}

// UpdateItem sets the line quantity outright.
func (s *CartService) UpdateItem(userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var product models.Product
	err := s.db.First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if product.StockQuantity < quantity {
		return ErrOutOfStock
	}

	result := s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (s *CartService) RemoveItem(userID, productID int64) error {
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) ClearCart(userID int64) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
