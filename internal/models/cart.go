// internal/models/cart.go
package models

// CartItem is one buyer-product-quantity pending purchase line.
type CartItem struct {
	BaseModel
	UserID    int64 `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID int64 `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int   `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
