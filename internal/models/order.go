// internal/models/order.go
package models

type Order struct {
	BaseModel
	OrderNumber     string        `json:"order_number" gorm:"size:20;not null;index"`
	UserID          int64         `json:"user_id" gorm:"not null;index"`
	TotalAmount     float64       `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	ShippingFee     float64       `json:"shipping_fee" gorm:"type:decimal(10,2);not null"`
	ShippingAddress JSONB         `json:"shipping_address" gorm:"type:jsonb"`
	PaymentMethod   string        `json:"payment_method" gorm:"size:50;default:'credit_card'"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots unit price and seller at purchase time; later
// price changes never affect a placed order.
type OrderItem struct {
	BaseModel
	OrderID    int64           `json:"order_id" gorm:"not null;index"`
	ProductID  int64           `json:"product_id" gorm:"not null;index"`
	SellerID   int64           `json:"seller_id" gorm:"not null;index"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  float64         `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice float64         `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status     OrderItemStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`

	// Relationships
	Order   Order   `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Seller  Seller  `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
}

// SellerStats holds incrementally maintained aggregate counters per
// seller. Every code path that changes order or payment state updates
// these in the same transaction; they are never recomputed from scratch.
type SellerStats struct {
	BaseModel
	SellerID      int64   `json:"seller_id" gorm:"uniqueIndex;not null"`
	TotalRevenue  float64 `json:"total_revenue" gorm:"type:decimal(12,2);default:0"`
	TotalOrders   int64   `json:"total_orders" gorm:"default:0"`
	TotalProducts int64   `json:"total_products" gorm:"default:0"`
	PendingOrders int64   `json:"pending_orders" gorm:"default:0"`
}
