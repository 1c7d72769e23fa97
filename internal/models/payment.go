// internal/models/payment.go
package models

// PaymentTransaction is an append-only record of one payment attempt.
// Retries create additional rows; existing rows are never mutated.
type PaymentTransaction struct {
	BaseModel
	OrderID       int64             `json:"order_id" gorm:"not null;index"`
	TransactionID string            `json:"transaction_id" gorm:"size:64;uniqueIndex;not null"`
	Amount        float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod string            `json:"payment_method" gorm:"size:50"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	Reference     string            `json:"reference,omitempty" gorm:"size:255"`

	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}
