// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate
// these to HTTP statuses; anything unrecognized surfaces as a 500.
var (
	// Identity
	ErrDuplicateIdentity  = errors.New("account already exists with this email or business name")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")

	// Catalog
	ErrProductNotFound  = errors.New("product not found")
	ErrMediaNotFound    = errors.New("media item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidMediaType = errors.New("invalid file type")

	// Cart
	ErrOutOfStock       = errors.New("insufficient stock")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrCartItemNotFound = errors.New("cart item not found")

	// Orders and payments
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotCancellable = errors.New("order not found or cannot be cancelled")
	ErrAmountMismatch = errors.New("amount mismatch")
)

// InsufficientStockError names the offending product so order creation
// can report which line failed re-validation.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for " + e.ProductName
}
