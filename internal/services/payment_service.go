// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

// amountTolerance absorbs float rounding between the client-submitted
// amount and the stored order total.
const amountTolerance = 0.01

// Processor authorizes a charge for an order. Implementations decide
// approval; the service owns all state transitions either way.
type Processor interface {
	Authorize(order *models.Order, method string) (reference string, approved bool, err error)
}

// SimulatedProcessor approves a configurable fraction of charges at
// random. The default mirrors production gateway approval rates closely
// enough for demos and tests.
type SimulatedProcessor struct {
	SuccessRate float64
}

func (p *SimulatedProcessor) Authorize(order *models.Order, method string) (string, bool, error) {
	return "", rand.Float64() < p.SuccessRate, nil
}

// StripeProcessor charges through Stripe payment intents. Amounts are
// ZAR, converted to cents on the wire.
type StripeProcessor struct{}

func (p *StripeProcessor) Authorize(order *models.Order, method string) (string, bool, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(order.TotalAmount * 100))),
		Currency: stripe.String("zar"),
	}
	params.Metadata = map[string]string{
		"order_number": order.OrderNumber,
	}
	params.PaymentMethodTypes = stripe.StringSlice([]string{"card"})

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", false, fmt.Errorf("stripe payment intent failed: %w", err)
	}
	approved := intent.Status == stripe.PaymentIntentStatusSucceeded ||
		intent.Status == stripe.PaymentIntentStatusRequiresCapture ||
		intent.Status == stripe.PaymentIntentStatusRequiresConfirmation
	return intent.ID, approved, nil
}

// PaymentService settles orders. Every attempt, approved or declined,
// leaves an append-only PaymentTransaction row.
type PaymentService struct {
	db        *gorm.DB
	processor Processor
	activity  *ActivityService
}

type ProcessPaymentRequest struct {
	OrderID       int64   `json:"order_id" validate:"required"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, activity *ActivityService) *PaymentService {
	var processor Processor
	if cfg.Payment.StripeSecretKey != "" {
		stripe.Key = cfg.Payment.StripeSecretKey
		processor = &StripeProcessor{}
	} else {
		processor = &SimulatedProcessor{SuccessRate: cfg.Payment.SuccessRate}
	}
	return &PaymentService{db: db, processor: processor, activity: activity}
}

// NewPaymentServiceWithProcessor wires an explicit processor in place
// of the configured one.
func NewPaymentServiceWithProcessor(db *gorm.DB, processor Processor, activity *ActivityService) *PaymentService {
	return &PaymentService{db: db, processor: processor, activity: activity}
}

// ProcessPayment charges the buyer's pending order. An approved charge
// confirms the order, its items and the per-seller aggregates in one
// transaction; a declined charge only marks the payment failed so the
// buyer can retry or cancel.
func (s *PaymentService) ProcessPayment(userID int64, req *ProcessPaymentRequest, ip string) (*models.PaymentTransaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	err := s.db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if math.Abs(req.Amount-order.TotalAmount) > amountTolerance {
		return nil, ErrAmountMismatch
	}

	method := req.PaymentMethod
	if method == "" {
		method = order.PaymentMethod
	}

	reference, approved, err := s.processor.Authorize(&order, method)
	if err != nil {
		return nil, err
	}

	txn := &models.PaymentTransaction{
		OrderID:       order.ID,
		TransactionID: uuid.New().String(),
		Amount:        req.Amount,
		PaymentMethod: method,
		Reference:     reference,
	}

	if approved {
		txn.Status = models.TransactionStatusSuccess
		err = s.db.Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&order).Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusCompleted,
				"status":         models.OrderStatusConfirmed,
			}).Error
			if err != nil {
				return err
			}
			err = tx.Model(&models.OrderItem{}).
				Where("order_id = ?", order.ID).
				Update("status", models.OrderItemStatusConfirmed).Error
			if err != nil {
				return err
			}

			var items []models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			// One stats bump per seller per order; revenue is the sum of
			// that seller's lines.
			sellerRevenue := make(map[int64]float64)
			for _, item := range items {
				sellerRevenue[item.SellerID] += item.TotalPrice
			}
			for sellerID, revenue := range sellerRevenue {
				err := tx.Model(&models.SellerStats{}).
					Where("seller_id = ?", sellerID).
					Updates(map[string]interface{}{
						"total_orders":   gorm.Expr("total_orders + 1"),
						"total_revenue":  gorm.Expr("total_revenue + ?", revenue),
						"pending_orders": gorm.Expr("pending_orders + 1"),
					}).Error
				if err != nil {
					return err
				}
			}

			if err := tx.Create(txn).Error; err != nil {
				return err
			}
			return s.activity.RecordTx(tx, userID, models.ActorTypeBuyer, "payment_success", ip)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"order_number":   order.OrderNumber,
			"transaction_id": txn.TransactionID,
			"amount":         txn.Amount,
		}).Info("Payment completed")
		return txn, nil
	}

	txn.Status = models.TransactionStatusFailed
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&order).Update("payment_status", models.PaymentStatusFailed).Error
		if err != nil {
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		return s.activity.RecordTx(tx, userID, models.ActorTypeBuyer, "payment_failed", ip)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_number":   order.OrderNumber,
		"transaction_id": txn.TransactionID,
	}).Warn("Payment declined")
	return txn, nil
}
