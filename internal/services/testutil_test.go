// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/database"
	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			CookieName: "ts_session",
			TTLHours:   24,
		},
		Payment: config.PaymentConfig{
			SuccessRate: 0.8,
		},
		Shipping: config.ShippingConfig{
			DefaultBaseCost: 85.00,
			PerUnitWeight:   2.50,
		},
	}
}

func createBuyer(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		FullName: "Test Buyer",
		Phone:    "0821234567",
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createApprovedSeller(t *testing.T, db *gorm.DB, businessName string) *models.Seller {
	t.Helper()

	seller := &models.Seller{
		Email:        businessName + "@example.co.za",
		BusinessName: businessName,
		BusinessType: "individual",
		Status:       models.SellerStatusApproved,
	}
	require.NoError(t, seller.SetPassword("password123"))
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(&models.SellerStats{SellerID: seller.ID}).Error)
	return seller
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, sellerID, categoryID int64, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		SellerID:      sellerID,
		CategoryID:    categoryID,
		Name:          name,
		Description:   fmt.Sprintf("%s in great condition", name),
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func fillCart(t *testing.T, db *gorm.DB, userID, productID int64, quantity int) {
	t.Helper()
	require.NoError(t, db.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}).Error)
}

func stockOf(t *testing.T, db *gorm.DB, productID int64) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.StockQuantity
}
