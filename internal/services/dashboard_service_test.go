// internal/services/dashboard_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardEmptySeller(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	// Simulate a legacy account without a stats row.
	require.NoError(t, db.Exec("DELETE FROM seller_stats WHERE seller_id = ?", seller.ID).Error)

	data, err := svc.GetDashboard(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, data.Stats.SellerID)
	assert.Zero(t, data.Stats.TotalOrders)
	assert.Zero(t, data.Stats.TotalRevenue)
	assert.Empty(t, data.RecentOrders)
}

func TestDashboardRecentOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)
	orders := NewOrderService(db, testConfig(), NewActivityService(db))

	buyer := createBuyer(t, db, "buyer@example.com")
	seller := createApprovedSeller(t, db, "Thrift Traders")
	category := createCategory(t, db, "Clothing")
	product := createProduct(t, db, seller.ID, category.ID, "Denim Jacket", 100.00, 50)

	for i := 0; i < 7; i++ {
		fillCart(t, db, buyer.ID, product.ID, 1)
		_, err := orders.CreateOrder(buyer.ID, gautengAddress(), "10.0.0.1")
		require.NoError(t, err)
	}

	data, err := svc.GetDashboard(seller.ID)
	require.NoError(t, err)

	// Capped at five, flattened with product and customer names.
	require.Len(t, data.RecentOrders, 5)
	line := data.RecentOrders[0]
	assert.Equal(t, "Denim Jacket", line.ProductName)
	assert.Equal(t, "Test Buyer", line.CustomerName)
	assert.Equal(t, 1, line.Quantity)
	assert.InDelta(t, 100.00, line.TotalPrice, 0.001)
	assert.NotEmpty(t, line.OrderNumber)
}
