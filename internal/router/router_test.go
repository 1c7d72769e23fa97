// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
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
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func testRouterConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			CookieName: "ts_session",
			TTLHours:   24,
		},
		Payment: config.PaymentConfig{
			// Deterministic approval for the checkout flow test.
			SuccessRate: 1.0,
		},
		Upload: config.UploadConfig{
			Dir:         t.TempDir(),
			BaseURL:     "/static/uploads",
			MaxBodySize: 50 << 20,
		},
		Shipping: config.ShippingConfig{
			DefaultBaseCost: 85.00,
			PerUnitWeight:   2.50,
		},
		RateLimit: config.RateLimitConfig{
			// Roomy budgets so tests never trip the limiter.
			GeneralPerSecond: 100,
			AuthPerMinute:    50,
			UploadPerMinute:  50,
		},
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	r, err := Initialize(db, testRouterConfig(t))
	require.NoError(t, err)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	seller := &models.Seller{
		Email:        "seller@example.co.za",
		BusinessName: "Thrift Traders",
		Status:       models.SellerStatusApproved,
	}
	require.NoError(t, seller.SetPassword("password123"))
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(&models.SellerStats{SellerID: seller.ID}).Error)

	category := &models.Category{Name: "Clothing", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		SellerID:      seller.ID,
		CategoryID:    category.ID,
		Name:          "Denim Jacket",
		Description:   "Barely worn",
		Price:         100.00,
		StockQuantity: 5,
		IsActive:      true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["database"])
}

func TestAuthCookieFlow(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", map[string]interface{}{
		"full_name": "Thandi Mokoena",
		"email":     "thandi@example.com",
		"password":  "password123",
		"phone":     "0821234567",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "ts_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The cookie authenticates /api/user.
	w = doJSON(t, r, http.MethodGet, "/api/user", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer", decodeBody(t, w)["account_type"])

	// Without it, protected routes refuse.
	w = doJSON(t, r, http.MethodGet, "/api/cart", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A buyer session cannot reach seller routes.
	w = doJSON(t, r, http.MethodGet, "/api/seller/dashboard", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout invalidates the session server-side.
	w = doJSON(t, r, http.MethodPost, "/api/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/user", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	r, db := newTestServer(t)
	product := seedProduct(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/register", map[string]interface{}{
		"full_name": "Thandi Mokoena",
		"email":     "thandi@example.com",
		"password":  "password123",
		"phone":     "0821234567",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()

	w = doJSON(t, r, http.MethodPost, "/api/cart", map[string]interface{}{
		"product_id": product.ID,
		"quantity":   2,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"shipping_address": map[string]interface{}{
			"full_name": "Thandi Mokoena",
			"street":    "12 Vilakazi Street",
			"city":      "Soweto",
			"province":  "Gauteng",
		},
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	order := created["order"].(map[string]interface{})
	orderID := int64(order["id"].(float64))
	assert.InDelta(t, 267.50, order["total_amount"].(float64), 0.001)

	w = doJSON(t, r, http.MethodPost, "/api/payments/process", map[string]interface{}{
		"order_id": orderID,
		"amount":   order["total_amount"],
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, orderID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)

	// Paying the wrong amount is rejected up front.
	w = doJSON(t, r, http.MethodPost, "/api/payments/process", map[string]interface{}{
		"order_id": orderID,
		"amount":   1.00,
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "amount")
}

func TestPublicCatalog(t *testing.T) {
	r, db := newTestServer(t)
	product := seedProduct(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeBody(t, w)["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, product.Name, products[0].(map[string]interface{})["name"])

	w = doJSON(t, r, http.MethodGet, "/api/products/9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestInitializeFailsWhenUploadDirUnusable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	// A regular file where the upload dir should go makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := testRouterConfig(t)
	cfg.Upload.Dir = filepath.Join(blocker, "uploads")

	_, err := Initialize(db, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage")
}

func TestOversizedBodyRejectedWith413(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	cfg := testRouterConfig(t)
	cfg.Upload.MaxBodySize = 1 << 10
	r, err := Initialize(db, cfg)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]interface{}{
		"name":    "Thandi Mokoena",
		"email":   "thandi@example.com",
		"message": strings.Repeat("a", 2048),
	}, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["error"])
}

func TestValidationErrorDetails(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", map[string]interface{}{
		"full_name": "Thandi Mokoena",
		"email":     "not-an-email",
		"password":  "password123",
		"phone":     "0821234567",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	details := body["details"].([]interface{})
	require.NotEmpty(t, details)
	assert.Equal(t, "email", details[0].(map[string]interface{})["field"])
}

func TestOrdersRouteServesSellers(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/seller/register", map[string]interface{}{
		"business_name": "Thrift Traders",
		"email":         "seller@example.co.za",
		"password":      "password123",
		"phone":         "0831234567",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()

	// Sellers get the sold-item view on the shared orders route.
	w = doJSON(t, r, http.MethodGet, "/api/orders", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := decodeBody(t, w)["order_items"]
	assert.True(t, ok)
}
