// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

func TestListProductsHidesUnlistable(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	approved := createApprovedSeller(t, db, "Thrift Traders")
	pending := &models.Seller{
		Email:        "pending@example.co.za",
		BusinessName: "Pending Seller",
		Status:       models.SellerStatusPending,
	}
	require.NoError(t, pending.SetPassword("password123"))
	require.NoError(t, db.Create(pending).Error)

	category := createCategory(t, db, "Clothing")
	visible := createProduct(t, db, approved.ID, category.ID, "Denim Jacket", 100.00, 5)
	createProduct(t, db, pending.ID, category.ID, "Hidden Jacket", 90.00, 5)
	inactive := createProduct(t, db, approved.ID, category.ID, "Retired Jacket", 80.00, 5)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	products, err := svc.ListProducts(ProductFilters{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, visible.ID, products[0].ID)
	assert.Equal(t, "Thrift Traders", products[0].Seller.BusinessName)
}

func TestListProductsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	clothing := createCategory(t, db, "Clothing")
	shoes := createCategory(t, db, "Shoes")
	jacket := createProduct(t, db, seller.ID, clothing.ID, "Denim Jacket", 100.00, 5)
	boots := createProduct(t, db, seller.ID, shoes.ID, "Leather Boots", 250.00, 5)

	products, err := svc.ListProducts(ProductFilters{CategoryID: &shoes.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, boots.ID, products[0].ID)

	products, err = svc.ListProducts(ProductFilters{Search: "denim"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, jacket.ID, products[0].ID)

	products, err = svc.ListProducts(ProductFilters{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFeaturedListingSortsByViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	category := createCategory(t, db, "Clothing")
	quiet := createProduct(t, db, seller.ID, category.ID, "Quiet Jacket", 100.00, 5)
	popular := createProduct(t, db, seller.ID, category.ID, "Popular Jacket", 100.00, 5)
	createProduct(t, db, seller.ID, category.ID, "Plain Jacket", 100.00, 5)

	require.NoError(t, db.Model(quiet).Updates(map[string]interface{}{"featured": true, "view_count": 3}).Error)
	require.NoError(t, db.Model(popular).Updates(map[string]interface{}{"featured": true, "view_count": 10}).Error)

	products, err := svc.ListProducts(ProductFilters{Featured: true})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, popular.ID, products[0].ID)
	assert.Equal(t, quiet.ID, products[1].ID)
}

func TestGetProductCountsViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	category := createCategory(t, db, "Clothing")
	product := createProduct(t, db, seller.ID, category.ID, "Denim Jacket", 100.00, 5)

	for i := 0; i < 3; i++ {
		got, err := svc.GetProduct(product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
	}

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.EqualValues(t, 3, reloaded.ViewCount)

	_, err := svc.GetProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductMaintainsCounter(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	category := createCategory(t, db, "Clothing")

	product, err := svc.CreateProduct(seller.ID, &CreateProductRequest{
		Name:        "Denim Jacket",
		Description: "Barely worn",
		Price:       100.00,
		CategoryID:  category.ID,
		Images:      []string{"/static/uploads/images/a.jpg", "/static/uploads/images/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "good", product.Conditions)
	assert.Equal(t, 1, product.StockQuantity)
	assert.True(t, product.IsActive)
	assert.Equal(t, models.StringList{"/static/uploads/images/a.jpg", "/static/uploads/images/b.jpg"}, product.Images)

	var stats models.SellerStats
	require.NoError(t, db.Where("seller_id = ?", seller.ID).First(&stats).Error)
	assert.EqualValues(t, 1, stats.TotalProducts)

	require.NoError(t, svc.DeleteProduct(product.ID, seller.ID))
	require.NoError(t, db.Where("seller_id = ?", seller.ID).First(&stats).Error)
	assert.Zero(t, stats.TotalProducts)

	// Deleting again floors at zero rather than going negative.
	err = svc.DeleteProduct(product.ID, seller.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	retired := createCategory(t, db, "Retired")
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	for _, categoryID := range []int64{9999, retired.ID} {
		_, err := svc.CreateProduct(seller.ID, &CreateProductRequest{
			Name:        "Denim Jacket",
			Description: "Barely worn",
			Price:       100.00,
			CategoryID:  categoryID,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	}

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	other := createApprovedSeller(t, db, "Retro Finds")
	category := createCategory(t, db, "Clothing")
	product := createProduct(t, db, seller.ID, category.ID, "Denim Jacket", 100.00, 5)

	newPrice := 120.00
	newStock := 2
	updated, err := svc.UpdateProduct(product.ID, seller.ID, &ProductPatch{
		Price:         &newPrice,
		StockQuantity: &newStock,
	})
	require.NoError(t, err)
	assert.InDelta(t, 120.00, updated.Price, 0.001)
	assert.Equal(t, 2, updated.StockQuantity)
	assert.Equal(t, "Denim Jacket", updated.Name) // untouched

	// An empty patch is an error, not a silent no-op.
	_, err = svc.UpdateProduct(product.ID, seller.ID, &ProductPatch{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	// Another seller cannot touch the product.
	_, err = svc.UpdateProduct(product.ID, other.ID, &ProductPatch{Price: &newPrice})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSellerProductsIncludesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	seller := createApprovedSeller(t, db, "Thrift Traders")
	category := createCategory(t, db, "Clothing")
	createProduct(t, db, seller.ID, category.ID, "Denim Jacket", 100.00, 5)
	inactive := createProduct(t, db, seller.ID, category.ID, "Retired Jacket", 80.00, 5)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	products, err := svc.SellerProducts(seller.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	createCategory(t, db, "Shoes")
	createCategory(t, db, "Clothing")
	retired := createCategory(t, db, "Retired")
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Clothing", categories[0].Name)
	assert.Equal(t, "Shoes", categories[1].Name)
}
