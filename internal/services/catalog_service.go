// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategoryID *int64
	SellerID   *int64
	Search     string
	Featured   bool
	Limit      int
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	Description   string   `json:"description" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice float64  `json:"original_price,omitempty"`
	CategoryID    int64    `json:"category_id" validate:"required"`
	Conditions    string   `json:"conditions,omitempty"`
	Size          string   `json:"size,omitempty"`
	Color         string   `json:"color,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Material      string   `json:"material,omitempty"`
	StockQuantity int      `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	Images        []string `json:"images,omitempty"`
	Videos        []string `json:"videos,omitempty"`
}

// ProductPatch is a set of optional fields for a partial update. Nil
// means "leave unchanged"; an entirely nil patch is rejected.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	Conditions    *string  `json:"conditions,omitempty"`
	Size          *string  `json:"size,omitempty"`
	Color         *string  `json:"color,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Material      *string  `json:"material,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	Images        []string `json:"images,omitempty"`
	Videos        []string `json:"videos,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
}

// updates translates the patch into parameterized column assignments.
func (p *ProductPatch) updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.OriginalPrice != nil {
		updates["original_price"] = *p.OriginalPrice
	}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.Conditions != nil {
		updates["conditions"] = *p.Conditions
	}
	if p.Size != nil {
		updates["size"] = *p.Size
	}
	if p.Color != nil {
		updates["color"] = *p.Color
	}
	if p.Brand != nil {
		updates["brand"] = *p.Brand
	}
	if p.Material != nil {
		updates["material"] = *p.Material
	}
	if p.StockQuantity != nil {
		updates["stock_quantity"] = *p.StockQuantity
	}
	if p.Images != nil {
		updates["images"] = models.StringList(p.Images)
	}
	if p.Videos != nil {
		updates["videos"] = models.StringList(p.Videos)
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.Featured != nil {
		updates["featured"] = *p.Featured
	}
	return updates
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// storefrontQuery applies the public catalog constraints (active
// products from approved sellers) plus the caller's filters. The
// featured flag switches the sort to view-count-descending and ignores
// the limit filter.
func (s *CatalogService) storefrontQuery(filters ProductFilters) *gorm.DB {
	query := s.db.Model(&models.Product{}).
		Joins("JOIN sellers ON sellers.id = products.seller_id").
		Where("products.is_active = ? AND sellers.status = ?", true, models.SellerStatusApproved).
		Preload("Seller").Preload("Category")

	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}

	if filters.SellerID != nil {
		query = query.Where("products.seller_id = ?", *filters.SellerID)
	}

	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query = query.Where(
			"products.name LIKE ? OR products.description LIKE ? OR products.brand LIKE ?",
			term, term, term,
		)
	}

	if filters.Featured {
		query = query.Where("products.featured = ?", true).
			Order("products.view_count DESC, products.created_at DESC")
	} else {
		query = query.Order("products.created_at DESC")
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
	}

	return query
}

// ListProducts returns active products from approved sellers.
func (s *CatalogService) ListProducts(filters ProductFilters) ([]models.Product, error) {
	var products []models.Product
	if err := s.storefrontQuery(filters).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// ListProductsWithMedia is ListProducts plus each product's media rows
// ordered for display: primary first, then sort order.
func (s *CatalogService) ListProductsWithMedia(filters ProductFilters) ([]models.Product, error) {
	query := s.storefrontQuery(filters).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		})

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// GetProduct increments the view count as a side effect of the read.
// The increment and the read are not required to observe each other
// under concurrent access.
func (s *CatalogService) GetProduct(id int64) (*models.Product, error) {
	s.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))

	var product models.Product
	err := s.db.Preload("Seller").Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

// SellerProducts lists everything the seller owns, active or not.
func (s *CatalogService) SellerProducts(sellerID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("seller_id = ?", sellerID).
		Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(sellerID int64, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	err := s.db.Where("id = ? AND is_active = ?", req.CategoryID, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	conditions := req.Conditions
	if conditions == "" {
		conditions = "good"
	}
	stock := req.StockQuantity
	if stock == 0 {
		stock = 1
	}

	product := &models.Product{
		SellerID:      sellerID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Conditions:    conditions,
		Size:          req.Size,
		Color:         req.Color,
		Brand:         req.Brand,
		Material:      req.Material,
		StockQuantity: stock,
		IsActive:      true,
		Images:        models.StringList(req.Images),
		Videos:        models.StringList(req.Videos),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return tx.Model(&models.SellerStats{}).
			Where("seller_id = ?", sellerID).
			UpdateColumn("total_products", gorm.Expr("total_products + 1")).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"seller_id":  sellerID,
	}).Info("Product created")

	return product, nil
}

func (s *CatalogService) UpdateProduct(productID, sellerID int64, patch *ProductPatch) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("id = ? AND seller_id = ?", productID, sellerID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := patch.updates()
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := s.db.Preload("Category").First(&product, productID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (s *CatalogService) DeleteProduct(productID, sellerID int64) error {
	var product models.Product
	err := s.db.Where("id = ? AND seller_id = ?", productID, sellerID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&product).Error; err != nil {
			return err
		}
		// Floor the counter at zero; the counter never goes negative.
		return tx.Model(&models.SellerStats{}).
			Where("seller_id = ? AND total_products > 0", sellerID).
			UpdateColumn("total_products", gorm.Expr("total_products - 1")).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"seller_id":  sellerID,
	}).Info("Product deleted")

	return nil
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("is_active = ?", true).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}
