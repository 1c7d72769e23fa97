// internal/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
	mediaService   *services.MediaService
}

func NewProductHandler(catalogService *services.CatalogService, mediaService *services.MediaService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, mediaService: mediaService}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequestResponse(c, "Invalid "+param)
		return 0, false
	}
	return id, true
}

func parseFilters(c *gin.Context) services.ProductFilters {
	var filters services.ProductFilters

	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CategoryID = &id
		}
	}
	if v := c.Query("seller_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.SellerID = &id
		}
	}
	filters.Search = c.Query("search")
	filters.Featured = c.Query("featured") == "true"
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	return filters
}

// GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(parseFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products-with-media
func (h *ProductHandler) ListProductsWithMedia(c *gin.Context) {
	products, err := h.catalogService.ListProductsWithMedia(parseFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/seller/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(*identity.SellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// POST /api/products-with-media
//
// Multipart variant of CreateProduct: product fields arrive as form
// values and media files under "files". The first uploaded file
// becomes the primary image.
func (h *ProductHandler) CreateProductWithMedia(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid price")
		return
	}
	categoryID, err := strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category_id")
		return
	}

	req := services.CreateProductRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		CategoryID:  categoryID,
		Conditions:  c.PostForm("conditions"),
		Size:        c.PostForm("size"),
		Color:       c.PostForm("color"),
		Brand:       c.PostForm("brand"),
		Material:    c.PostForm("material"),
	}
	if v := c.PostForm("original_price"); v != "" {
		if op, err := strconv.ParseFloat(v, 64); err == nil {
			req.OriginalPrice = op
		}
	}
	if v := c.PostForm("stock_quantity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.StockQuantity = n
		}
	}

	product, err := h.catalogService.CreateProduct(*identity.SellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondBindError(c, err, "Invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}

	media := []models.ProductMedia{}
	if len(files) > 0 {
		media, err = h.mediaService.AttachFiles(product.ID, *identity.SellerID, files, true)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"product": product, "media": media})
}

// GET /api/seller/products
func (h *ProductHandler) SellerProducts(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	products, err := h.catalogService.SellerProducts(*identity.SellerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// PUT /api/seller/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch services.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(id, *identity.SellerID, &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /api/seller/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(id, *identity.SellerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GET /api/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
