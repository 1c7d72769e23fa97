// internal/handlers/media.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

type MediaHandler struct {
	mediaService   *services.MediaService
	storageService *services.StorageService
}

func NewMediaHandler(mediaService *services.MediaService, storageService *services.StorageService) *MediaHandler {
	return &MediaHandler{
		mediaService:   mediaService,
		storageService: storageService,
	}
}

// GET /api/products/:id/media
func (h *MediaHandler) ListMedia(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.ListMedia(productID, *identity.SellerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": media})
}

// POST /api/products/:id/media
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	productID, ok := parseID(c, "id")
	if !ok {
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
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No files provided")
		return
	}

	markFirstPrimary := c.PostForm("set_primary") != "false"

	media, err := h.mediaService.AttachFiles(productID, *identity.SellerID, files, markFirstPrimary)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"media": media})
}

// PUT /api/products/:id/media/:media_id
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	mediaID, ok := parseID(c, "media_id")
	if !ok {
		return
	}

	var patch services.MediaPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	if err := h.mediaService.UpdateMedia(productID, mediaID, *identity.SellerID, &patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media updated"})
}

// DELETE /api/products/:id/media/:media_id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	mediaID, ok := parseID(c, "media_id")
	if !ok {
		return
	}

	if err := h.mediaService.DeleteMedia(productID, mediaID, *identity.SellerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media deleted"})
}

// POST /api/upload-media
//
// Stores a single file and returns its URL without attaching it to a
// product; used by the product form before the product exists.
func (h *MediaHandler) UploadStandalone(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}

	_, subdir, _, err := services.ClassifyFile(fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Could not read file")
		return
	}
	defer file.Close()

	result, err := h.storageService.SaveFile(file, fileHeader, subdir)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
