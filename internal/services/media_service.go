// internal/services/media_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

// MediaService manages product media attachments. All mutations are
// scoped to the seller owning the parent product.
type MediaService struct {
	db      *gorm.DB
	storage *StorageService
}

// MediaPatch is a set of optional fields for a partial media update.
type MediaPatch struct {
	AltText   *string `json:"alt_text,omitempty"`
	Caption   *string `json:"caption,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsPrimary *bool   `json:"is_primary,omitempty"`
}

func NewMediaService(db *gorm.DB, storage *StorageService) *MediaService {
	return &MediaService{db: db, storage: storage}
}

func (s *MediaService) ownedProduct(productID, sellerID int64) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("id = ? AND seller_id = ?", productID, sellerID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *MediaService) ListMedia(productID, sellerID int64) ([]models.ProductMedia, error) {
	if _, err := s.ownedProduct(productID, sellerID); err != nil {
		return nil, err
	}

	var media []models.ProductMedia
	err := s.db.Where("product_id = ?", productID).
		Order("sort_order, created_at").
		Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	return media, nil
}

// AttachFiles stores each uploaded file and creates one media record
// per file. Files with disallowed extensions are skipped. When
// markFirstPrimary is set the first stored image becomes the primary.
func (s *MediaService) AttachFiles(productID, sellerID int64, files []*multipart.FileHeader, markFirstPrimary bool) ([]models.ProductMedia, error) {
	if _, err := s.ownedProduct(productID, sellerID); err != nil {
		return nil, err
	}

	// Never introduce a second primary alongside an existing one.
	var existingPrimary int64
	err := s.db.Model(&models.ProductMedia{}).
		Where("product_id = ? AND is_primary = ?", productID, true).
		Count(&existingPrimary).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var attached []models.ProductMedia
	primarySet := existingPrimary > 0

	for i, header := range files {
		if header.Filename == "" {
			continue
		}

		kind, subdir, _, err := ClassifyFile(header.Filename)
		if err != nil {
			continue // skip invalid files, matching the multi-upload contract
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}

		result, err := s.storage.SaveFile(file, header, subdir)
		file.Close()
		if err != nil {
			return nil, err
		}

		isPrimary := markFirstPrimary && !primarySet && kind == "image"
		if isPrimary {
			primarySet = true
		}

		media := models.ProductMedia{
			ProductID:    productID,
			MediaType:    models.MediaType(kind),
			FileURL:      result.URL,
			FileName:     result.FileName,
			FileSize:     result.Size,
			MimeType:     result.MimeType,
			SortOrder:    i,
			IsPrimary:    isPrimary,
			UploaderID:   sellerID,
			UploaderType: models.ActorTypeSeller,
		}
		if err := s.db.Create(&media).Error; err != nil {
			return nil, fmt.Errorf("failed to create media record: %w", err)
		}

		attached = append(attached, media)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"count":      len(attached),
	}).Info("Media uploaded")

	return attached, nil
}

// UpdateMedia applies a partial update. Setting is_primary clears the
// flag on all siblings in the same transaction, so at most one item per
// product is primary after any sequence of updates.
func (s *MediaService) UpdateMedia(productID, mediaID, sellerID int64, patch *MediaPatch) error {
	if _, err := s.ownedProduct(productID, sellerID); err != nil {
		return err
	}

	var media models.ProductMedia
	err := s.db.Where("id = ? AND product_id = ?", mediaID, productID).
		First(&media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if patch.AltText != nil {
		updates["alt_text"] = *patch.AltText
	}
	if patch.Caption != nil {
		updates["caption"] = *patch.Caption
	}
	if patch.SortOrder != nil {
		updates["sort_order"] = *patch.SortOrder
	}
	if patch.IsPrimary != nil {
		updates["is_primary"] = *patch.IsPrimary
	}
	if len(updates) == 0 {
		return ErrNoFieldsToUpdate
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if patch.IsPrimary != nil && *patch.IsPrimary {
			if err := tx.Model(&models.ProductMedia{}).
				Where("product_id = ?", productID).
				UpdateColumn("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&media).Updates(updates).Error
	})
}

// DeleteMedia removes the record and then the stored file. A failed
// file delete is logged, not surfaced; the record deletion stands.
func (s *MediaService) DeleteMedia(productID, mediaID, sellerID int64) error {
	if _, err := s.ownedProduct(productID, sellerID); err != nil {
		return err
	}

	var media models.ProductMedia
	err := s.db.Where("id = ? AND product_id = ?", mediaID, productID).
		First(&media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.storage.DeleteFile(s.storage.KeyFromURL(media.FileURL)); err != nil {
		logrus.WithError(err).WithField("media_id", mediaID).Warn("Best-effort file delete failed")
	}

	if err := s.db.Delete(&media).Error; err != nil {
		return fmt.Errorf("failed to delete media record: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"media_id":   mediaID,
		"product_id": productID,
	}).Info("Media deleted")

	return nil
}
