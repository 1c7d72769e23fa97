// internal/services/contact_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

type ContactService struct {
	db *gorm.DB
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required"`
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Submit stores a contact form message for later review.
func (s *ContactService) Submit(req *ContactRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	msg := &models.Message{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Body:        req.Message,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"email":      req.Email,
	}).Info("Contact message received")
	return nil
}
