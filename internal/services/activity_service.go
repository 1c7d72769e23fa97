// internal/services/activity_service.go
package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

// ActivityService appends audit rows. Record is best-effort outside a
// transaction; RecordTx participates in the caller's transaction so the
// audit row commits or rolls back with the event it describes.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) Record(actorID int64, actorType models.ActorType, action, ip string) {
	if err := s.RecordTx(s.db, actorID, actorType, action, ip); err != nil {
		logrus.WithError(err).WithField("action", action).Error("Failed to write activity log")
	}
}

func (s *ActivityService) RecordTx(tx *gorm.DB, actorID int64, actorType models.ActorType, action, ip string) error {
	entry := &models.ActivityLog{
		ActorID:   actorID,
		ActorType: actorType,
		Action:    action,
		IPAddress: ip,
	}
	return tx.Create(entry).Error
}
