// internal/services/session_service.go
package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

// SessionService is the server-side session store. Tokens are opaque
// 32-byte random values; lifetime is a fixed TTL from issuance with no
// sliding renewal.
type SessionService struct {
	db  *gorm.DB
	ttl time.Duration
}

// Identity is the request-scoped identity resolved from a session.
// Exactly one of UserID or SellerID is non-nil.
type Identity struct {
	UserID   *int64
	SellerID *int64
}

func (i Identity) IsBuyer() bool  { return i.UserID != nil }
func (i Identity) IsSeller() bool { return i.SellerID != nil }

func NewSessionService(db *gorm.DB, cfg config.SessionConfig) *SessionService {
	return &SessionService{
		db:  db,
		ttl: time.Duration(cfg.TTLHours) * time.Hour,
	}
}

// IssueBuyer replaces any existing sessions for the buyer and returns a
// fresh token.
func (s *SessionService) IssueBuyer(userID int64) (string, error) {
	return s.issue(&userID, nil)
}

// IssueSeller replaces any existing sessions for the seller and returns
// a fresh token.
func (s *SessionService) IssueSeller(sellerID int64) (string, error) {
	return s.issue(nil, &sellerID)
}

func (s *SessionService) issue(userID, sellerID *int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		SellerID:  sellerID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Prior session state is discarded on login.
		if userID != nil {
			if err := tx.Where("user_id = ?", *userID).Delete(&models.Session{}).Error; err != nil {
				return err
			}
		}
		if sellerID != nil {
			if err := tx.Where("seller_id = ?", *sellerID).Delete(&models.Session{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// Resolve returns the identity bound to the token, or ErrSessionNotFound
// for unknown and expired tokens. Expired rows are reaped lazily.
func (s *SessionService) Resolve(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session models.Session
	if err := s.db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if session.Expired(time.Now()) {
		s.db.Delete(&session)
		return nil, ErrSessionNotFound
	}

	return &Identity{UserID: session.UserID, SellerID: session.SellerID}, nil
}

// Revoke removes the session; revoking an unknown token is a no-op.
func (s *SessionService) Revoke(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Where("token = ?", token).Delete(&models.Session{}).Error
}

// PurgeExpired deletes expired sessions; intended for a periodic sweep.
func (s *SessionService) PurgeExpired() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
