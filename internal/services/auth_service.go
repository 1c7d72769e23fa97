// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

type AuthService struct {
	db       *gorm.DB
	sessions *SessionService
	activity *ActivityService
}

type RegisterBuyerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
}

type RegisterSellerRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Phone        string `json:"phone" validate:"required"`
	BusinessType string `json:"business_type,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type BuyerAuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"-"`
}

type SellerAuthResponse struct {
	Seller *models.Seller `json:"seller"`
	Token  string         `json:"-"`
}

func NewAuthService(db *gorm.DB, sessions *SessionService, activity *ActivityService) *AuthService {
	return &AuthService{
		db:       db,
		sessions: sessions,
		activity: activity,
	}
}

func (s *AuthService) RegisterBuyer(req *RegisterBuyerRequest, ip string) (*BuyerAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.sessions.IssueBuyer(user.ID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(user.ID, models.ActorTypeBuyer, "user_registered", ip)
	logrus.WithField("email", user.Email).Info("New buyer registered")

	return &BuyerAuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) RegisterSeller(req *RegisterSellerRequest, ip string) (*SellerAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Seller
	err := s.db.Where("email = ? OR business_name = ?", req.Email, req.BusinessName).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	businessType := req.BusinessType
	if businessType == "" {
		businessType = "individual"
	}

	seller := &models.Seller{
		Email:        req.Email,
		BusinessName: req.BusinessName,
		BusinessType: businessType,
		Phone:        req.Phone,
		Status:       models.SellerStatusPending,
	}
	if err := seller.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The stats row is created together with the account so dashboard
	// counters never start from a missing row.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(seller).Error; err != nil {
			return err
		}
		return tx.Create(&models.SellerStats{SellerID: seller.ID}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create seller: %w", err)
	}

	token, err := s.sessions.IssueSeller(seller.ID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(seller.ID, models.ActorTypeSeller, "seller_registered", ip)
	logrus.WithField("business_name", seller.BusinessName).Info("New seller registered")

	return &SellerAuthResponse{Seller: seller, Token: token}, nil
}

func (s *AuthService) LoginBuyer(req *LoginRequest, ip string) (*BuyerAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password; no account enumeration.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.IssueBuyer(user.ID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(user.ID, models.ActorTypeBuyer, "user_login", ip)

	return &BuyerAuthResponse{User: &user, Token: token}, nil
}

func (s *AuthService) LoginSeller(req *LoginRequest, ip string) (*SellerAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var seller models.Seller
	if err := s.db.Where("email = ?", req.Email).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := seller.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.IssueSeller(seller.ID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(seller.ID, models.ActorTypeSeller, "seller_login", ip)

	return &SellerAuthResponse{Seller: &seller, Token: token}, nil
}

func (s *AuthService) Logout(token string, identity *Identity, ip string) error {
	if identity != nil {
		if identity.IsBuyer() {
			s.activity.Record(*identity.UserID, models.ActorTypeBuyer, "user_logout", ip)
		} else if identity.IsSeller() {
			s.activity.Record(*identity.SellerID, models.ActorTypeSeller, "seller_logout", ip)
		}
	}
	return s.sessions.Revoke(token)
}

// CurrentProfile returns the public profile for the session identity.
func (s *AuthService) CurrentProfile(identity *Identity) (interface{}, string, error) {
	switch {
	case identity.IsSeller():
		var seller models.Seller
		if err := s.db.First(&seller, *identity.SellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrSessionNotFound
			}
			return nil, "", fmt.Errorf("database error: %w", err)
		}
		return &seller, "seller", nil
	case identity.IsBuyer():
		var user models.User
		if err := s.db.First(&user, *identity.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrSessionNotFound
			}
			return nil, "", fmt.Errorf("database error: %w", err)
		}
		return &user, "buyer", nil
	}
	return nil, "", ErrSessionNotFound
}
