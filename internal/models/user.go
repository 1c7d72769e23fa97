// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is a buyer account.
type User struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	FullName     string `json:"full_name" gorm:"size:255;not null"`
	Phone        string `json:"phone" gorm:"size:50"`
	AddressLine1 string `json:"address_line1" gorm:"size:255"`
	City         string `json:"city" gorm:"size:100"`
	Province     string `json:"province" gorm:"size:100"`

	// Relationships
	Orders    []Order    `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	CartItems []CartItem `json:"cart_items,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Seller lists and sells products, subject to an approval status.
type Seller struct {
	BaseModel
	Email        string       `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string       `json:"-" gorm:"size:255;not null"`
	BusinessName string       `json:"business_name" gorm:"uniqueIndex;size:255;not null"`
	BusinessType string       `json:"business_type" gorm:"size:50;default:'individual'"`
	Phone        string       `json:"phone" gorm:"size:50"`
	Rating       float64      `json:"rating" gorm:"type:decimal(3,2);default:0"`
	TotalSales   int64        `json:"total_sales" gorm:"default:0"`
	Status       SellerStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Products []Product    `json:"products,omitempty" gorm:"foreignKey:SellerID"`
	Stats    *SellerStats `json:"stats,omitempty" gorm:"foreignKey:SellerID"`
}

func (s *Seller) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hashedPassword)
	return nil
}

func (s *Seller) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
}
