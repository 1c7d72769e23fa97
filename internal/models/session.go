// internal/models/session.go
package models

import "time"

// Session is a server-side session keyed by an opaque token. Exactly
// one of UserID or SellerID is set; the two namespaces never share a
// session. TTL is fixed at issuance, no sliding renewal.
type Session struct {
	BaseModel
	Token     string    `json:"-" gorm:"size:64;uniqueIndex;not null"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"index"`
	SellerID  *int64    `json:"seller_id,omitempty" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
