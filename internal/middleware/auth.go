// internal/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

const (
	// IdentityKey holds the resolved *services.Identity in the gin
	// context once a session cookie has been validated.
	IdentityKey = "identity"
	// SessionTokenKey holds the raw session token for logout.
	SessionTokenKey = "session_token"
)

// AuthMiddleware resolves the session cookie into an identity. It
// carries no opinion about buyer vs seller; combine with BuyerRequired
// or SellerRequired per route group.
type AuthMiddleware struct {
	sessions   *services.SessionService
	cookieName string
}

func NewAuthMiddleware(sessions *services.SessionService, cfg config.SessionConfig) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookieName: cfg.CookieName}
}

// Required rejects requests without a valid session.
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		identity, err := m.sessions.Resolve(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Session expired or invalid")
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(SessionTokenKey, token)
		c.Next()
	}
}

// BuyerRequired allows only buyer sessions past this point.
func (m *AuthMiddleware) BuyerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := MustIdentity(c)
		if !identity.IsBuyer() {
			utils.UnauthorizedResponse(c, "Buyer account required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SellerRequired allows only seller sessions past this point.
func (m *AuthMiddleware) SellerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := MustIdentity(c)
		if !identity.IsSeller() {
			utils.UnauthorizedResponse(c, "Seller account required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// MustIdentity fetches the identity set by Required. Only valid on
// routes behind that middleware.
func MustIdentity(c *gin.Context) *services.Identity {
	return c.MustGet(IdentityKey).(*services.Identity)
}

// GetIdentity fetches the identity if one was resolved.
func GetIdentity(c *gin.Context) (*services.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	return v.(*services.Identity), true
}
