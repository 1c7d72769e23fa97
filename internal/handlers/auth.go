// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/config"
	"github.com/mzansithrift/thriftstore-backend/internal/middleware"
	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	sessionCfg  config.SessionConfig
}

func NewAuthHandler(authService *services.AuthService, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionCfg:  sessionCfg,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := h.sessionCfg.TTLHours * 3600
	c.SetCookie(h.sessionCfg.CookieName, token, maxAge, "/", "", h.sessionCfg.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.Secure, true)
}

// POST /api/register
func (h *AuthHandler) RegisterBuyer(c *gin.Context) {
	var req services.RegisterBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	resp, err := h.authService.RegisterBuyer(&req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    resp.User,
	})
}

// POST /api/seller/register
func (h *AuthHandler) RegisterSeller(c *gin.Context) {
	var req services.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	resp, err := h.authService.RegisterSeller(&req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Seller registration successful",
		"seller":  resp.Seller,
	})
}

// POST /api/login
func (h *AuthHandler) LoginBuyer(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	resp, err := h.authService.LoginBuyer(&req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    resp.User,
	})
}

// POST /api/seller/login
func (h *AuthHandler) LoginSeller(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	resp, err := h.authService.LoginSeller(&req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"seller":  resp.Seller,
	})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := middleware.MustIdentity(c)
	token := c.MustGet(middleware.SessionTokenKey).(string)

	if err := h.authService.Logout(token, identity, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	identity := middleware.MustIdentity(c)

	profile, kind, err := h.authService.CurrentProfile(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_type": kind,
		kind:           profile,
	})
}
