// internal/handlers/misc.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzansithrift/thriftstore-backend/internal/services"
)

type MiscHandler struct {
	contactService *services.ContactService
}

func NewMiscHandler(contactService *services.ContactService) *MiscHandler {
	return &MiscHandler{contactService: contactService}
}

// POST /api/contact
func (h *MiscHandler) Contact(c *gin.Context) {
	var req services.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	if err := h.contactService.Submit(&req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message received"})
}
