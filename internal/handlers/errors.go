// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mzansithrift/thriftstore-backend/internal/services"
	"github.com/mzansithrift/thriftstore-backend/internal/utils"
)

// respondError maps service-layer errors onto HTTP statuses. Unknown
// errors become an opaque 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		utils.BadRequestResponse(c, stockErr.Error())
	case errors.Is(err, services.ErrDuplicateIdentity):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSessionNotFound):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrMediaNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrCartItemNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrAmountMismatch),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrInvalidMediaType):
		utils.BadRequestResponse(c, err.Error())
	case isValidationError(err):
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(fieldErrs))
			return
		}
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, "")
	}
}

func isValidationError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "validation failed")
}

// respondBindError separates an oversized body, which the body-size cap
// surfaces through the bind call, from a merely malformed one.
func respondBindError(c *gin.Context, err error, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	utils.BadRequestResponse(c, message)
}
