package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// errorResponse — единый формат тела ошибки.
type errorResponse struct {
	Error string `json:"error"`
}

var validationErrs = []error{
	domain.ErrItemsRequired,
	domain.ErrQuantityInvalid,
	domain.ErrInvalidOrderStatus,
	domain.ErrCurrencyMismatch,
	domain.ErrCustomerRequired,
	domain.ErrCurrencyRequired,
	domain.ErrAmountNegative,
	domain.ErrItemPriceInvalid,
	domain.ErrPriceNegative,
	domain.ErrProductNameRequired,
	domain.ErrInvalidProductStatus,
	domain.ErrProductInUse,
	domain.ErrUserHasOrders,
	domain.ErrUsernameTaken,
	domain.ErrEmailTaken,
	domain.ErrUsernameRequired,
	domain.ErrEmailRequired,
	domain.ErrPasswordRequired,
	domain.ErrInvalidRole,
	domain.ErrPhotoEmpty,
	domain.ErrPhotoTooLarge,
	domain.ErrPhotoUnsupportedType,
	domain.ErrIdempotencyKeyRequired,
}

// respondError переводит доменную ошибку в HTTP-статус. Непредвиденные
// ошибки логируются и отдаются наружу с непрозрачным сообщением.
func respondError(c *gin.Context, logger *log.Entry, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUserInactive):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case domain.IsVersionConflict(err),
		errors.Is(err, domain.ErrIdempotencyHashMismatch):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func isValidationError(err error) bool {
	for _, verr := range validationErrs {
		if errors.Is(err, verr) {
			return true
		}
	}
	return false
}
