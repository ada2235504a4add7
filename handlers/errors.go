package handlers

import (
	"net/http"

	"gymslot/services/booking"
	"gymslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusForCode maps booking core error codes to HTTP statuses.
var statusForCode = map[string]int{
	booking.CodeValidation:             http.StatusBadRequest,
	booking.CodeDiscountNotApplicable:  http.StatusUnprocessableEntity,
	booking.CodeCorporateCodeInvalid:   http.StatusUnprocessableEntity,
	booking.CodeCorporateCodeExpired:   http.StatusUnprocessableEntity,
	booking.CodeCorporateCodeExhausted: http.StatusUnprocessableEntity,
	booking.CodePaymentGateway:         http.StatusBadGateway,
	booking.CodePaymentNotVerified:     http.StatusPaymentRequired,
	booking.CodeInvalidStateTransition: http.StatusConflict,
	booking.CodeQRCodeExpired:          http.StatusGone,
	booking.CodeTokenMismatch:          http.StatusUnauthorized,
	booking.CodeBookingNotFound:        http.StatusNotFound,
}

// respondError translates a service error into a JSON response. Errors
// without a booking code are internal faults.
func respondError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	if code == "" {
		utils.GetLogger().Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
		})
		return
	}
	status, ok := statusForCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, utils.ErrorResponse{Message: err.Error(), Code: code})
}
