package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the booking core. Handlers map these to HTTP status.
const (
	CodeValidation             = "validationError"
	CodeDiscountNotApplicable  = "discountNotApplicable"
	CodeCorporateCodeInvalid   = "corporateCodeInvalid"
	CodeCorporateCodeExpired   = "corporateCodeExpired"
	CodeCorporateCodeExhausted = "corporateCodeExhausted"
	CodePaymentGateway         = "paymentGatewayError"
	CodePaymentNotVerified     = "paymentNotVerified"
	CodeInvalidStateTransition = "invalidStateTransition"
	CodeQRCodeExpired          = "qrCodeExpired"
	CodeTokenMismatch          = "tokenMismatch"
	CodeBookingNotFound        = "bookingNotFound"
)

// Error is the typed error carried across the booking core.
type Error struct {
	Code    string
	Message string
	Field   string // Set for field-level validation failures
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports a structurally or semantically invalid input field.
func NewValidationError(field, msg string) error {
	return &Error{Code: CodeValidation, Field: field, Message: msg}
}

// NewError builds a typed error with the given code.
func NewError(code, format string, args ...interface{}) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the booking error code, or "" for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
