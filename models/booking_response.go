package models

import "time"

// CreateBookingResponse is returned by the booking creation endpoint. For
// pending bookings the gateway order id is echoed so the client can open the
// payment UI; fully corporate-funded bookings skip the gateway and confirm
// immediately.
type CreateBookingResponse struct {
	Booking        *Booking `json:"booking"`
	PaymentOrderID string   `json:"payment_order_id,omitempty"`
	AmountDue      int64    `json:"amount_due"`
	Currency       string   `json:"currency,omitempty"`
}

// QRCodeResponse carries the check-in credential and its rendered image.
type QRCodeResponse struct {
	Token  string    `json:"token"`
	Image  string    `json:"image"` // base64-encoded PNG
	Expiry time.Time `json:"expiry"`
}
