package models

// PaymentCallback is the fixed-shape payment completion callback submitted by
// the client after paying out-of-band. All fields are mandatory.
type PaymentCallback struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
