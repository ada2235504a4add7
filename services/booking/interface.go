package booking

import (
	"context"

	"gymslot/models"
)

// BookingService is the booking lifecycle orchestrator exposed to the API
// layer. It owns booking records and drives every status transition.
type BookingService interface {
	// CreateBooking turns a validated booking intent into a priced booking:
	// pending with a gateway order when money is owed, confirmed immediately
	// on the fully corporate-funded path.
	CreateBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.CreateBookingResponse, error)
	// RetryPaymentOrder retries gateway order creation for a pending booking
	// left order-less by a transient gateway failure.
	RetryPaymentOrder(ctx context.Context, userID, bookingID string) (*models.CreateBookingResponse, error)
	// ConfirmPayment verifies the client's payment callback and flips the
	// booking to confirmed. Idempotent for a repeated identical callback.
	ConfirmPayment(ctx context.Context, userID, bookingID string, cb models.PaymentCallback) (*models.Booking, error)
	// CancelBooking cancels a pending or confirmed booking.
	CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	// GetQRCode returns the booking's check-in credential with a rendered
	// image, minting a replacement only if the stored token expired.
	GetQRCode(ctx context.Context, userID, bookingID string) (*models.QRCodeResponse, error)
	// CheckIn consumes a QR token at physical entry.
	CheckIn(ctx context.Context, bookingID, token string) (*models.Booking, error)
	// ListBookings returns the user's bookings from authoritative state.
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
