package bookingRepo

import (
	"context"
	"errors"
	"time"

	"gymslot/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrNoTransition is returned when a conditional status update matched no
// document, meaning the booking is no longer in the expected state.
var ErrNoTransition = errors.New("booking not in expected state")

// BookingRepository defines data access for booking records. All mutating
// transitions are conditional updates keyed on the current status, so each
// booking has a single effective writer per step.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, b *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser returns all bookings made by the given user, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// SetPaymentOrder records the gateway order id on a pending booking that
	// does not yet have one.
	SetPaymentOrder(ctx context.Context, id, orderID string) (*models.Booking, error)
	// ConfirmPayment flips pending -> confirmed, sets the payment reference
	// and the QR token in one update. Fails with ErrNoTransition if the
	// booking is not pending or already carries a payment reference.
	ConfirmPayment(ctx context.Context, id, paymentRef, qrToken string, expiry time.Time) (*models.Booking, error)
	// Cancel flips pending or confirmed -> cancelled and clears the QR token.
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	// CheckIn flips confirmed -> checked_in and records the check-in time.
	CheckIn(ctx context.Context, id string, at time.Time) (*models.Booking, error)
	// ReplaceQRToken swaps in a fresh token on a still-confirmed booking.
	ReplaceQRToken(ctx context.Context, id, token string, expiry time.Time) (*models.Booking, error)
	// ExpirePendingBefore cancels pending bookings created before the cutoff.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// CompleteCheckedInBefore completes checked-in bookings whose session date
	// is before the cutoff.
	CompleteCheckedInBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
