package booking

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	bookingRepo "gymslot/database/repository/booking"
	"gymslot/models"

	"go.uber.org/zap"
)

// CheckInValidator validates a presented QR token at the point of physical
// entry and drives the confirmed -> checked_in transition.
type CheckInValidator struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func (v *CheckInValidator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now().UTC()
}

// CheckIn consumes the token. The final conditional update decides races with
// cancellation or a concurrent check-in: the loser gets an invalid-transition
// error, never a silent retry.
func (v *CheckInValidator) CheckIn(ctx context.Context, bookingID, token string) (*models.Booking, error) {
	b, err := v.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewError(CodeBookingNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}

	if b.Status != models.StatusConfirmed {
		return nil, NewError(CodeInvalidStateTransition, "cannot check in a %s booking", b.Status)
	}
	if b.QRTokenExpiry == nil || v.now().After(*b.QRTokenExpiry) {
		return nil, NewError(CodeQRCodeExpired, "QR token expired")
	}
	if subtle.ConstantTimeCompare([]byte(b.QRToken), []byte(token)) != 1 {
		return nil, NewError(CodeTokenMismatch, "presented token does not match")
	}

	checkedIn, err := v.Repo.CheckIn(ctx, bookingID, v.now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoTransition) {
			return nil, NewError(CodeInvalidStateTransition, "booking %s is no longer confirmed", bookingID)
		}
		return nil, err
	}

	v.Logger.Info("booking checked in",
		zap.String("bookingID", bookingID), zap.Time("checkInTime", *checkedIn.CheckInTime))
	return checkedIn, nil
}
