package booking

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	bookingRepo "gymslot/database/repository/booking"
	"gymslot/models"
	"gymslot/services/payment"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService. Per-booking serialization
// relies on the repository's conditional updates: every transition is a
// compare-and-swap on the current status, so concurrent writers cannot both
// win.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Validator *RequestValidator
	Discounts *DiscountResolver
	CheckIns  *CheckInValidator
	Gateway   payment.Gateway
	QR        *QRIssuer
	Logger    *zap.Logger
	Currency  string
	Now       func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateBooking validates the request, resolves the discount, and either
// parks the booking as pending with a gateway order or, when the corporate
// waiver covers the full price, confirms it immediately with a QR token.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.CreateBookingResponse, error) {
	g, sessionDate, err := s.Validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:             uuid.New().String(),
		UserID:         userID,
		GymID:          g.ID,
		SessionDate:    sessionDate,
		BasePrice:      g.BasePrice,
		DiscountSource: models.DiscountNone,
		Status:         models.StatusPending,
		CreatedAt:      s.now(),
		UpdatedAt:      s.now(),
	}

	var grantToken string
	switch req.Discount.Source {
	case models.DiscountReward:
		quote, err := s.Discounts.ResolveReward(ctx, userID, req.Discount.PointsToUse, g.BasePrice)
		if err != nil {
			return nil, err
		}
		if !quote.CanApply {
			return nil, NewError(CodeDiscountNotApplicable, "%s", quote.Reason)
		}
		b.DiscountSource = models.DiscountReward
		b.DiscountAmount = quote.DiscountAmount
	case models.DiscountCorporate:
		quote, err := s.Discounts.ValidateCorporate(ctx, req.Discount.AccessCode, g.BasePrice)
		if err != nil {
			return nil, err
		}
		b.DiscountSource = models.DiscountCorporate
		b.DiscountAmount = quote.DiscountAmount
		b.CorporateCode = req.Discount.AccessCode
		grantToken = quote.GrantToken
	}
	b.FinalPrice = b.BasePrice - b.DiscountAmount

	// Nothing owed means nothing for the gateway to collect; a payment order
	// exists only when the final price is positive.
	if b.FinalPrice == 0 {
		switch b.DiscountSource {
		case models.DiscountCorporate:
			return s.confirmCorporate(ctx, b, grantToken)
		case models.DiscountReward:
			return s.confirmRewardFunded(ctx, b)
		}
	}
	return s.createPending(ctx, b)
}

// confirmCorporate consumes the corporate grant and persists the booking
// already confirmed, skipping the gateway entirely.
func (s *DefaultBookingService) confirmCorporate(ctx context.Context, b *models.Booking, grantToken string) (*models.CreateBookingResponse, error) {
	if _, err := s.Discounts.ConsumeCorporate(ctx, grantToken); err != nil {
		return nil, err
	}

	token, expiry, err := s.QR.Issue()
	if err != nil {
		return nil, err
	}
	b.Status = models.StatusConfirmed
	b.QRToken = token
	b.QRTokenExpiry = &expiry

	if err := s.Repo.Create(ctx, b); err != nil {
		// The session is already consumed; surface loudly for reconciliation.
		s.Logger.Error("booking persist failed after corporate consume",
			zap.String("bookingID", b.ID), zap.String("code", b.CorporateCode), zap.Error(err))
		return nil, err
	}

	s.Logger.Info("corporate booking confirmed",
		zap.String("bookingID", b.ID), zap.String("gymID", b.GymID))
	return &models.CreateBookingResponse{Booking: b, AmountDue: 0}, nil
}

// confirmRewardFunded confirms a booking whose reward discount covers the
// full price. The ledger is debited up front; the guarded debit loses cleanly
// if the balance dropped since the quote.
func (s *DefaultBookingService) confirmRewardFunded(ctx context.Context, b *models.Booking) (*models.CreateBookingResponse, error) {
	if err := s.Discounts.DebitReward(ctx, b.UserID, b.DiscountAmount); err != nil {
		return nil, err
	}

	token, expiry, err := s.QR.Issue()
	if err != nil {
		return nil, err
	}
	b.Status = models.StatusConfirmed
	b.QRToken = token
	b.QRTokenExpiry = &expiry

	if err := s.Repo.Create(ctx, b); err != nil {
		if refundErr := s.Discounts.RefundReward(ctx, b.UserID, b.DiscountAmount); refundErr != nil {
			s.Logger.Error("reward refund failed after booking persist failure",
				zap.String("bookingID", b.ID), zap.Int64("points", b.DiscountAmount), zap.Error(refundErr))
		}
		return nil, err
	}

	s.Logger.Info("reward funded booking confirmed",
		zap.String("bookingID", b.ID), zap.String("gymID", b.GymID), zap.Int64("points", b.DiscountAmount))
	return &models.CreateBookingResponse{Booking: b, AmountDue: 0}, nil
}

// createPending persists the booking first, then asks the gateway for an
// order. A gateway failure leaves the booking pending and order-less so the
// order creation can be retried without inventing a fake id.
func (s *DefaultBookingService) createPending(ctx context.Context, b *models.Booking) (*models.CreateBookingResponse, error) {
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	orderID, err := s.Gateway.CreateOrder(ctx, b.FinalPrice, s.Currency, b.ID)
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			s.Logger.Warn("gateway order creation failed, booking left pending",
				zap.String("bookingID", b.ID), zap.Error(err))
			return nil, NewError(CodePaymentGateway, "payment gateway unavailable, retry order creation for booking %s", b.ID)
		}
		return nil, err
	}

	updated, err := s.Repo.SetPaymentOrder(ctx, b.ID, orderID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoTransition) {
			return nil, NewError(CodeInvalidStateTransition, "booking %s changed state during order creation", b.ID)
		}
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", b.ID), zap.String("orderID", orderID),
		zap.Int64("finalPrice", b.FinalPrice), zap.String("discount", string(b.DiscountSource)))
	return &models.CreateBookingResponse{
		Booking:        updated,
		PaymentOrderID: orderID,
		AmountDue:      updated.FinalPrice,
		Currency:       s.Currency,
	}, nil
}

// RetryPaymentOrder re-attempts gateway order creation for a pending booking
// whose original attempt hit a gateway fault.
func (s *DefaultBookingService) RetryPaymentOrder(ctx context.Context, userID, bookingID string) (*models.CreateBookingResponse, error) {
	b, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending {
		return nil, NewError(CodeInvalidStateTransition, "cannot create an order for a %s booking", b.Status)
	}
	if b.PaymentOrderID != "" {
		// Order already exists; nothing to retry.
		return &models.CreateBookingResponse{
			Booking:        b,
			PaymentOrderID: b.PaymentOrderID,
			AmountDue:      b.FinalPrice,
			Currency:       s.Currency,
		}, nil
	}

	orderID, err := s.Gateway.CreateOrder(ctx, b.FinalPrice, s.Currency, b.ID)
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			return nil, NewError(CodePaymentGateway, "payment gateway unavailable, retry order creation for booking %s", b.ID)
		}
		return nil, err
	}

	updated, err := s.Repo.SetPaymentOrder(ctx, b.ID, orderID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoTransition) {
			return nil, NewError(CodeInvalidStateTransition, "booking %s changed state during order creation", b.ID)
		}
		return nil, err
	}
	return &models.CreateBookingResponse{
		Booking:        updated,
		PaymentOrderID: orderID,
		AmountDue:      updated.FinalPrice,
		Currency:       s.Currency,
	}, nil
}

// ConfirmPayment verifies the payment callback and flips pending -> confirmed.
// A repeated callback for an already-confirmed payment short-circuits
// successfully; the reward ledger is debited exactly once, by the writer that
// wins the status flip.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, userID, bookingID string, cb models.PaymentCallback) (*models.Booking, error) {
	b, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	// Idempotent replay of a verified payment.
	if b.PaymentReference != "" {
		if b.PaymentReference == cb.PaymentID {
			return b, nil
		}
		return nil, NewError(CodeInvalidStateTransition, "booking %s already confirmed with a different payment", bookingID)
	}
	if b.Status != models.StatusPending {
		return nil, NewError(CodeInvalidStateTransition, "cannot confirm payment for a %s booking", b.Status)
	}
	if b.PaymentOrderID == "" || b.PaymentOrderID != cb.OrderID {
		return nil, NewValidationError("order_id", "does not match the booking's payment order")
	}

	ok, err := s.Gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature)
	if err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			return nil, NewError(CodePaymentGateway, "payment verification temporarily unavailable")
		}
		return nil, err
	}
	if !ok {
		return nil, NewError(CodePaymentNotVerified, "payment signature mismatch for order %s", cb.OrderID)
	}

	token, expiry, err := s.QR.Issue()
	if err != nil {
		return nil, err
	}
	confirmed, err := s.Repo.ConfirmPayment(ctx, bookingID, cb.PaymentID, token, expiry)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoTransition) {
			// Lost a race: re-read to distinguish a concurrent identical
			// confirmation from genuine state drift.
			current, readErr := s.Repo.GetByID(ctx, bookingID)
			if readErr == nil && current.PaymentReference == cb.PaymentID {
				return current, nil
			}
			return nil, NewError(CodeInvalidStateTransition, "booking %s is no longer pending", bookingID)
		}
		return nil, err
	}

	// Single CAS winner reaches this point, so the debit happens at most once.
	if confirmed.DiscountSource == models.DiscountReward && confirmed.DiscountAmount > 0 {
		if err := s.Discounts.DebitReward(ctx, userID, confirmed.DiscountAmount); err != nil {
			// Payment is already captured; keep the confirmation and surface
			// the ledger drift for reconciliation.
			s.Logger.Error("reward debit failed after payment confirmation",
				zap.String("bookingID", bookingID), zap.Int64("points", confirmed.DiscountAmount), zap.Error(err))
		}
	}

	s.Logger.Info("payment confirmed",
		zap.String("bookingID", bookingID), zap.String("paymentID", cb.PaymentID))
	return confirmed, nil
}

// CancelBooking cancels a pending or confirmed booking. The conditional
// update decides the race against check-in: first writer wins.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	if _, err := s.getOwned(ctx, userID, bookingID); err != nil {
		return nil, err
	}

	cancelled, err := s.Repo.Cancel(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoTransition) {
			return nil, NewError(CodeInvalidStateTransition, "booking %s cannot be cancelled", bookingID)
		}
		return nil, err
	}

	s.Logger.Info("booking cancelled", zap.String("bookingID", bookingID))
	return cancelled, nil
}

// GetQRCode returns the existing unexpired token so exactly one valid token is
// in flight per booking; a new token is minted only when the stored one has
// expired while the booking is still confirmed.
func (s *DefaultBookingService) GetQRCode(ctx context.Context, userID, bookingID string) (*models.QRCodeResponse, error) {
	b, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusConfirmed {
		return nil, NewError(CodeInvalidStateTransition, "no QR code available for a %s booking", b.Status)
	}

	token, expiry := b.QRToken, b.QRTokenExpiry
	if expiry == nil || s.now().After(*expiry) {
		freshToken, freshExpiry, err := s.QR.Issue()
		if err != nil {
			return nil, err
		}
		replaced, err := s.Repo.ReplaceQRToken(ctx, bookingID, freshToken, freshExpiry)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNoTransition) {
				return nil, NewError(CodeInvalidStateTransition, "booking %s is no longer confirmed", bookingID)
			}
			return nil, err
		}
		token, expiry = replaced.QRToken, replaced.QRTokenExpiry
	}

	png, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return &models.QRCodeResponse{
		Token:  token,
		Image:  base64.StdEncoding.EncodeToString(png),
		Expiry: *expiry,
	}, nil
}

// CheckIn delegates token validation and the transition to the check-in validator.
func (s *DefaultBookingService) CheckIn(ctx context.Context, bookingID, token string) (*models.Booking, error) {
	return s.CheckIns.CheckIn(ctx, bookingID, token)
}

// ListBookings reads the user's bookings straight from authoritative state.
func (s *DefaultBookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// getOwned fetches a booking and hides other users' bookings behind not-found.
func (s *DefaultBookingService) getOwned(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewError(CodeBookingNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewError(CodeBookingNotFound, "booking %s not found", bookingID)
	}
	return b, nil
}
