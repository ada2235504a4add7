package payment

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway is the alternative Gateway implementation, backed by Stripe
// PaymentIntents. Client payment callbacks use the same shared-secret
// "orderId|paymentId" signing scheme, keyed by the configured key secret.
type StripeGateway struct {
	keySecret string
	retries   int
	logger    *zap.Logger
}

// NewStripeGateway builds a gateway around the Stripe SDK. The global Stripe
// key must be set by the caller before use.
func NewStripeGateway(cfg Config, logger *zap.Logger) *StripeGateway {
	stripe.Key = cfg.KeyID
	return &StripeGateway{
		keySecret: cfg.KeySecret,
		retries:   cfg.Retries,
		logger:    logger,
	}
}

// CreateOrder creates a PaymentIntent for the given amount and returns its id.
func (g *StripeGateway) CreateOrder(ctx context.Context, amount int64, currency, bookingID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount * 100), // subunits
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.AddMetadata("booking_id", bookingID)

	var orderID string
	err := retryWithBackoff(ctx, g.retries, func() error {
		pi, err := paymentintent.New(params)
		if err != nil {
			g.logger.Warn("stripe payment intent create failed",
				zap.String("bookingID", bookingID), zap.Error(err))
			return err
		}
		orderID = pi.ID
		return nil
	})
	if err != nil {
		return "", &GatewayError{Op: "createOrder", Err: err}
	}

	g.logger.Info("stripe payment intent created",
		zap.String("bookingID", bookingID), zap.String("orderID", orderID), zap.Int64("amount", amount))
	return orderID, nil
}

// VerifySignature recomputes the callback signature locally.
func (g *StripeGateway) VerifySignature(orderID, paymentID, signature string) (bool, error) {
	return signatureMatches(orderID, paymentID, signature, g.keySecret), nil
}
