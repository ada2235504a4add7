package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// RazorpayGateway is the default Gateway implementation. Razorpay order
// amounts are denominated in currency subunits, and payment callbacks are
// authenticated with HMAC-SHA256 over "orderId|paymentId" keyed by the key
// secret.
type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
	retries   int
	logger    *zap.Logger
}

// NewRazorpayGateway builds a gateway around the Razorpay REST client.
func NewRazorpayGateway(cfg Config, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keySecret: cfg.KeySecret,
		retries:   cfg.Retries,
		logger:    logger,
	}
}

// CreateOrder registers an order with Razorpay, retrying transient failures a
// bounded number of times.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, bookingID string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount * 100, // subunits
		"currency": currency,
		"receipt":  bookingID,
	}

	var orderID string
	err := retryWithBackoff(ctx, g.retries, func() error {
		order, err := g.client.Order.Create(data, nil)
		if err != nil {
			g.logger.Warn("razorpay order create failed",
				zap.String("bookingID", bookingID), zap.Error(err))
			return err
		}
		id, ok := order["id"].(string)
		if !ok || id == "" {
			return fmt.Errorf("razorpay response missing order id")
		}
		orderID = id
		return nil
	})
	if err != nil {
		return "", &GatewayError{Op: "createOrder", Err: err}
	}

	g.logger.Info("razorpay order created",
		zap.String("bookingID", bookingID), zap.String("orderID", orderID), zap.Int64("amount", amount))
	return orderID, nil
}

// VerifySignature recomputes the callback signature locally; a mismatch is a
// negative result, never an error.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) (bool, error) {
	return signatureMatches(orderID, paymentID, signature, g.keySecret), nil
}
