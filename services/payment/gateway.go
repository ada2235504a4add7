package payment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Gateway creates payment orders with an external provider and verifies
// payment completion signatures. A signature mismatch is a normal negative
// result, not an error; GatewayError marks transient provider faults the
// caller may retry.
type Gateway interface {
	// CreateOrder registers an order for the given amount (major currency
	// units) and returns the provider's order id. It never fabricates an id:
	// on provider failure the error is a *GatewayError.
	CreateOrder(ctx context.Context, amount int64, currency, bookingID string) (string, error)
	// VerifySignature reports whether the presented signature authenticates
	// the (orderID, paymentID) pair.
	VerifySignature(orderID, paymentID, signature string) (bool, error)
}

// GatewayError marks a transient provider-side failure. Callers should leave
// the booking as-is and retry.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Config selects and parameterizes the gateway implementation.
type Config struct {
	Provider  string // "razorpay" or "stripe"
	KeyID     string
	KeySecret string
	Retries   int
}

// NewGateway builds the configured gateway implementation.
func NewGateway(cfg Config, logger *zap.Logger) (Gateway, error) {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	switch cfg.Provider {
	case "razorpay":
		return NewRazorpayGateway(cfg, logger), nil
	case "stripe":
		return NewStripeGateway(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", cfg.Provider)
	}
}

// retryWithBackoff runs fn up to attempts times, sleeping between tries.
// Context cancellation aborts the loop.
func retryWithBackoff(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return err
}
