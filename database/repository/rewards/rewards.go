package rewardsRepo

import (
	"context"
	"errors"
)

// ErrInsufficientBalance is returned when a debit would drive a balance negative.
var ErrInsufficientBalance = errors.New("insufficient reward point balance")

// RewardLedgerRepository defines data access for per-user reward point balances.
type RewardLedgerRepository interface {
	// GetBalance returns the current point balance; a user without a ledger
	// document has a balance of zero.
	GetBalance(ctx context.Context, userID string) (int64, error)
	// Debit subtracts points with a balance >= amount guard, failing with
	// ErrInsufficientBalance otherwise. The guard makes concurrent debits safe.
	Debit(ctx context.Context, userID string, amount int64) error
	// Credit adds points, creating the ledger document if absent.
	Credit(ctx context.Context, userID string, amount int64) error
}
