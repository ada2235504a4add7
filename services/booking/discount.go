package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	corporateRepo "gymslot/database/repository/corporate"
	rewardsRepo "gymslot/database/repository/rewards"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RewardQuote is the outcome of reward-points discount resolution. When the
// request exceeds the cap the quote carries the clamped amount and a reason so
// the caller can re-prompt; the request is never silently reduced.
type RewardQuote struct {
	DiscountAmount int64
	CanApply       bool
	Reason         string
}

// CorporateQuote is the outcome of corporate code validation. The grant token
// is the capability the state machine must present back at confirmation time
// to consume a session; validation alone mutates nothing.
type CorporateQuote struct {
	DiscountAmount int64
	GrantToken     string
}

// DiscountResolver computes the price adjustment for a booking given at most
// one of: reward-points redemption or a corporate access code.
type DiscountResolver struct {
	Rewards   rewardsRepo.RewardLedgerRepository
	Corporate corporateRepo.CorporateCodeRepository
	Grants    GrantStore
	GrantTTL  time.Duration
	Logger    *zap.Logger
	Now       func() time.Time
}

func (r *DiscountResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// ResolveReward quotes a reward-points discount. Points convert 1:1 against
// the price, capped at min(balance, basePrice).
func (r *DiscountResolver) ResolveReward(ctx context.Context, userID string, pointsToUse, basePrice int64) (RewardQuote, error) {
	balance, err := r.Rewards.GetBalance(ctx, userID)
	if err != nil {
		return RewardQuote{}, err
	}

	limit := balance
	if basePrice < limit {
		limit = basePrice
	}
	if pointsToUse > limit {
		return RewardQuote{
			DiscountAmount: limit,
			CanApply:       false,
			Reason:         fmt.Sprintf("requested %d points but only %d can be applied", pointsToUse, limit),
		}, nil
	}
	return RewardQuote{DiscountAmount: pointsToUse, CanApply: true}, nil
}

// ValidateCorporate checks the access code and, on success, returns a full
// price waiver plus a single-use grant token. The code record is not touched.
func (r *DiscountResolver) ValidateCorporate(ctx context.Context, code string, basePrice int64) (CorporateQuote, error) {
	record, err := r.Corporate.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, corporateRepo.ErrNotFound) {
			return CorporateQuote{}, NewError(CodeCorporateCodeInvalid, "access code not recognized")
		}
		return CorporateQuote{}, err
	}
	if r.now().After(record.Expiry) {
		return CorporateQuote{}, NewError(CodeCorporateCodeExpired, "access code expired on %s", record.Expiry.Format(time.RFC3339))
	}
	if record.RemainingSessions <= 0 {
		return CorporateQuote{}, NewError(CodeCorporateCodeExhausted, "access code has no sessions left")
	}

	token := uuid.New().String()
	if err := r.Grants.Put(ctx, token, code, r.GrantTTL); err != nil {
		return CorporateQuote{}, err
	}
	return CorporateQuote{DiscountAmount: basePrice, GrantToken: token}, nil
}

// ConsumeCorporate redeems a grant, atomically decrementing the code's
// remaining sessions. A validated-but-abandoned booking never reaches here,
// so it never consumes a session.
func (r *DiscountResolver) ConsumeCorporate(ctx context.Context, grantToken string) (string, error) {
	code, err := r.Grants.Take(ctx, grantToken)
	if err != nil {
		if errors.Is(err, ErrGrantNotFound) {
			return "", NewError(CodeCorporateCodeInvalid, "corporate grant expired or already used")
		}
		return "", err
	}

	if err := r.Corporate.ConsumeSession(ctx, code); err != nil {
		if errors.Is(err, corporateRepo.ErrNoSessionsLeft) {
			// Lost the race for the last session.
			return "", NewError(CodeCorporateCodeExhausted, "access code has no sessions left")
		}
		return "", err
	}
	r.Logger.Info("corporate session consumed", zap.String("code", code))
	return code, nil
}

// DebitReward debits the ledger by the discount amount. The conditional debit
// fails if the balance dropped below the amount since the quote.
func (r *DiscountResolver) DebitReward(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	if err := r.Rewards.Debit(ctx, userID, amount); err != nil {
		if errors.Is(err, rewardsRepo.ErrInsufficientBalance) {
			return NewError(CodeDiscountNotApplicable, "reward balance no longer covers %d points", amount)
		}
		return err
	}
	return nil
}

// RefundReward re-credits a debit that could not be followed through, such as
// a persist failure after an up-front debit.
func (r *DiscountResolver) RefundReward(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	return r.Rewards.Credit(ctx, userID, amount)
}
