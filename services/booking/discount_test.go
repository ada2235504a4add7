package booking

import (
	"context"
	"testing"
	"time"

	"gymslot/models"

	"go.uber.org/zap"
)

func newTestResolver(balances map[string]int64, codes ...*models.CorporateAccessCode) (*DiscountResolver, *fakeRewardsRepo, *fakeCorporateRepo, *fakeGrantStore) {
	rewards := newFakeRewardsRepo(balances)
	corporate := newFakeCorporateRepo(codes...)
	grants := newFakeGrantStore()
	r := &DiscountResolver{
		Rewards:   rewards,
		Corporate: corporate,
		Grants:    grants,
		GrantTTL:  10 * time.Minute,
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return testNow },
	}
	return r, rewards, corporate, grants
}

func TestResolveRewardClampsToBalanceAndPrice(t *testing.T) {
	r, _, _, _ := newTestResolver(map[string]int64{"user-1": 300, "rich": 900})

	cases := []struct {
		name        string
		userID      string
		points      int64
		basePrice   int64
		wantApply   bool
		wantDiscount int64
	}{
		{"within balance and price", "user-1", 200, 500, true, 200},
		{"exactly the balance", "user-1", 300, 500, true, 300},
		{"over the balance", "user-1", 400, 500, false, 300},
		{"balance exceeds price", "rich", 900, 500, false, 500},
		{"full price from large balance", "rich", 500, 500, true, 500},
		{"no balance at all", "nobody", 10, 500, false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := r.ResolveReward(context.Background(), tc.userID, tc.points, tc.basePrice)
			if err != nil {
				t.Fatalf("ResolveReward: %v", err)
			}
			if quote.CanApply != tc.wantApply || quote.DiscountAmount != tc.wantDiscount {
				t.Fatalf("quote = %+v, want apply=%v discount=%d", quote, tc.wantApply, tc.wantDiscount)
			}
			if !quote.CanApply && quote.Reason == "" {
				t.Fatal("rejected quote must carry a reason")
			}
		})
	}
}

func TestValidateCorporateOutcomes(t *testing.T) {
	r, _, _, _ := newTestResolver(nil,
		&models.CorporateAccessCode{Code: "CORP-ACME-01", RemainingSessions: 3, Expiry: testNow.Add(24 * time.Hour)},
		&models.CorporateAccessCode{Code: "CORP-EXPD-01", RemainingSessions: 3, Expiry: testNow.Add(-time.Hour)},
		&models.CorporateAccessCode{Code: "CORP-USED-01", RemainingSessions: 0, Expiry: testNow.Add(24 * time.Hour)},
	)

	quote, err := r.ValidateCorporate(context.Background(), "CORP-ACME-01", 500)
	if err != nil {
		t.Fatalf("ValidateCorporate: %v", err)
	}
	if quote.DiscountAmount != 500 || quote.GrantToken == "" {
		t.Fatalf("quote = %+v, want full waiver with grant token", quote)
	}

	if _, err := r.ValidateCorporate(context.Background(), "CORP-NOPE-01", 500); CodeOf(err) != CodeCorporateCodeInvalid {
		t.Fatalf("unknown code: err = %v, want %s", err, CodeCorporateCodeInvalid)
	}
	if _, err := r.ValidateCorporate(context.Background(), "CORP-EXPD-01", 500); CodeOf(err) != CodeCorporateCodeExpired {
		t.Fatalf("expired code: err = %v, want %s", err, CodeCorporateCodeExpired)
	}
	if _, err := r.ValidateCorporate(context.Background(), "CORP-USED-01", 500); CodeOf(err) != CodeCorporateCodeExhausted {
		t.Fatalf("exhausted code: err = %v, want %s", err, CodeCorporateCodeExhausted)
	}
}

func TestValidateCorporateDoesNotConsume(t *testing.T) {
	r, _, corporate, _ := newTestResolver(nil,
		&models.CorporateAccessCode{Code: "CORP-ACME-01", RemainingSessions: 2, Expiry: testNow.Add(24 * time.Hour)},
	)

	for i := 0; i < 5; i++ {
		if _, err := r.ValidateCorporate(context.Background(), "CORP-ACME-01", 500); err != nil {
			t.Fatalf("ValidateCorporate #%d: %v", i, err)
		}
	}

	code, _ := corporate.GetByCode(context.Background(), "CORP-ACME-01")
	if code.RemainingSessions != 2 {
		t.Fatalf("remaining sessions = %d, validation must not consume", code.RemainingSessions)
	}
}

func TestConsumeCorporateGrantIsSingleUse(t *testing.T) {
	r, _, corporate, _ := newTestResolver(nil,
		&models.CorporateAccessCode{Code: "CORP-ACME-01", RemainingSessions: 2, Expiry: testNow.Add(24 * time.Hour)},
	)

	quote, err := r.ValidateCorporate(context.Background(), "CORP-ACME-01", 500)
	if err != nil {
		t.Fatalf("ValidateCorporate: %v", err)
	}

	code, err := r.ConsumeCorporate(context.Background(), quote.GrantToken)
	if err != nil {
		t.Fatalf("ConsumeCorporate: %v", err)
	}
	if code != "CORP-ACME-01" {
		t.Fatalf("consumed code = %q", code)
	}

	record, _ := corporate.GetByCode(context.Background(), "CORP-ACME-01")
	if record.RemainingSessions != 1 {
		t.Fatalf("remaining sessions = %d, want 1", record.RemainingSessions)
	}

	// A replayed grant is rejected without touching the record again.
	if _, err := r.ConsumeCorporate(context.Background(), quote.GrantToken); CodeOf(err) != CodeCorporateCodeInvalid {
		t.Fatalf("replayed grant: err = %v, want %s", err, CodeCorporateCodeInvalid)
	}
	record, _ = corporate.GetByCode(context.Background(), "CORP-ACME-01")
	if record.RemainingSessions != 1 {
		t.Fatalf("remaining sessions = %d after replay, want 1", record.RemainingSessions)
	}
}

func TestConsumeCorporateLastSessionRace(t *testing.T) {
	r, _, _, _ := newTestResolver(nil,
		&models.CorporateAccessCode{Code: "CORP-ACME-01", RemainingSessions: 1, Expiry: testNow.Add(24 * time.Hour)},
	)

	// Two validations both succeed against the single remaining session.
	first, err := r.ValidateCorporate(context.Background(), "CORP-ACME-01", 500)
	if err != nil {
		t.Fatalf("ValidateCorporate: %v", err)
	}
	second, err := r.ValidateCorporate(context.Background(), "CORP-ACME-01", 500)
	if err != nil {
		t.Fatalf("ValidateCorporate: %v", err)
	}

	if _, err := r.ConsumeCorporate(context.Background(), first.GrantToken); err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if _, err := r.ConsumeCorporate(context.Background(), second.GrantToken); CodeOf(err) != CodeCorporateCodeExhausted {
		t.Fatalf("second consume: err = %v, want %s", err, CodeCorporateCodeExhausted)
	}
}

func TestDebitReward(t *testing.T) {
	r, rewards, _, _ := newTestResolver(map[string]int64{"user-1": 300})

	if err := r.DebitReward(context.Background(), "user-1", 200); err != nil {
		t.Fatalf("DebitReward: %v", err)
	}
	if bal, _ := rewards.GetBalance(context.Background(), "user-1"); bal != 100 {
		t.Fatalf("balance = %d, want 100", bal)
	}

	if err := r.DebitReward(context.Background(), "user-1", 200); CodeOf(err) != CodeDiscountNotApplicable {
		t.Fatalf("insufficient debit: err = %v, want %s", err, CodeDiscountNotApplicable)
	}
	if bal, _ := rewards.GetBalance(context.Background(), "user-1"); bal != 100 {
		t.Fatalf("failed debit changed the balance to %d", bal)
	}

	if err := r.DebitReward(context.Background(), "user-1", 0); err != nil {
		t.Fatalf("zero debit should be a no-op, got %v", err)
	}
}

func TestRefundReward(t *testing.T) {
	r, rewards, _, _ := newTestResolver(map[string]int64{"user-1": 500})

	if err := r.DebitReward(context.Background(), "user-1", 500); err != nil {
		t.Fatalf("DebitReward: %v", err)
	}
	if err := r.RefundReward(context.Background(), "user-1", 500); err != nil {
		t.Fatalf("RefundReward: %v", err)
	}
	if bal, _ := rewards.GetBalance(context.Background(), "user-1"); bal != 500 {
		t.Fatalf("balance = %d, want 500 after refund", bal)
	}

	if err := r.RefundReward(context.Background(), "user-1", 0); err != nil {
		t.Fatalf("zero refund should be a no-op, got %v", err)
	}
}
