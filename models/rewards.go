package models

// RewardLedger is a per-user point balance redeemable 1:1 against booking price.
type RewardLedger struct {
	UserID  string `bson:"user_id" json:"user_id"`
	Balance int64  `bson:"balance" json:"balance"` // Non-negative
}
