package models

// DiscountChoice carries the caller's requested discount mechanism.
// At most one of PointsToUse / AccessCode may be set.
type DiscountChoice struct {
	Source      DiscountSource `json:"source"`                 // none | rewardPoints | corporate
	PointsToUse int64          `json:"points_to_use,omitempty"`
	AccessCode  string         `json:"access_code,omitempty"`
}

// BookingRequest is the client's booking intent, validated before any state exists.
type BookingRequest struct {
	GymID       string         `json:"gym_id" binding:"required"`
	SessionDate string         `json:"session_date" binding:"required"` // RFC3339
	Discount    DiscountChoice `json:"discount"`
}
