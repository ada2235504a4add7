package models

import "time"

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// DiscountSource names the single mechanism reducing a booking's price, if any.
type DiscountSource string

const (
	DiscountNone      DiscountSource = "none"
	DiscountReward    DiscountSource = "rewardPoints"
	DiscountCorporate DiscountSource = "corporate"
)

// Booking represents one reserved gym session for one user.
type Booking struct {
	ID             string         `bson:"id" json:"id"`                             // Unique booking identifier (UUID)
	UserID         string         `bson:"user_id" json:"user_id"`                   // User who made the booking
	GymID          string         `bson:"gym_id" json:"gym_id"`                     // Gym being booked
	SessionDate    time.Time      `bson:"session_date" json:"session_date"`         // Reserved session time (UTC)
	BasePrice      int64          `bson:"base_price" json:"base_price"`             // Per-session price captured at booking time
	DiscountSource DiscountSource `bson:"discount_source" json:"discount_source"`   // none | rewardPoints | corporate
	DiscountAmount int64          `bson:"discount_amount" json:"discount_amount"`   // Applied discount; never exceeds base price
	FinalPrice     int64          `bson:"final_price" json:"final_price"`           // base_price - discount_amount
	Status         BookingStatus  `bson:"status" json:"status"`

	PaymentOrderID   string `bson:"payment_order_id,omitempty" json:"payment_order_id,omitempty"`     // Gateway order; set only when final_price > 0
	PaymentReference string `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`   // Gateway payment id; immutable once set
	CorporateCode    string `bson:"corporate_code,omitempty" json:"corporate_code,omitempty"`

	QRToken       string     `bson:"qr_token,omitempty" json:"-"`                  // Check-in credential; present iff confirmed or later
	QRTokenExpiry *time.Time `bson:"qr_token_expiry,omitempty" json:"qr_token_expiry,omitempty"`
	CheckInTime   *time.Time `bson:"check_in_time,omitempty" json:"check_in_time,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HasQRToken reports whether a booking in this status carries a check-in token.
func (s BookingStatus) HasQRToken() bool {
	return s == StatusConfirmed || s == StatusCheckedIn || s == StatusCompleted
}
