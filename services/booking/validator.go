package booking

import (
	"context"
	"errors"
	"time"

	gymRepo "gymslot/database/repository/gym"
	"gymslot/models"
	"gymslot/services/gym"
)

// RequestValidator checks a booking request's structural and business validity
// before any state is created. It has no side effects.
type RequestValidator struct {
	Gyms gym.GymService
	Now  func() time.Time
}

func (v *RequestValidator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now().UTC()
}

// Validate parses and checks the request, returning the resolved gym so the
// caller can capture its price. Any violation is a field-level validation error.
func (v *RequestValidator) Validate(ctx context.Context, req models.BookingRequest) (*models.Gym, time.Time, error) {
	if req.GymID == "" {
		return nil, time.Time{}, NewValidationError("gym_id", "must not be empty")
	}

	sessionDate, err := time.Parse(time.RFC3339, req.SessionDate)
	if err != nil {
		return nil, time.Time{}, NewValidationError("session_date", "must be a valid RFC3339 timestamp")
	}
	sessionDate = sessionDate.UTC()
	if !sessionDate.After(v.now()) {
		return nil, time.Time{}, NewValidationError("session_date", "must be strictly in the future")
	}

	if err := validateDiscountChoice(req.Discount); err != nil {
		return nil, time.Time{}, err
	}

	g, err := v.Gyms.GetGym(ctx, req.GymID)
	if err != nil {
		if errors.Is(err, gymRepo.ErrNotFound) {
			return nil, time.Time{}, NewValidationError("gym_id", "gym does not exist")
		}
		return nil, time.Time{}, err
	}
	if !g.Bookable() {
		return nil, time.Time{}, NewValidationError("gym_id", "gym is not accepting bookings")
	}

	return g, sessionDate, nil
}

// validateDiscountChoice enforces that at most one discount mechanism is named
// and that its parameters are shaped correctly.
func validateDiscountChoice(d models.DiscountChoice) error {
	switch d.Source {
	case "", models.DiscountNone:
		if d.PointsToUse != 0 || d.AccessCode != "" {
			return NewValidationError("discount", "discount parameters given without a source")
		}
	case models.DiscountReward:
		if d.AccessCode != "" {
			return NewError(CodeDiscountNotApplicable, "reward points and corporate code cannot be combined")
		}
		if d.PointsToUse <= 0 {
			return NewValidationError("discount.points_to_use", "must be a positive number of points")
		}
	case models.DiscountCorporate:
		if d.PointsToUse != 0 {
			return NewError(CodeDiscountNotApplicable, "reward points and corporate code cannot be combined")
		}
		if len(d.AccessCode) != models.CorporateCodeLength {
			return NewValidationError("discount.access_code", "must be a valid access code")
		}
	default:
		return NewValidationError("discount.source", "unknown discount source")
	}
	return nil
}
