package booking

import (
	"context"
	"testing"
	"time"

	"gymslot/models"
)

func newTestValidator() *RequestValidator {
	return &RequestValidator{
		Gyms: newFakeGymService(
			&models.Gym{ID: "gym-1", Name: "Iron Works", BasePrice: 500, Capacity: 50, CurrentOccupancy: 10, IsVerified: true},
			&models.Gym{ID: "gym-full", Name: "Packed", BasePrice: 300, Capacity: 5, CurrentOccupancy: 5, IsVerified: true},
			&models.Gym{ID: "gym-unverified", Name: "Shady", BasePrice: 100, Capacity: 10, IsVerified: false},
		),
		Now: func() time.Time { return testNow },
	}
}

func TestValidateRejectsBadRequests(t *testing.T) {
	v := newTestValidator()

	cases := []struct {
		name     string
		req      models.BookingRequest
		wantCode string
	}{
		{
			name:     "missing gym id",
			req:      models.BookingRequest{SessionDate: futureSession()},
			wantCode: CodeValidation,
		},
		{
			name:     "malformed date",
			req:      models.BookingRequest{GymID: "gym-1", SessionDate: "next tuesday"},
			wantCode: CodeValidation,
		},
		{
			name:     "past date",
			req:      models.BookingRequest{GymID: "gym-1", SessionDate: testNow.Add(-time.Hour).Format(time.RFC3339)},
			wantCode: CodeValidation,
		},
		{
			name:     "date exactly now",
			req:      models.BookingRequest{GymID: "gym-1", SessionDate: testNow.Format(time.RFC3339)},
			wantCode: CodeValidation,
		},
		{
			name:     "unknown gym",
			req:      models.BookingRequest{GymID: "gym-missing", SessionDate: futureSession()},
			wantCode: CodeValidation,
		},
		{
			name:     "gym at capacity",
			req:      models.BookingRequest{GymID: "gym-full", SessionDate: futureSession()},
			wantCode: CodeValidation,
		},
		{
			name:     "unverified gym",
			req:      models.BookingRequest{GymID: "gym-unverified", SessionDate: futureSession()},
			wantCode: CodeValidation,
		},
		{
			name: "both discounts at once",
			req: models.BookingRequest{
				GymID:       "gym-1",
				SessionDate: futureSession(),
				Discount:    models.DiscountChoice{Source: models.DiscountReward, PointsToUse: 50, AccessCode: "CORP-ACME-01"},
			},
			wantCode: CodeDiscountNotApplicable,
		},
		{
			name: "corporate source with points",
			req: models.BookingRequest{
				GymID:       "gym-1",
				SessionDate: futureSession(),
				Discount:    models.DiscountChoice{Source: models.DiscountCorporate, AccessCode: "CORP-ACME-01", PointsToUse: 10},
			},
			wantCode: CodeDiscountNotApplicable,
		},
		{
			name: "corporate code wrong length",
			req: models.BookingRequest{
				GymID:       "gym-1",
				SessionDate: futureSession(),
				Discount:    models.DiscountChoice{Source: models.DiscountCorporate, AccessCode: "short"},
			},
			wantCode: CodeValidation,
		},
		{
			name: "zero points with reward source",
			req: models.BookingRequest{
				GymID:       "gym-1",
				SessionDate: futureSession(),
				Discount:    models.DiscountChoice{Source: models.DiscountReward},
			},
			wantCode: CodeValidation,
		},
		{
			name: "discount params without source",
			req: models.BookingRequest{
				GymID:       "gym-1",
				SessionDate: futureSession(),
				Discount:    models.DiscountChoice{PointsToUse: 50},
			},
			wantCode: CodeValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := v.Validate(context.Background(), tc.req)
			if CodeOf(err) != tc.wantCode {
				t.Fatalf("err = %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	v := newTestValidator()

	g, sessionDate, err := v.Validate(context.Background(), models.BookingRequest{
		GymID:       "gym-1",
		SessionDate: futureSession(),
		Discount:    models.DiscountChoice{Source: models.DiscountReward, PointsToUse: 100},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.ID != "gym-1" || g.BasePrice != 500 {
		t.Fatalf("resolved gym = %+v", g)
	}
	if !sessionDate.After(testNow) {
		t.Fatalf("session date %v not in the future", sessionDate)
	}
}
