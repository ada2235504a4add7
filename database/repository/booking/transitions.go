package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOneAndUpdate runs a conditional update and decodes the post-update
// document. A filter that matches nothing yields ErrNoTransition, which is how
// a racing writer loses.
func (r *MongoBookingRepo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoTransition
		}
		return nil, fmt.Errorf("error updating booking: %w", err)
	}
	return &booking, nil
}

// SetPaymentOrder records the gateway order id on a pending, order-less booking.
func (r *MongoBookingRepo) SetPaymentOrder(ctx context.Context, id, orderID string) (*models.Booking, error) {
	filter := bson.M{
		"id":               id,
		"status":           models.StatusPending,
		"payment_order_id": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{"$set": bson.M{
		"payment_order_id": orderID,
		"updated_at":       time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// ConfirmPayment flips pending -> confirmed, writing the payment reference and
// the QR token in the same update so no partial transition is observable.
func (r *MongoBookingRepo) ConfirmPayment(ctx context.Context, id, paymentRef, qrToken string, expiry time.Time) (*models.Booking, error) {
	filter := bson.M{
		"id":                id,
		"status":            models.StatusPending,
		"payment_reference": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{"$set": bson.M{
		"status":            models.StatusConfirmed,
		"payment_reference": paymentRef,
		"qr_token":          qrToken,
		"qr_token_expiry":   expiry,
		"updated_at":        time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// Cancel flips pending or confirmed -> cancelled and invalidates any QR token.
func (r *MongoBookingRepo) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed}},
	}
	update := bson.M{
		"$set":   bson.M{"status": models.StatusCancelled, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"qr_token": "", "qr_token_expiry": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// CheckIn flips confirmed -> checked_in, recording the check-in time exactly once.
func (r *MongoBookingRepo) CheckIn(ctx context.Context, id string, at time.Time) (*models.Booking, error) {
	filter := bson.M{
		"id":     id,
		"status": models.StatusConfirmed,
	}
	update := bson.M{"$set": bson.M{
		"status":        models.StatusCheckedIn,
		"check_in_time": at,
		"updated_at":    time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// ReplaceQRToken swaps in a fresh token while the booking is still confirmed.
func (r *MongoBookingRepo) ReplaceQRToken(ctx context.Context, id, token string, expiry time.Time) (*models.Booking, error) {
	filter := bson.M{
		"id":     id,
		"status": models.StatusConfirmed,
	}
	update := bson.M{"$set": bson.M{
		"qr_token":        token,
		"qr_token_expiry": expiry,
		"updated_at":      time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// ExpirePendingBefore cancels pending bookings created before the cutoff.
func (r *MongoBookingRepo) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.StatusPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateMany(ctxWithTimeout, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error expiring pending bookings: %w", err)
	}
	return res.ModifiedCount, nil
}

// CompleteCheckedInBefore completes checked-in bookings whose session has ended.
func (r *MongoBookingRepo) CompleteCheckedInBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"status":       models.StatusCheckedIn,
		"session_date": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCompleted, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateMany(ctxWithTimeout, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error completing checked-in bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
