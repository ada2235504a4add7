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

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctxWithTimeout, b)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// ListByUser returns all bookings for a user, newest first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}
