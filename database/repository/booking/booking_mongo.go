package bookingRepo

import (
	"context"
	"log"
	"time"

	"gymslot/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repository backed by the "bookings" collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	coll := database.MongoClient.Database("gymslot").Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create booking indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
