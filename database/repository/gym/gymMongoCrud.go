package gymRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gymslot/database"
	"gymslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGymRepo implements GymRepository using MongoDB.
type MongoGymRepo struct {
	coll *mongo.Collection
}

// NewMongoGymRepo returns a repository backed by the "gyms" collection.
func NewMongoGymRepo() *MongoGymRepo {
	coll := database.MongoClient.Database("gymslot").Collection("gyms")
	repo := &MongoGymRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create gym indexes: %v", err)
	}
	return repo
}

func (r *MongoGymRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a gym by its ID.
func (r *MongoGymRepo) GetByID(ctx context.Context, id string) (*models.Gym, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var gym models.Gym
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&gym)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching gym %s: %w", id, err)
	}
	return &gym, nil
}
