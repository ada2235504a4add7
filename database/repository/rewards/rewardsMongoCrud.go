package rewardsRepo

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

// MongoRewardsRepo implements RewardLedgerRepository using MongoDB.
type MongoRewardsRepo struct {
	coll *mongo.Collection
}

// NewMongoRewardsRepo returns a repository backed by the "reward_ledgers" collection.
func NewMongoRewardsRepo() *MongoRewardsRepo {
	coll := database.MongoClient.Database("gymslot").Collection("reward_ledgers")
	repo := &MongoRewardsRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create reward ledger indexes: %v", err)
	}
	return repo
}

func (r *MongoRewardsRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetBalance returns the user's current point balance.
func (r *MongoRewardsRepo) GetBalance(ctx context.Context, userID string) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ledger models.RewardLedger
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"user_id": userID}).Decode(&ledger)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("error fetching reward ledger for %s: %w", userID, err)
	}
	return ledger.Balance, nil
}

// Debit subtracts points, guarded so the balance never goes negative.
func (r *MongoRewardsRepo) Debit(ctx context.Context, userID string, amount int64) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"balance": bson.M{"$gte": amount},
	}
	update := bson.M{"$inc": bson.M{"balance": -amount}}
	res, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error debiting reward ledger for %s: %w", userID, err)
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// Credit adds points, creating the ledger document on first credit.
func (r *MongoRewardsRepo) Credit(ctx context.Context, userID string, amount int64) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$inc": bson.M{"balance": amount}}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctxWithTimeout, filter, update, opts)
	if err != nil {
		return fmt.Errorf("error crediting reward ledger for %s: %w", userID, err)
	}
	return nil
}
