package corporateRepo

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

// MongoCorporateRepo implements CorporateCodeRepository using MongoDB.
type MongoCorporateRepo struct {
	coll *mongo.Collection
}

// NewMongoCorporateRepo returns a repository backed by the "corporate_codes" collection.
func NewMongoCorporateRepo() *MongoCorporateRepo {
	coll := database.MongoClient.Database("gymslot").Collection("corporate_codes")
	repo := &MongoCorporateRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create corporate code indexes: %v", err)
	}
	return repo
}

func (r *MongoCorporateRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByCode retrieves an access code record.
func (r *MongoCorporateRepo) GetByCode(ctx context.Context, code string) (*models.CorporateAccessCode, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.CorporateAccessCode
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"code": code}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching corporate code: %w", err)
	}
	return &record, nil
}

// ConsumeSession decrements remaining_sessions with a guard filter so the
// counter can never go negative under concurrency.
func (r *MongoCorporateRepo) ConsumeSession(ctx context.Context, code string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"code":               code,
		"remaining_sessions": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"remaining_sessions": -1}}
	res, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error consuming corporate session: %w", err)
	}
	if res.ModifiedCount == 0 {
		return ErrNoSessionsLeft
	}
	return nil
}
