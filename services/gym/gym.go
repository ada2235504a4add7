package gym

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gymRepo "gymslot/database/repository/gym"
	"gymslot/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GymService is the gym lookup collaborator consumed by the booking core.
type GymService interface {
	GetGym(ctx context.Context, gymID string) (*models.Gym, error)
}

// DefaultGymService implements GymService with a Redis read-through cache in
// front of the gym repository.
type DefaultGymService struct {
	Repo        gymRepo.GymRepository
	CacheClient *redis.Client
	CacheTTL    time.Duration
	Logger      *zap.Logger
}

func cacheKey(gymID string) string {
	return "gym:" + gymID
}

// GetGym returns the gym, serving from cache when possible. Cache failures
// fall through to the repository.
func (s *DefaultGymService) GetGym(ctx context.Context, gymID string) (*models.Gym, error) {
	if s.CacheClient != nil {
		cached, err := s.CacheClient.Get(ctx, cacheKey(gymID)).Result()
		if err == nil {
			var gym models.Gym
			if err := json.Unmarshal([]byte(cached), &gym); err == nil {
				return &gym, nil
			}
		}
	}

	gym, err := s.Repo.GetByID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("gym lookup failed: %w", err)
	}

	if s.CacheClient != nil {
		data, err := json.Marshal(gym)
		if err == nil {
			if err := s.CacheClient.Set(ctx, cacheKey(gymID), data, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache gym", zap.String("gymID", gymID), zap.Error(err))
			}
		}
	}
	return gym, nil
}
