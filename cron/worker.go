package cron

import (
	"context"
	"log"
	"time"

	"gymslot/config"
	bookingRepo "gymslot/database/repository/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeSweepComplete moves checked-in bookings whose session ended to completed.
	TypeSweepComplete = "sweep:complete"
	// TypeSweepExpire cancels pending bookings that never completed payment.
	TypeSweepExpire = "sweep:expire"
)

// InitSweepWorker runs the async sweep worker in background and schedules the
// periodic sweep tasks.
func InitSweepWorker(repo bookingRepo.BookingRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSweepComplete, handleSweepComplete(repo, logger))
	mux.HandleFunc(TypeSweepExpire, handleSweepExpire(repo, logger))

	go startSweepScheduler(redisOpts, logger)

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// startSweepScheduler enqueues the sweep tasks on the configured interval.
func startSweepScheduler(redisOpts asynq.RedisClientOpt, logger *zap.Logger) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	interval := config.AppConfig.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		for _, taskType := range []string{TypeSweepComplete, TypeSweepExpire} {
			task := asynq.NewTask(taskType, nil)
			if _, err := client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
				logger.Warn("failed to enqueue sweep task",
					zap.String("type", taskType), zap.Error(err))
			}
		}
	}
}

func handleSweepComplete(repo bookingRepo.BookingRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().UTC().Add(-config.AppConfig.CompletionLag)
		n, err := repo.CompleteCheckedInBefore(ctx, cutoff)
		if err != nil {
			logger.Error("completion sweep failed", zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Info("completion sweep", zap.Int64("completed", n))
		}
		return nil
	}
}

func handleSweepExpire(repo bookingRepo.BookingRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ttl := config.AppConfig.PendingTTL
		if ttl <= 0 {
			// Abandoned-cart expiry disabled.
			return nil
		}
		cutoff := time.Now().UTC().Add(-ttl)
		n, err := repo.ExpirePendingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("pending expiry sweep failed", zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Info("pending expiry sweep", zap.Int64("cancelled", n))
		}
		return nil
	}
}
