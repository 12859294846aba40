package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/internal/model"
	"github.com/thep200/github-event-tracker/pkg/db"
	"github.com/thep200/github-event-tracker/pkg/kafka"
	"github.com/thep200/github-event-tracker/pkg/log"
)

// Consumer phát lại topic sự kiện vào database. Insert trùng id bị bỏ qua
// nên có thể chạy song song với worker hoặc dùng để dựng lại một store mới.

func main() {
	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, _ := log.NewCslLogger()

	// Setup database
	mysql, err := db.NewMysql(config)
	if err != nil {
		logger.Error(context.Background(), "Invalid database configuration: %v", err)
		os.Exit(1)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventModel, _ := model.NewEvent(config, logger, mysql)
	if err := mysql.Migrate(eventModel); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := startEventConsumer(ctx, config, logger, eventModel)

	// Wait for termination signal
	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()

	// Chờ flush batch cuối cùng xong rồi mới đóng kết nối database
	<-done
	mysql.Close()
}

// batchStore ghi một loạt sự kiện vào store, trùng id bị bỏ qua
type batchStore interface {
	CreateBatch(events []model.Event) (int64, error)
}

func startEventConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, eventModel *model.Event) <-chan struct{} {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Topic, "event-consumer-group")

	// Channel for collecting messages in batches
	batchSize := 100
	batchTimeout := 5 * time.Second
	messages := make(chan model.EventMessage, batchSize*2)

	// Batch processor. Kênh done báo khi batch cuối đã được flush
	done := make(chan struct{})
	go func() {
		processBatchedEvents(ctx, messages, batchSize, batchTimeout, logger, eventModel)
		close(done)
	}()

	// Register handler for event messages
	consumer.RegisterHandler("event", func(data []byte) error {
		var eventMsg model.EventMessage
		if err := json.Unmarshal(data, &eventMsg); err != nil {
			return fmt.Errorf("failed to unmarshal event message: %w", err)
		}

		select {
		case messages <- eventMsg:
			// Message added to batch
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Event consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Event consumer started successfully")
	return done
}

func processBatchedEvents(ctx context.Context, messages <-chan model.EventMessage, batchSize int,
	batchTimeout time.Duration, logger log.Logger, store batchStore) {

	var batch []model.EventMessage
	timer := time.NewTimer(batchTimeout)

	for {
		select {
		case <-ctx.Done():
			// Process remaining messages before exiting
			if len(batch) > 0 {
				processSingleBatch(ctx, batch, logger, store)
			}
			return

		case msg := <-messages:
			batch = append(batch, msg)

			// Process batch when it reaches the desired size
			if len(batch) >= batchSize {
				processSingleBatch(ctx, batch, logger, store)
				batch = nil
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			// Process batch on timeout if there are any messages
			if len(batch) > 0 {
				processSingleBatch(ctx, batch, logger, store)
				batch = nil
			}
			timer.Reset(batchTimeout)
		}
	}
}

func processSingleBatch(ctx context.Context, batch []model.EventMessage, logger log.Logger, store batchStore) {
	if len(batch) == 0 {
		return
	}

	events := make([]model.Event, 0, len(batch))
	for _, msg := range batch {
		events = append(events, msg.ToEvent())
	}

	inserted, err := store.CreateBatch(events)
	if err != nil {
		logger.Error(ctx, "Failed to save batch of events: %v", err)
		return
	}

	logger.Info(ctx, "Processed batch of %d events, inserted %d", len(batch), inserted)
}
