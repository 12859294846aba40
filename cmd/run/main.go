package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/internal/githubapi"
	"github.com/thep200/github-event-tracker/internal/model"
	"github.com/thep200/github-event-tracker/internal/tracker"
	"github.com/thep200/github-event-tracker/internal/ui"
	"github.com/thep200/github-event-tracker/pkg/db"
	"github.com/thep200/github-event-tracker/pkg/kafka"
	"github.com/thep200/github-event-tracker/pkg/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, _ := log.NewCslLogger()

	// Setup database. Thiếu cấu hình kết nối là lỗi chết khi khởi động
	mysql, err := db.NewMysql(config)
	if err != nil {
		logger.Error(ctx, "Invalid database configuration: %v", err)
		os.Exit(1)
	}

	eventMd, _ := model.NewEvent(config, logger, mysql)
	if err := mysql.Migrate(eventMd); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	if config.GithubApi.AccessToken == "" {
		logger.Warn(ctx, "GithubApi.AccessToken is not set. Requests may be rate-limited")
	}

	// Kafka is optional, events are stored directly either way
	var producer *kafka.Producer
	if len(config.Kafka.Brokers) > 0 && config.Kafka.Topic != "" {
		producer, err = kafka.NewProducer(config, logger, config.Kafka.Topic)
		if err != nil {
			logger.Error(ctx, "Failed to create kafka producer: %v", err)
			os.Exit(1)
		}
	}

	caller := githubapi.NewCaller(logger, config)
	trk, err := tracker.NewTracker(logger, config, eventMd, caller, publisherOrNil(producer))
	if err != nil {
		logger.Error(ctx, "Failed to create tracker: %v", err)
		os.Exit(1)
	}

	interval := time.Duration(config.Tracker.PollIntervalMs) * time.Millisecond
	scheduler, _ := tracker.NewScheduler(logger, trk, interval)

	// Read-only API server
	server, _ := ui.NewServer(logger, config, mysql, trk)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error(ctx, "API server error: %v", err)
		}
	}()

	logger.Info(ctx, "Starting GitHub event tracker, polling every %v", interval)
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")

	// Dừng phát chu kỳ mới và chờ chu kỳ đang chạy kết thúc
	cancel()
	<-done

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Failed to stop API server: %v", err)
	}
	if producer != nil {
		producer.Close()
	}
	mysql.Close()
}

// publisherOrNil tránh đưa một con trỏ nil có kiểu vào interface Publisher
func publisherOrNil(producer *kafka.Producer) tracker.Publisher {
	if producer == nil {
		return nil
	}
	return producer
}
