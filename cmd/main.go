package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"contract-service/internal/api"
	"contract-service/internal/config"
	"contract-service/internal/db"
	"contract-service/internal/dispatch"
	"contract-service/internal/kafka"
	"contract-service/internal/logging"
	"contract-service/internal/models"
	"contract-service/internal/notification"
	"contract-service/internal/scheduler"
	"contract-service/pkg/email"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Connect to database
	dbConn, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Errorf("Failed to connect to database: %v", err)
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbConn.Close()

	// Channel dispatchers
	hub := dispatch.NewHub(logger)
	mail := &email.Sender{
		Server:   cfg.Email.SMTPServer,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		FromName: cfg.Email.FromName,
	}
	dispatchers := map[models.Channel]dispatch.Dispatcher{
		models.ChannelInApp:  dispatch.InApp{},
		models.ChannelEmail:  dispatch.NewEmail(mail, dbConn, cfg.Email.RatePerSecond),
		models.ChannelSystem: dispatch.NewSystem(hub),
	}

	// Notification core
	resolver := notification.NewResolver(dbConn)
	factory := notification.NewFactory(dbConn, dbConn, resolver, logger)
	scanner := notification.NewScanner(dbConn, factory, logger)
	processor := notification.NewProcessor(dbConn, dbConn, dispatchers, logger)
	cleanup := notification.NewCleanup(dbConn, logger)

	// Periodic jobs
	scanAt, err := scheduler.ParseTimeOfDay(cfg.Scheduler.ScanAt)
	if err != nil {
		log.Fatalf("Invalid SCAN_AT: %v", err)
	}
	cleanupAt, err := scheduler.ParseTimeOfDay(cfg.Scheduler.CleanupAt)
	if err != nil {
		log.Fatalf("Invalid CLEANUP_AT: %v", err)
	}
	sched := scheduler.New(logger, cfg.Scheduler.ShutdownGrace)
	sched.AddDaily("expiration-scan", scanAt, scanner.Run)
	sched.AddDaily("retention-cleanup", cleanupAt, cleanup.Run)
	sched.AddInterval("queue-processor", cfg.Scheduler.ProcessInterval, processor.Run)
	sched.Start()

	// Domain-event consumer
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	consumer := kafka.NewConsumer(kafka.Config{
		Broker:  cfg.Kafka.Broker,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}, factory, logger)
	go consumer.Start(consumerCtx)

	// Start API server
	router := api.NewRouter(dbConn, hub, logger, cfg)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancelConsumer()
	consumer.Close()
	sched.Stop()
	logger.Infof("Service stopped")
}
