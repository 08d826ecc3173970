// Package kafka ingests domain events published by the CRUD layer (status
// changes, renewal reminders, document updates) and forwards them to the
// notification factory. Scanner-originated events never pass through here.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"contract-service/internal/logging"
	"contract-service/internal/models"
	"contract-service/internal/notification"
)

type Config struct {
	Broker  string
	Topic   string
	GroupID string
}

type Consumer struct {
	reader *kafka.Reader
	sink   notification.EventSink
	logger *logging.Logger
}

func NewConsumer(cfg Config, sink notification.EventSink, logger *logging.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Broker},
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, sink: sink, logger: logger}
}

// contractEvent is the wire shape the CRUD layer publishes.
type contractEvent struct {
	Kind          string `json:"kind"`
	ContractID    int64  `json:"contract_id"`
	UserID        int64  `json:"user_id"`
	Message       string `json:"message"`
	ContractTitle string `json:"contract_title"`
	EndDate       string `json:"end_date"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	DocumentName  string `json:"document_name"`
}

// Start consumes until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Infof("Kafka consumer started on topic %s", c.reader.Config().Topic)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Errorf("Read message failed: %v", err)
			continue
		}

		var ev contractEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.logger.Errorf("Unmarshal message failed: %v", err)
			continue
		}

		kind := models.EventKind(ev.Kind)
		if !kind.Valid() || ev.ContractID < 1 || ev.UserID < 1 {
			c.logger.Errorf("Invalid message: missing or unknown kind, contract_id, or user_id")
			continue
		}

		event := models.NotificationEvent{
			ContractID: ev.ContractID,
			UserID:     ev.UserID,
			Kind:       kind,
			Message:    ev.Message,
			OccurredAt: time.Now(),
			Meta: models.EventMeta{
				ContractID:    ev.ContractID,
				ContractTitle: ev.ContractTitle,
				EndDate:       ev.EndDate,
				OldStatus:     ev.OldStatus,
				NewStatus:     ev.NewStatus,
				DocumentName:  ev.DocumentName,
			},
		}
		if _, err := c.sink.CreateFromEvent(ctx, event); err != nil {
			c.logger.Errorf("Failed to create notification from %s event for contract %d: %v", kind, ev.ContractID, err)
			continue
		}
		c.logger.Infof("Processed %s event for contract %d", kind, ev.ContractID)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Failed to close Kafka reader: %v", err)
	}
}
