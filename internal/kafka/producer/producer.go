package producer

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/internal/config"
	"storefront/internal/lib/logger/sl"
)

type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

func NewProducer(kafkaCfg *config.Kafka, log *slog.Logger) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(kafkaCfg.Brokers...),
		Topic:                  kafkaCfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		log:    log,
	}, nil
}

// SendMessage publishes one message. Messages with the same key land on the
// same partition.
func (p *Producer) SendMessage(ctx context.Context, key, message []byte) error {
	msg := kafka.Message{
		Key:   key,
		Value: message,
	}

	err := p.writer.WriteMessages(ctx, msg)
	if err != nil {
		p.log.Error("failed to send message to kafka", slog.String("topic", p.writer.Topic), sl.Err(err))
		return err
	}

	p.log.Info("message sent to kafka", slog.String("topic", p.writer.Topic), slog.String("key", string(key)))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ProducerIface
type ProducerIface interface {
	SendMessage(ctx context.Context, key, message []byte) error
}
