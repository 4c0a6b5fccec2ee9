package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers    []string
	GroupID    string
	MaxRetries int
	RetryDelay time.Duration
}

// messageWriter and messageReader are the parts of kafka.Writer and
// kafka.Reader the broker uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBroker maps each queue to a topic of the same name. Consumers of one
// GroupID share the partitions of a topic.
type KafkaBroker struct {
	writer    messageWriter
	newReader func(topic string) messageReader
	config    KafkaConfig

	mu      sync.Mutex
	readers []messageReader
	wg      sync.WaitGroup
}

func NewKafkaBroker(cfg KafkaConfig) (*KafkaBroker, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka broker list is empty")
	}
	if cfg.GroupID == "" {
		cfg.GroupID = "cardapio-api"
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	newReader := func(topic string) messageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   topic,
		})
	}

	return newKafkaBroker(cfg, writer, newReader), nil
}

func newKafkaBroker(cfg KafkaConfig, writer messageWriter, newReader func(topic string) messageReader) *KafkaBroker {
	return &KafkaBroker{
		writer:    writer,
		newReader: newReader,
		config:    cfg,
	}
}

func (b *KafkaBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	err := b.writer.WriteMessages(ctx, kafka.Message{
		Topic: queueName,
		Value: message,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (b *KafkaBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	reader := b.newReader(queueName)

	b.mu.Lock()
	b.readers = append(b.readers, reader)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				// context cancelled or reader closed
				return
			}
			b.handleMessage(ctx, reader, msg, handler, queueName)
		}
	}()

	return nil
}

// handleMessage retries in place, since a partition cannot skip ahead and
// come back. After MaxRetries the message goes to the dead letter topic.
func (b *KafkaBroker) handleMessage(ctx context.Context, reader messageReader, msg kafka.Message, handler MessageHandler, queueName string) {
	var err error
	for attempt := 0; ; attempt++ {
		if err = handler(ctx, msg.Value); err == nil {
			break
		}
		if attempt >= b.config.MaxRetries {
			b.deadLetter(ctx, queueName, msg, attempt, err)
			break
		}

		select {
		case <-ctx.Done():
			// not committed, redelivered after restart
			return
		case <-time.After(backoff(b.config.RetryDelay, attempt)):
		}
	}

	_ = reader.CommitMessages(ctx, msg)
}

func (b *KafkaBroker) deadLetter(ctx context.Context, queueName string, msg kafka.Message, retries int, cause error) {
	_ = b.writer.WriteMessages(ctx, kafka.Message{
		Topic: DeadLetterQueue(queueName),
		Key:   msg.Key,
		Value: msg.Value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: headerOriginalQueue, Value: []byte(queueName)},
			{Key: headerRetryCount, Value: []byte(strconv.Itoa(retries))},
			{Key: headerError, Value: []byte(cause.Error())},
		},
	})
}

func (b *KafkaBroker) Close() error {
	b.mu.Lock()
	readers := b.readers
	b.readers = nil
	b.mu.Unlock()

	var errs []error
	for _, r := range readers {
		errs = append(errs, r.Close())
	}
	b.wg.Wait()
	errs = append(errs, b.writer.Close())

	return errors.Join(errs...)
}
