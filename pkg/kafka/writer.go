package kafka

import (
	"fmt"
	"time"

	kafka_config "drivent/pkg/kafka/config"
	"drivent/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

const (
	HeaderDLQError         = "dlq-error"
	HeaderDLQTimestamp     = "dlq-timestamp"
	HeaderDLQConsumerGroup = "dlq-consumer-group"

	dlqMaxAttempts = 3
)

// newWriter keys messages with the hash balancer so every event of one booking
// or ticket lands on the same partition.
func newWriter(cfg *kafka_config.Config, topic string, log *logger.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: requiredAcks(cfg.Producer.RequiredAcks),
		Compression:  compressionCodec(cfg.Producer.Compression),
		MaxAttempts:  cfg.Producer.MaxAttempts,
		BatchTimeout: cfg.Producer.BatchTimeout,
		Async:        cfg.Producer.Async,
		ErrorLogger:  errorLogger(log, topic),
	}
}

// newDLQWriter is always synchronous and waits for every replica.
func newDLQWriter(cfg *kafka_config.Config, topic string, log *logger.Logger) *kafka.Writer {
	w := newWriter(cfg, topic, log)
	w.RequiredAcks = kafka.RequireAll
	w.MaxAttempts = dlqMaxAttempts
	w.Async = false
	return w
}

func requiredAcks(n int) kafka.RequiredAcks {
	switch n {
	case kafka_config.AcksNone:
		return kafka.RequireNone
	case kafka_config.AcksLeader:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	case "none":
		return compress.None
	default:
		return compress.Snappy
	}
}

func errorLogger(log *logger.Logger, topic string) kafka.Logger {
	return kafka.LoggerFunc(func(msg string, args ...any) {
		log.Error("kafka client error", "topic", topic, "detail", fmt.Sprintf(msg, args...))
	})
}

// deadLetter copies msg and stamps where it came from and why it failed.
func deadLetter(msg Message, sourceTopic string, cause error, extra map[string]string) kafka.Message {
	headers := make(map[string]string, len(msg.Headers)+3+len(extra))
	for k, v := range msg.Headers {
		headers[k] = v
	}
	for k, v := range extra {
		headers[k] = v
	}
	now := time.Now()
	headers[HeaderOriginalTopic] = sourceTopic
	headers[HeaderDLQError] = cause.Error()
	headers[HeaderDLQTimestamp] = now.UTC().Format(time.RFC3339)
	msg.Headers = headers

	return toKafkaMessage(msg, now)
}

func toKafkaMessage(msg Message, ts time.Time) kafka.Message {
	kafkaMsg := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  ts,
	}
	for k, v := range msg.Headers {
		kafkaMsg.Headers = append(kafkaMsg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafkaMsg
}

func fromKafkaMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}
	for _, header := range kafkaMsg.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}
	return msg
}
