package kafka

import (
	"context"
	"encoding/json"
	"maps"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Message is the transport-neutral view of a Kafka record.
type Message struct {
	Key       string // partition key: the booking or ticket id
	Value     []byte // JSON payload
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderRetryCount    = "retry-count"
	HeaderOriginalTopic = "original-topic"
)

// MessageHandler returns nil when the message was processed and may be committed.
type MessageHandler func(ctx context.Context, msg Message) error

type EventOption func(*Message)

// WithHeader sets an arbitrary header. Empty values are skipped.
func WithHeader(name, value string) EventOption {
	return func(m *Message) {
		if value != "" {
			m.Headers[name] = value
		}
	}
}

func WithCorrelationID(id string) EventOption { return WithHeader(HeaderCorrelationID, id) }

func WithSchemaVersion(version string) EventOption { return WithHeader(HeaderSchemaVersion, version) }

func WithSource(source string) EventOption { return WithHeader(HeaderSource, source) }

// NewEvent JSON-encodes payload into a message keyed by key and stamps the
// event id, type and timestamp headers.
func NewEvent(eventType, key string, payload any, opts ...EventOption) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now().UTC()
	msg := Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderTimestamp: now.Format(time.RFC3339),
		},
	}
	WithHeader(HeaderEventType, eventType)(&msg)
	for _, opt := range opts {
		opt(&msg)
	}
	return msg, nil
}

func (m Message) Decode(v any) error { return json.Unmarshal(m.Value, v) }

func (m Message) EventID() string { return m.Headers[HeaderEventID] }

func (m Message) EventType() string { return m.Headers[HeaderEventType] }

func (m Message) CorrelationID() string { return m.Headers[HeaderCorrelationID] }

// RetryCount reads the retry-count header; a missing or garbled value counts as zero.
func (m Message) RetryCount() int {
	n, err := strconv.Atoi(m.Headers[HeaderRetryCount])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Retried returns a copy with the retry counter bumped. The receiver's headers are untouched.
func (m Message) Retried() Message {
	headers := maps.Clone(m.Headers)
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers[HeaderRetryCount] = strconv.Itoa(m.RetryCount() + 1)
	m.Headers = headers
	return m
}

// Middleware wraps a publish or a consume step.
type Middleware func(ctx context.Context, msg Message, next MessageHandler) error

type (
	ProducerMiddleware = Middleware
	ConsumerMiddleware = Middleware
)

// chain applies mws so that mws[0] runs outermost.
func chain(final MessageHandler, mws []Middleware) MessageHandler {
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], h
		h = func(ctx context.Context, m Message) error { return mw(ctx, m, next) }
	}
	return h
}
