package kafka

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrConsumerClosed = errors.New("kafka consumer is closed")
	ErrEmptyKey       = errors.New("message key cannot be empty")
	ErrEmptyValue     = errors.New("message value cannot be empty")
)

// ErrorType decides what the consumer does with a failed message.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeTransient failures are retried with backoff.
	ErrorTypeTransient
	// ErrorTypePermanent failures go straight to the dead letter topic.
	ErrorTypePermanent
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypePermanent:
		return "permanent"
	}
	return "unknown"
}

// HandlerError is how a message handler states whether its failure is worth retrying.
type HandlerError struct {
	Type   ErrorType
	Reason string
	Err    error
}

func (e *HandlerError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *HandlerError) Unwrap() error { return e.Err }

func NewTransientError(reason string, err error) *HandlerError {
	return &HandlerError{Type: ErrorTypeTransient, Reason: reason, Err: err}
}

func NewPermanentError(reason string, err error) *HandlerError {
	return &HandlerError{Type: ErrorTypePermanent, Reason: reason, Err: err}
}

// Last-resort substrings for errors that lost their type on the way up.
var transientHints = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"timeout",
	"deadline exceeded",
	"temporary failure",
	"server selection error",
}

// ClassifyError prefers an explicit *HandlerError, then typed driver and
// network errors, then message hints. Anything unrecognised is permanent.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr.Type
	}
	if isTransient(err) {
		return ErrorTypeTransient
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range transientHints {
		if strings.Contains(msg, hint) {
			return ErrorTypeTransient
		}
	}
	return ErrorTypePermanent
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var brokerErr kafka.Error
	if errors.As(err, &brokerErr) && brokerErr.Temporary() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func ShouldRetry(err error, attempt, maxRetries int) bool {
	return err != nil && attempt < maxRetries && ClassifyError(err) == ErrorTypeTransient
}
