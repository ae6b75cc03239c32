// Package notify holds the toast sinks that add-to-cart outcomes are reported
// to. All sinks are fire-and-forget and safe for concurrent use.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/cart"
	"github.com/imrishuroy/go-storefront-cards/internal/metrics"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one user-facing notification.
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Multi fans a notification out to every sink in order.
type Multi []cart.Notifier

func (m Multi) NotifySuccess(ctx context.Context, message string) {
	for _, n := range m {
		if n != nil {
			n.NotifySuccess(ctx, message)
		}
	}
}

func (m Multi) NotifyFailure(ctx context.Context, message string) {
	for _, n := range m {
		if n != nil {
			n.NotifyFailure(ctx, message)
		}
	}
}

// Recorder keeps toasts so they can be returned to an HTTP caller.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) NotifySuccess(ctx context.Context, message string) {
	r.add(Toast{Level: LevelSuccess, Message: message})
}

func (r *Recorder) NotifyFailure(ctx context.Context, message string) {
	r.add(Toast{Level: LevelError, Message: message})
}

func (r *Recorder) add(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

// Toasts returns a copy of the recorded toasts, oldest first.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// LogSink writes each toast as a structured log line.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) NotifySuccess(ctx context.Context, message string) {
	s.Logger.Info("toast", zap.String("level", string(LevelSuccess)), zap.String("message", message),
		zap.String("correlation_id", cart.CorrelationID(ctx)))
}

func (s LogSink) NotifyFailure(ctx context.Context, message string) {
	s.Logger.Warn("toast", zap.String("level", string(LevelError)), zap.String("message", message),
		zap.String("correlation_id", cart.CorrelationID(ctx)))
}

// MetricsSink counts toasts by outcome.
type MetricsSink struct {
	Metrics *metrics.Registry
}

func (s MetricsSink) NotifySuccess(ctx context.Context, message string) {
	s.Metrics.Notifications.WithLabelValues("success").Inc()
}

func (s MetricsSink) NotifyFailure(ctx context.Context, message string) {
	s.Metrics.Notifications.WithLabelValues("failure").Inc()
}
