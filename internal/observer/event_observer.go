package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TranslationEvent represents one lifecycle event of a translation or
// analysis request.
type TranslationEvent struct {
	EventType    EventType              `json:"event_type"`
	Timestamp    time.Time              `json:"timestamp"`
	RequestID    string                 `json:"request_id,omitempty"`
	Model        string                 `json:"model,omitempty"`
	Duration     time.Duration          `json:"duration"`
	Success      bool                   `json:"success"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of translation event
type EventType string

const (
	// ModelCallStarted when an attempt against the model API begins
	ModelCallStarted EventType = "model_call_started"
	// ModelCallCompleted when an attempt succeeds
	ModelCallCompleted EventType = "model_call_completed"
	// ModelCallFailed when an attempt fails
	ModelCallFailed EventType = "model_call_failed"
	// TranslationCompleted when a full translation flow finishes
	TranslationCompleted EventType = "translation_completed"
	// TranslationFailed when a full translation flow fails
	TranslationFailed EventType = "translation_failed"
	// AnalysisCompleted when an analysis flow finishes
	AnalysisCompleted EventType = "analysis_completed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event TranslationEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event TranslationEvent)
}

// LoggingObserver logs translation events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles translation events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event TranslationEvent) {
	fields := logrus.Fields{
		"event_type": event.EventType,
		"duration":   event.Duration,
		"success":    event.Success,
	}

	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if event.Model != "" {
		fields["model"] = event.Model
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case ModelCallStarted:
		o.logger.WithFields(fields).Info("Model call started")
	case ModelCallCompleted:
		o.logger.WithFields(fields).Info("Model call completed")
	case ModelCallFailed:
		o.logger.WithFields(fields).Error("Model call failed")
	case TranslationCompleted:
		o.logger.WithFields(fields).Info("Translation completed")
	case TranslationFailed:
		o.logger.WithFields(fields).Error("Translation failed")
	case AnalysisCompleted:
		o.logger.WithFields(fields).Info("Analysis completed")
	default:
		o.logger.WithFields(fields).Info("Translation event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from translation events
type MetricsObserver struct {
	mu              sync.RWMutex
	totalCalls      int64
	successfulCalls int64
	failedCalls     int64
	totalCallTime   time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles translation events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event TranslationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ModelCallStarted:
		o.totalCalls++
	case ModelCallCompleted:
		o.successfulCalls++
		o.totalCallTime += event.Duration
	case ModelCallFailed:
		o.failedCalls++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgCallTime := time.Duration(0)
	if o.successfulCalls > 0 {
		avgCallTime = o.totalCallTime / time.Duration(o.successfulCalls)
	}

	return map[string]interface{}{
		"total_model_calls":      o.totalCalls,
		"successful_model_calls": o.successfulCalls,
		"failed_model_calls":     o.failedCalls,
		"total_call_time":        o.totalCallTime,
		"avg_call_time":          avgCallTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	logger    *logrus.Logger
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(logger *logrus.Logger) Subject {
	return &EventPublisher{
		logger:    logger,
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event TranslationEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					p.logger.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
