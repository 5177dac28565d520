package gateway

import (
	"context"
	"fmt"
	"time"

	apperrors "go-translation-studio/internal/errors"
	"go-translation-studio/internal/observer"
	"go-translation-studio/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Gateway routes prompts to the configured primary model, retrying once
// against the fallback model on failure. Failures are not remembered across
// calls; every call starts with the primary model.
type Gateway struct {
	caller        Caller
	primaryModel  string
	fallbackModel string
	logger        *logrus.Logger
	events        observer.Subject
}

// NewGateway creates a model gateway.
func NewGateway(caller Caller, primaryModel, fallbackModel string, logger *logrus.Logger, events observer.Subject) *Gateway {
	return &Gateway{
		caller:        caller,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		logger:        logger,
		events:        events,
	}
}

// PrimaryModel returns the configured primary model id.
func (g *Gateway) PrimaryModel() string {
	return g.primaryModel
}

// FallbackModel returns the configured fallback model id.
func (g *Gateway) FallbackModel() string {
	return g.fallbackModel
}

// Call completes the prompt, falling back to the secondary model when the
// primary attempt fails and allowFallback is set. When both attempts fail the
// returned error names both models and carries both failure messages.
func (g *Gateway) Call(ctx context.Context, prompt string, allowFallback bool) (*models.ModelCallOutcome, error) {
	callID := uuid.NewString()
	startTime := time.Now()

	g.logger.WithFields(logrus.Fields{
		"call_id":       callID,
		"prompt_length": len(prompt),
	}).Info("开始API调用")

	text, primaryDuration, primaryErr := g.attempt(ctx, callID, g.primaryModel, models.ModelPrimary, prompt)
	if primaryErr == nil {
		return &models.ModelCallOutcome{
			Text:       text,
			Model:      g.primaryModel,
			ModelUsed:  models.ModelPrimary,
			DurationMs: time.Since(startTime).Milliseconds(),
			Attempts: []models.CallAttempt{
				{Model: g.primaryModel, Role: models.ModelPrimary, DurationMs: primaryDuration.Milliseconds(), Succeeded: true},
			},
		}, nil
	}

	if !allowFallback {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("翻译服务错误: %v", primaryErr), primaryErr)
	}

	g.logger.WithFields(logrus.Fields{
		"call_id": callID,
		"model":   g.fallbackModel,
	}).Info("尝试使用备用模型")

	text, fallbackDuration, fallbackErr := g.attempt(ctx, callID, g.fallbackModel, models.ModelFallback, prompt)
	attempts := []models.CallAttempt{
		{Model: g.primaryModel, Role: models.ModelPrimary, DurationMs: primaryDuration.Milliseconds(), Error: primaryErr.Error()},
		{Model: g.fallbackModel, Role: models.ModelFallback, DurationMs: fallbackDuration.Milliseconds(), Succeeded: fallbackErr == nil},
	}
	if fallbackErr == nil {
		return &models.ModelCallOutcome{
			Text:       text,
			Model:      g.fallbackModel,
			ModelUsed:  models.ModelFallback,
			DurationMs: time.Since(startTime).Milliseconds(),
			Attempts:   attempts,
		}, nil
	}
	attempts[1].Error = fallbackErr.Error()

	message := fmt.Sprintf("翻译服务不可用: 主模型(%s)失败: %v, 备用模型(%s)失败: %v",
		g.primaryModel, primaryErr, g.fallbackModel, fallbackErr)
	return nil, apperrors.NewUpstreamError(message, fallbackErr)
}

// attempt runs a single model call, logging timing and outcome and notifying
// observers.
func (g *Gateway) attempt(ctx context.Context, callID, model string, role models.ModelRole, prompt string) (string, time.Duration, error) {
	start := time.Now()

	g.events.NotifyObservers(ctx, observer.TranslationEvent{
		EventType: observer.ModelCallStarted,
		Timestamp: start,
		RequestID: callID,
		Model:     model,
	})

	text, err := g.caller.Complete(ctx, model, prompt)
	duration := time.Since(start)

	fields := logrus.Fields{
		"call_id":     callID,
		"model":       model,
		"role":        role,
		"duration_ms": duration.Milliseconds(),
	}

	if err != nil {
		g.logger.WithError(err).WithFields(fields).Error("模型调用失败")
		g.events.NotifyObservers(ctx, observer.TranslationEvent{
			EventType:    observer.ModelCallFailed,
			Timestamp:    time.Now(),
			RequestID:    callID,
			Model:        model,
			Duration:     duration,
			ErrorMessage: err.Error(),
		})
		return "", duration, err
	}

	g.logger.WithFields(fields).Info("模型调用成功")
	g.events.NotifyObservers(ctx, observer.TranslationEvent{
		EventType: observer.ModelCallCompleted,
		Timestamp: time.Now(),
		RequestID: callID,
		Model:     model,
		Duration:  duration,
		Success:   true,
	})
	return text, duration, nil
}
