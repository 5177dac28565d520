package gateway

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "go-translation-studio/internal/errors"
	"go-translation-studio/internal/observer"
	"go-translation-studio/pkg/models"

	"github.com/sirupsen/logrus"
)

// stubCaller fails for the models listed in failing and echoes otherwise.
type stubCaller struct {
	failing map[string]error
	calls   []string
}

func (c *stubCaller) Complete(ctx context.Context, model, prompt string) (string, error) {
	c.calls = append(c.calls, model)
	if err, ok := c.failing[model]; ok {
		return "", err
	}
	return "response from " + model, nil
}

func newTestGateway(caller Caller) *Gateway {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewGateway(caller, "model-a", "model-b", log, observer.NewEventPublisher(log))
}

func TestCallPrimarySucceeds(t *testing.T) {
	caller := &stubCaller{}
	gw := newTestGateway(caller)

	outcome, err := gw.Call(context.Background(), "prompt", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if outcome.Text != "response from model-a" {
		t.Errorf("Expected primary response, got %q", outcome.Text)
	}
	if outcome.ModelUsed != models.ModelPrimary {
		t.Errorf("Expected primary role, got %q", outcome.ModelUsed)
	}
	if len(caller.calls) != 1 {
		t.Errorf("Expected single attempt, got %d", len(caller.calls))
	}
}

func TestCallFallsBackOnPrimaryFailure(t *testing.T) {
	caller := &stubCaller{failing: map[string]error{"model-a": errors.New("rate limited")}}
	gw := newTestGateway(caller)

	outcome, err := gw.Call(context.Background(), "prompt", true)
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}

	if outcome.Model != "model-b" {
		t.Errorf("Expected fallback model, got %q", outcome.Model)
	}
	if outcome.ModelUsed != models.ModelFallback {
		t.Errorf("Expected fallback role, got %q", outcome.ModelUsed)
	}
	if len(outcome.Attempts) != 2 {
		t.Fatalf("Expected two recorded attempts, got %d", len(outcome.Attempts))
	}
	if outcome.Attempts[0].Succeeded || !outcome.Attempts[1].Succeeded {
		t.Errorf("Expected failed primary and successful fallback, got %+v", outcome.Attempts)
	}
}

func TestCallBothModelsFail(t *testing.T) {
	caller := &stubCaller{failing: map[string]error{
		"model-a": errors.New("primary down"),
		"model-b": errors.New("fallback down"),
	}}
	gw := newTestGateway(caller)

	_, err := gw.Call(context.Background(), "prompt", true)
	if err == nil {
		t.Fatal("Expected error when both models fail")
	}

	if !apperrors.IsType(err, apperrors.ErrorTypeUpstream) {
		t.Errorf("Expected upstream error type, got %v", err)
	}
	message := err.(*apperrors.AppError).Message
	if !strings.Contains(message, "model-a") || !strings.Contains(message, "model-b") {
		t.Errorf("Expected both model names in error, got %q", message)
	}
	if !strings.Contains(message, "翻译服务不可用") {
		t.Errorf("Expected service unavailable message, got %q", message)
	}
}

func TestCallWithoutFallback(t *testing.T) {
	caller := &stubCaller{failing: map[string]error{"model-a": errors.New("primary down")}}
	gw := newTestGateway(caller)

	_, err := gw.Call(context.Background(), "prompt", false)
	if err == nil {
		t.Fatal("Expected error when fallback is disabled")
	}
	if len(caller.calls) != 1 {
		t.Errorf("Expected no fallback attempt, got %d calls", len(caller.calls))
	}
}
