package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-translation-studio/internal/config"
	apperrors "go-translation-studio/internal/errors"
	"go-translation-studio/pkg/models"
	"go-translation-studio/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// stubService counts calls and returns canned results.
type stubService struct {
	translateCalls int
	ballCalls      int
	translateErr   error
	grouped        *models.GroupedAnalysisResult
	events         []models.StreamEvent
}

func (s *stubService) Translate(ctx context.Context, req models.TranslationRequest) (*models.TranslationResult, error) {
	s.translateCalls++
	if s.translateErr != nil {
		return nil, s.translateErr
	}
	return &models.TranslationResult{
		TranslatedText: "مرحبا",
		Analysis: models.ResultAnalysis{
			AnalysisReport: models.AnalysisReport{TextCharacteristics: "一般文本"},
		},
	}, nil
}

func (s *stubService) AnalyzeLegacy(ctx context.Context, text string, prompts []string) (*models.LegacyAnalysisResult, error) {
	return &models.LegacyAnalysisResult{Suggestions: []string{"保持简洁"}}, nil
}

func (s *stubService) AnalyzeBalls(ctx context.Context, req models.BallAnalysisRequest) (*models.BallAnalysisEnvelope, error) {
	s.ballCalls++
	return &models.BallAnalysisEnvelope{
		Data:     models.AnalysisReport{TextCharacteristics: "商务文本"},
		Duration: "34ms",
	}, nil
}

func (s *stubService) AnalyzeBallsGrouped(ctx context.Context, req models.BallAnalysisRequest) (*models.GroupedAnalysisResult, error) {
	s.ballCalls++
	if s.grouped != nil {
		return s.grouped, nil
	}
	return &models.GroupedAnalysisResult{
		Data:             models.AnalysisReport{TextCharacteristics: "一般文本"},
		IsGrouped:        true,
		TotalGroups:      2,
		SuccessfulGroups: 2,
		Duration:         "56ms",
	}, nil
}

func (s *stubService) AnalyzeBallsStreaming(ctx context.Context, req models.BallAnalysisRequest, emit func(models.StreamEvent)) (*models.GroupedAnalysisResult, error) {
	s.ballCalls++
	for _, event := range s.events {
		emit(event)
	}
	return &models.GroupedAnalysisResult{
		Data:             models.AnalysisReport{TextCharacteristics: "一般文本"},
		IsGrouped:        len(s.events) > 0,
		TotalGroups:      1,
		SuccessfulGroups: 1,
		Duration:         "78ms",
	}, nil
}

func (s *stubService) TestConnection(ctx context.Context) (string, error) {
	return "API连接成功", nil
}

func newTestHandler(svc *stubService) http.Handler {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		PrimaryModel:       "model-a",
		FallbackModel:      "model-b",
		MaxRequestBodySize: 1 << 20,
		LogDir:             "logs",
	}
	return NewHandler(svc, validation.NewRequestValidator(), cfg, log)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func TestTranslateSuccess(t *testing.T) {
	svc := &stubService{}
	handler := newTestHandler(svc)

	w := postJSON(t, handler, "/api/translate/claude", `{"text": "你好", "mode": "zh-ar"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data object, got %v", body["data"])
	}
	if data["translatedText"] != "مرحبا" {
		t.Errorf("Expected translation in data, got %v", data["translatedText"])
	}
	if svc.translateCalls != 1 {
		t.Errorf("Expected one service call, got %d", svc.translateCalls)
	}
}

func TestTranslateEmptyTextRejected(t *testing.T) {
	svc := &stubService{}
	handler := newTestHandler(svc)

	w := postJSON(t, handler, "/api/translate/claude", `{"text": "   ", "mode": "zh-ar"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("Expected success false, got %v", body["success"])
	}
	if body["message"] != "文本不能为空" {
		t.Errorf("Expected empty text message, got %v", body["message"])
	}
	if svc.translateCalls != 0 {
		t.Errorf("Expected no service call, got %d", svc.translateCalls)
	}
}

func TestTranslateInvalidModeRejected(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/claude", `{"text": "你好", "mode": "zh-en"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["message"] != "翻译模式无效" {
		t.Errorf("Expected invalid mode message, got %s", w.Body.String())
	}
}

func TestTranslateMalformedBody(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/claude", `{"text": `)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["message"] != "请求格式无效" {
		t.Errorf("Expected malformed body message, got %s", w.Body.String())
	}
}

func TestTranslateServiceErrorStatus(t *testing.T) {
	svc := &stubService{translateErr: apperrors.NewUpstreamError("翻译服务不可用", nil)}
	handler := newTestHandler(svc)

	w := postJSON(t, handler, "/api/translate/claude", `{"text": "你好", "mode": "zh-ar"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", w.Code)
	}
	if decodeBody(t, w)["message"] != "翻译服务不可用" {
		t.Errorf("Expected upstream message, got %s", w.Body.String())
	}
}

func TestAnalyzeLegacyRequiresPrompts(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/analyze", `{"text": "你好", "prompts": []}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["message"] != "请选择分析功能" {
		t.Errorf("Expected prompts message, got %s", w.Body.String())
	}
}

func TestAnalyzeBallsRequiresBalls(t *testing.T) {
	svc := &stubService{}
	handler := newTestHandler(svc)

	w := postJSON(t, handler, "/api/translate/analyze-with-balls", `{"text": "你好", "selectedBalls": [], "mode": "zh-ar"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["message"] != "请选择分析功能球" {
		t.Errorf("Expected balls message, got %s", w.Body.String())
	}
	if svc.ballCalls != 0 {
		t.Errorf("Expected no service call, got %d", svc.ballCalls)
	}
}

func TestAnalyzeBallsEnvelope(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/analyze-with-balls", `{"text": "你好", "selectedBalls": [{"id": "text-features"}], "mode": "zh-ar"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}
	if body["duration"] != "34ms" {
		t.Errorf("Expected duration in envelope, got %v", body["duration"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["text_characteristics"] != "商务文本" {
		t.Errorf("Expected analysis data, got %v", body["data"])
	}
}

func TestAnalyzeBallsGroupedInvalidGroupSize(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/analyze-with-balls-grouped",
		`{"text": "你好", "selectedBalls": [{"id": "text-features"}, {"id": "terminology"}], "mode": "zh-ar", "groupSize": 4}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["message"] != "分组分析只支持2个或3个功能球一组" {
		t.Errorf("Expected group size message, got %s", w.Body.String())
	}
}

func TestAnalyzeBallsGroupedEnvelope(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/analyze-with-balls-grouped",
		`{"text": "你好", "selectedBalls": [{"id": "text-features"}, {"id": "terminology"}, {"id": "suggestions"}], "mode": "zh-ar", "groupSize": 2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["isGrouped"] != true {
		t.Errorf("Expected isGrouped true, got %v", body["isGrouped"])
	}
	if body["totalGroups"] != float64(2) {
		t.Errorf("Expected two groups, got %v", body["totalGroups"])
	}
	if body["successfulGroups"] != float64(2) {
		t.Errorf("Expected two successful groups, got %v", body["successfulGroups"])
	}
}

func TestAnalyzeBallsStreamingEvents(t *testing.T) {
	svc := &stubService{events: []models.StreamEvent{
		{Type: models.StreamEventStart, TotalGroups: 1},
		{Type: models.StreamEventComplete, TotalGroups: 1, CompletedGroups: 1},
	}}
	handler := newTestHandler(svc)

	w := postJSON(t, handler, "/api/translate/analyze-with-balls-streaming",
		`{"text": "你好", "selectedBalls": [{"id": "text-features"}, {"id": "terminology"}, {"id": "suggestions"}], "mode": "zh-ar"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("Expected event stream content type, got %q", ct)
	}

	payload := w.Body.String()
	if !strings.Contains(payload, models.StreamEventStart) {
		t.Errorf("Expected start event in stream, got %q", payload)
	}
	if !strings.Contains(payload, models.StreamEventComplete) {
		t.Errorf("Expected complete event in stream, got %q", payload)
	}
}

func TestAnalyzeBallsStreamingShortCircuitJSON(t *testing.T) {
	handler := newTestHandler(&stubService{})

	w := postJSON(t, handler, "/api/translate/analyze-with-balls-streaming",
		`{"text": "你好", "selectedBalls": [{"id": "text-features"}], "mode": "zh-ar"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Expected JSON content type for ungrouped request, got %q", ct)
	}

	body := decodeBody(t, w)
	if body["isGrouped"] != false {
		t.Errorf("Expected isGrouped false, got %v", body["isGrouped"])
	}
	if body["isComplete"] != true {
		t.Errorf("Expected isComplete true, got %v", body["isComplete"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["status"] != "ok" {
		t.Errorf("Expected ok status, got %v", body["status"])
	}
	if body["timestamp"] == nil {
		t.Error("Expected timestamp in health response")
	}
}

func TestConnectionTestEndpoint(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/translate/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Claude API连接成功" {
		t.Errorf("Expected connection message, got %v", body["message"])
	}
	modelConfig, ok := body["modelConfig"].(map[string]interface{})
	if !ok || modelConfig["primary"] != "model-a" || modelConfig["fallback"] != "model-b" {
		t.Errorf("Expected model config in response, got %v", body["modelConfig"])
	}
}
