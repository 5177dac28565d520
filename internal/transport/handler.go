package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go-translation-studio/internal/config"
	apperrors "go-translation-studio/internal/errors"
	"go-translation-studio/internal/logger"
	"go-translation-studio/internal/service"
	"go-translation-studio/pkg/models"
	"go-translation-studio/pkg/validation"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LegacyAnalysisRequest is the body of the prompt-list analysis endpoint.
type LegacyAnalysisRequest struct {
	Text    string   `json:"text"`
	Prompts []string `json:"prompts"`
}

// Handler wires the HTTP surface to the translation service.
type Handler struct {
	svc       service.TranslationService
	validator *validation.RequestValidator
	cfg       *config.Config
	log       *logrus.Logger
}

// NewHandler builds the router with all middleware and routes configured.
func NewHandler(svc service.TranslationService, validator *validation.RequestValidator, cfg *config.Config, log *logrus.Logger) http.Handler {
	h := &Handler{svc: svc, validator: validator, cfg: cfg, log: log}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		requestLogger(log),
	)

	api := r.Group("/api")
	api.GET("/health", h.health)
	api.GET("/logs", h.readLogs)

	translate := api.Group("/translate")
	translate.GET("/test", h.testConnection)
	translate.POST("/claude", h.translate)
	translate.POST("/analyze", h.analyzeLegacy)
	translate.POST("/analyze-with-balls", h.analyzeBalls)
	translate.POST("/analyze-with-balls-grouped", h.analyzeBallsGrouped)
	translate.POST("/analyze-with-balls-streaming", h.analyzeBallsStreaming)

	// Shorthand kept for clients that post to the group root.
	api.POST("/translate", h.translate)

	return r
}

func (h *Handler) translate(c *gin.Context) {
	var req models.TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidationError("请求格式无效", err))
		return
	}

	if err := h.validator.ValidateTranslation(req); err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.svc.Translate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

func (h *Handler) analyzeLegacy(c *gin.Context) {
	var req LegacyAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidationError("请求格式无效", err))
		return
	}

	if err := h.validator.ValidateLegacyAnalysis(req.Text, req.Prompts); err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.svc.AnalyzeLegacy(c.Request.Context(), req.Text, req.Prompts)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

func (h *Handler) analyzeBalls(c *gin.Context) {
	var req models.BallAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidationError("请求格式无效", err))
		return
	}

	if err := h.validator.ValidateBallAnalysis(req, false); err != nil {
		h.respondError(c, err)
		return
	}

	envelope, err := h.svc.AnalyzeBalls(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"data":         envelope.Data,
		"originalData": envelope.OriginalData,
		"duration":     envelope.Duration,
	})
}

func (h *Handler) analyzeBallsGrouped(c *gin.Context) {
	var req models.BallAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidationError("请求格式无效", err))
		return
	}

	if err := h.validator.ValidateBallAnalysis(req, true); err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.svc.AnalyzeBallsGrouped(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"data":             result.Data,
		"originalData":     result.OriginalData,
		"isGrouped":        result.IsGrouped,
		"totalGroups":      result.TotalGroups,
		"successfulGroups": result.SuccessfulGroups,
		"failedGroups":     result.FailedGroups,
		"groupResults":     result.GroupResults,
		"duration":         result.Duration,
	})
}

func (h *Handler) analyzeBallsStreaming(c *gin.Context) {
	var req models.BallAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidationError("请求格式无效", err))
		return
	}

	if err := h.validator.ValidateBallAnalysis(req, true); err != nil {
		h.respondError(c, err)
		return
	}

	// Headers go out with the first event, so the short-circuit path can
	// still answer with a plain JSON body.
	streaming := false
	emit := func(event models.StreamEvent) {
		if !streaming {
			streaming = true
			c.Writer.Header().Set("Content-Type", "text/event-stream")
			c.Writer.Header().Set("Cache-Control", "no-cache")
			c.Writer.Header().Set("Connection", "keep-alive")
			c.Writer.WriteHeader(http.StatusOK)
		}
		if err := sse.Encode(c.Writer, sse.Event{Data: event}); err != nil {
			h.log.WithError(err).Warn("写入流式事件失败")
			return
		}
		c.Writer.Flush()
	}

	result, err := h.svc.AnalyzeBallsStreaming(c.Request.Context(), req, emit)
	if err != nil {
		if !streaming {
			h.respondError(c, err)
			return
		}
		emit(models.StreamEvent{Type: models.StreamEventError, Message: err.Error()})
		return
	}

	if !streaming {
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"data":            result.Data,
			"originalData":    result.OriginalData,
			"isGrouped":       false,
			"totalGroups":     result.TotalGroups,
			"completedGroups": result.SuccessfulGroups,
			"isComplete":      true,
			"duration":        result.Duration,
		})
	}
}

func (h *Handler) testConnection(c *gin.Context) {
	response, err := h.svc.TestConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "API连接失败",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Claude API连接成功",
		"response": response,
		"modelConfig": gin.H{
			"primary":  h.cfg.PrimaryModel,
			"fallback": h.cfg.FallbackModel,
		},
	})
}

func (h *Handler) health(c *gin.Context) {
	h.log.Info("Health check requested")
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// readLogs returns the structured log entries of one day, newest first.
func (h *Handler) readLogs(c *gin.Context) {
	lines, err := logger.ReadDay(h.cfg.LogDir, c.Query("date"))
	if err != nil {
		h.log.WithError(err).Error("Failed to read logs")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "读取日志失败",
		})
		return
	}

	entries := make([]json.RawMessage, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, json.RawMessage(line))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)
	message := err.Error()
	if appErr, ok := err.(*apperrors.AppError); ok {
		message = appErr.Message
	}

	h.log.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// requestLogger records every API request body before handling.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			var body []byte
			if c.Request.Body != nil {
				body, _ = io.ReadAll(c.Request.Body)
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
			}

			log.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"body":   string(body),
				"query":  c.Request.URL.RawQuery,
			}).Info("API请求输入")
		}
		c.Next()
	}
}
