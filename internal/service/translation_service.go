package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-translation-studio/internal/factory"
	"go-translation-studio/internal/observer"
	"go-translation-studio/internal/parser"
	"go-translation-studio/internal/prompt"
	"go-translation-studio/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultGroupSize = 2

// ModelGateway is the calling surface the service needs from the gateway.
type ModelGateway interface {
	Call(ctx context.Context, prompt string, allowFallback bool) (*models.ModelCallOutcome, error)
	PrimaryModel() string
	FallbackModel() string
}

// TranslationService orchestrates prompt building, model calls and parsing
// for the translation and analysis flows.
type TranslationService interface {
	Translate(ctx context.Context, req models.TranslationRequest) (*models.TranslationResult, error)
	AnalyzeLegacy(ctx context.Context, text string, prompts []string) (*models.LegacyAnalysisResult, error)
	AnalyzeBalls(ctx context.Context, req models.BallAnalysisRequest) (*models.BallAnalysisEnvelope, error)
	AnalyzeBallsGrouped(ctx context.Context, req models.BallAnalysisRequest) (*models.GroupedAnalysisResult, error)
	AnalyzeBallsStreaming(ctx context.Context, req models.BallAnalysisRequest, emit func(models.StreamEvent)) (*models.GroupedAnalysisResult, error)
	TestConnection(ctx context.Context) (string, error)
}

// translationService implements TranslationService
type translationService struct {
	gateway  ModelGateway
	builders factory.BuilderFactory
	pool     *WorkerPool
	logger   *logrus.Logger
	events   observer.Subject
}

// NewTranslationService creates the orchestrator. The worker pool is started
// here and serves all grouped analyses for the lifetime of the service.
func NewTranslationService(
	gw ModelGateway,
	builders factory.BuilderFactory,
	pool *WorkerPool,
	logger *logrus.Logger,
	events observer.Subject,
) TranslationService {
	pool.Start()
	return &translationService{
		gateway:  gw,
		builders: builders,
		pool:     pool,
		logger:   logger,
		events:   events,
	}
}

// Translate runs the tier-appropriate flow: one model call for the fast and
// premium tiers, analysis followed by translation for the standard tier.
func (s *translationService) Translate(ctx context.Context, req models.TranslationRequest) (*models.TranslationResult, error) {
	requestID := uuid.NewString()
	start := time.Now()

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"text":       req.Text,
		"mode":       req.Mode,
		"quality":    req.Requirements.Quality,
	}).Info("开始翻译")

	if req.AnalysisForTranslation != nil {
		s.logger.WithField("request_id", requestID).Info("检测到已有分析内容，将传递给翻译流程")
	}

	builder := s.builders.CreateBuilder(req.Requirements.Quality)
	plan := builder.Build(req.Text, req.Mode, req.Requirements, req.AnalysisForTranslation)

	var result *models.TranslationResult
	var err error
	if plan.IsTwoStep {
		result, err = s.translateTwoStep(ctx, requestID, req, plan)
	} else {
		result, err = s.translateSingleStep(ctx, requestID, req, plan)
	}

	if err != nil {
		s.events.NotifyObservers(ctx, observer.TranslationEvent{
			EventType:    observer.TranslationFailed,
			Timestamp:    time.Now(),
			RequestID:    requestID,
			Duration:     time.Since(start),
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":      requestID,
		"translated_text": result.TranslatedText,
		"duration":        msString(time.Since(start)),
	}).Info("翻译完成")

	s.events.NotifyObservers(ctx, observer.TranslationEvent{
		EventType: observer.TranslationCompleted,
		Timestamp: time.Now(),
		RequestID: requestID,
		Duration:  time.Since(start),
		Success:   true,
	})

	return result, nil
}

func (s *translationService) translateSingleStep(ctx context.Context, requestID string, req models.TranslationRequest, plan prompt.Plan) (*models.TranslationResult, error) {
	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"quality":    req.Requirements.Quality,
	}).Info("使用单步翻译处理")

	outcome, err := s.gateway.Call(ctx, plan.Prompt, true)
	if err != nil {
		return nil, err
	}

	return parser.ParseTranslation(outcome.Text, req.Text), nil
}

func (s *translationService) translateTwoStep(ctx context.Context, requestID string, req models.TranslationRequest, plan prompt.Plan) (*models.TranslationResult, error) {
	s.logger.WithField("request_id", requestID).Info("使用分步化翻译处理")

	// Step one always runs, even with existing analysis: the adapted schema
	// only asks for what is still missing.
	step1Start := time.Now()
	s.logger.WithField("request_id", requestID).Info("第一步：开始翻译分析和策略")

	analysisOutcome, err := s.gateway.Call(ctx, plan.AnalysisPrompt, true)
	if err != nil {
		return nil, err
	}
	report := parser.ParseAnalysisStep(analysisOutcome.Text)
	merged := mergeReports(req.AnalysisForTranslation, report)

	s.logger.WithFields(logrus.Fields{
		"request_id":     requestID,
		"step1_duration": msString(time.Since(step1Start)),
	}).Info("翻译分析和策略完成")

	step2Start := time.Now()
	s.logger.WithField("request_id", requestID).Info("第二步：开始实际翻译")

	reportJSON, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize analysis report: %w", err)
	}
	translationPrompt := strings.Replace(plan.TranslationPrompt, prompt.ReportPlaceholder, string(reportJSON), 1)

	translationOutcome, err := s.gateway.Call(ctx, translationPrompt, true)
	if err != nil {
		return nil, err
	}
	result := parser.ParseTranslationStep(translationOutcome.Text, req.Text)

	// The final analysis carries the merged report plus the step-two fields.
	analyzedAt := result.Analysis.AnalyzedAt
	result.Analysis.AnalysisReport = merged
	result.Analysis.AnalysisReport.AnalyzedAt = analyzedAt

	s.logger.WithFields(logrus.Fields{
		"request_id":     requestID,
		"step2_duration": msString(time.Since(step2Start)),
	}).Info("分步翻译完成")

	return result, nil
}

// mergeReports combines an existing analysis with a freshly generated one.
// Existing scalar fields win; terminology is merged key-wise with existing
// entries winning on conflict. The strategy fields only step one produces are
// always taken from the new report.
func mergeReports(existing *models.AnalysisReport, generated models.AnalysisReport) models.AnalysisReport {
	if existing.IsEmpty() {
		return generated
	}

	merged := models.AnalysisReport{
		TextCharacteristics:            firstNonEmpty(existing.TextCharacteristics, generated.TextCharacteristics),
		InitialTranslationStrategy:     firstNonEmpty(existing.InitialTranslationStrategy, generated.InitialTranslationStrategy),
		IntentAudienceAnalysis:         firstNonEmpty(existing.IntentAudienceAnalysis, generated.IntentAudienceAnalysis),
		ReferenceTranslationAnalysis:   firstNonEmpty(existing.ReferenceTranslationAnalysis, generated.ReferenceTranslationAnalysis),
		DirectInstructionAnalysis:      firstNonEmpty(existing.DirectInstructionAnalysis, generated.DirectInstructionAnalysis),
		UnderGuidanceStrategy:          generated.UnderGuidanceStrategy,
		TerminologyTranslationStrategy: generated.TerminologyTranslationStrategy,
		FinalTranslateAdvice:           generated.FinalTranslateAdvice,
		AnalyzedAt:                     generated.AnalyzedAt,
	}

	if len(existing.TerminologyIdiomsAnalysis) > 0 || len(generated.TerminologyIdiomsAnalysis) > 0 {
		terms := make(map[string]string, len(existing.TerminologyIdiomsAnalysis)+len(generated.TerminologyIdiomsAnalysis))
		for k, v := range generated.TerminologyIdiomsAnalysis {
			terms[k] = v
		}
		for k, v := range existing.TerminologyIdiomsAnalysis {
			terms[k] = v
		}
		merged.TerminologyIdiomsAnalysis = terms
	}

	return merged
}

// AnalyzeLegacy runs the prompt-list analysis kept for older clients.
func (s *translationService) AnalyzeLegacy(ctx context.Context, text string, prompts []string) (*models.LegacyAnalysisResult, error) {
	requestID := uuid.NewString()
	start := time.Now()

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"text":       text,
		"prompts":    prompts,
	}).Info("开始分析")

	analysisPrompt := prompt.BuildLegacyPrompt(text, prompts)
	outcome, err := s.gateway.Call(ctx, analysisPrompt, true)
	if err != nil {
		return nil, err
	}

	result := parser.ParseLegacyAnalysis(outcome.Text, prompts)

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"duration":   msString(time.Since(start)),
	}).Info("分析完成")

	s.events.NotifyObservers(ctx, observer.TranslationEvent{
		EventType: observer.AnalysisCompleted,
		Timestamp: time.Now(),
		RequestID: requestID,
		Duration:  time.Since(start),
		Success:   true,
	})

	return result, nil
}

// TestConnection sends a fixed probe prompt through the gateway.
func (s *translationService) TestConnection(ctx context.Context) (string, error) {
	outcome, err := s.gateway.Call(ctx, `请说"API连接成功"`, true)
	if err != nil {
		return "", err
	}
	return outcome.Text, nil
}

func ballRequirements(req models.BallAnalysisRequest) models.Requirements {
	return models.Requirements{
		Intent:        req.Intent,
		Reference:     req.Reference,
		DirectRequest: req.DirectRequest,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func msString(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
