package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-translation-studio/internal/parser"
	"go-translation-studio/internal/prompt"
	"go-translation-studio/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AnalyzeBalls runs all selected balls in a single model call.
func (s *translationService) AnalyzeBalls(ctx context.Context, req models.BallAnalysisRequest) (*models.BallAnalysisEnvelope, error) {
	requestID := uuid.NewString()

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"text":       req.Text,
		"ball_ids":   ballIDs(req.SelectedBalls),
		"mode":       req.Mode,
	}).Info("开始功能球分析")

	envelope, err := s.runBallAnalysis(ctx, req, req.SelectedBalls)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"duration":   envelope.Duration,
	}).Info("功能球分析完成")

	return envelope, nil
}

// runBallAnalysis is the shared single-call path: build the combined prompt,
// call the model, parse into both the raw and translation-compatible shapes.
func (s *translationService) runBallAnalysis(ctx context.Context, req models.BallAnalysisRequest, balls []models.AnalysisBall) (*models.BallAnalysisEnvelope, error) {
	start := time.Now()

	ballPrompt := prompt.BuildBallPrompt(req.Text, balls, ballRequirements(req), req.Mode)
	outcome, err := s.gateway.Call(ctx, ballPrompt, true)
	if err != nil {
		return nil, err
	}

	raw := parser.ParseBallAnalysis(outcome.Text)
	return &models.BallAnalysisEnvelope{
		Data:         raw.ToTranslationFormat(),
		OriginalData: raw,
		Duration:     msString(time.Since(start)),
	}, nil
}

// AnalyzeBallsGrouped partitions the balls into fixed-size groups and runs
// the groups concurrently on the worker pool. With no more balls than the
// group size a single ungrouped call is made instead.
func (s *translationService) AnalyzeBallsGrouped(ctx context.Context, req models.BallAnalysisRequest) (*models.GroupedAnalysisResult, error) {
	requestID := uuid.NewString()
	start := time.Now()
	groupSize := normalizeGroupSize(req.GroupSize)

	s.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"text":        req.Text,
		"total_balls": len(req.SelectedBalls),
		"group_size":  groupSize,
		"ball_ids":    ballIDs(req.SelectedBalls),
	}).Info("开始分组分析")

	if len(req.SelectedBalls) <= groupSize {
		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"ball_count": len(req.SelectedBalls),
		}).Info("功能球数量较少，使用单次分析")

		envelope, err := s.runBallAnalysis(ctx, req, req.SelectedBalls)
		if err != nil {
			return nil, err
		}
		return &models.GroupedAnalysisResult{
			Data:             envelope.Data,
			OriginalData:     envelope.OriginalData,
			IsGrouped:        false,
			TotalGroups:      1,
			SuccessfulGroups: 1,
			Duration:         msString(time.Since(start)),
		}, nil
	}

	groups := splitGroups(req.SelectedBalls, groupSize)
	results := make([]models.GroupResult, len(groups))

	var wg sync.WaitGroup
	for i, group := range groups {
		i, group := i, group
		wg.Add(1)
		s.pool.Submit(func() {
			defer wg.Done()
			results[i] = s.analyzeGroup(ctx, requestID, i+1, req, group)
		})
	}
	wg.Wait()

	merged, successful, failed := mergeGroupResults(results)

	result := &models.GroupedAnalysisResult{
		Data:             merged.ToTranslationFormat(),
		OriginalData:     merged,
		IsGrouped:        true,
		TotalGroups:      len(groups),
		SuccessfulGroups: successful,
		FailedGroups:     failed,
		GroupResults:     results,
		Duration:         msString(time.Since(start)),
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":        requestID,
		"total_groups":      len(groups),
		"successful_groups": successful,
		"failed_groups":     failed,
		"total_duration":    result.Duration,
	}).Info("分组分析完成")

	return result, nil
}

// AnalyzeBallsStreaming runs the groups sequentially, emitting a progress
// event after each one. With no more balls than the group size no events are
// emitted and the returned result has IsGrouped unset, so the caller can
// answer with a plain response instead of a stream.
func (s *translationService) AnalyzeBallsStreaming(ctx context.Context, req models.BallAnalysisRequest, emit func(models.StreamEvent)) (*models.GroupedAnalysisResult, error) {
	requestID := uuid.NewString()
	start := time.Now()
	groupSize := normalizeGroupSize(req.GroupSize)

	s.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"text":        req.Text,
		"total_balls": len(req.SelectedBalls),
		"group_size":  groupSize,
		"ball_ids":    ballIDs(req.SelectedBalls),
	}).Info("开始流式分组分析")

	if len(req.SelectedBalls) <= groupSize {
		envelope, err := s.runBallAnalysis(ctx, req, req.SelectedBalls)
		if err != nil {
			return nil, err
		}
		return &models.GroupedAnalysisResult{
			Data:             envelope.Data,
			OriginalData:     envelope.OriginalData,
			IsGrouped:        false,
			TotalGroups:      1,
			SuccessfulGroups: 1,
			Duration:         msString(time.Since(start)),
		}, nil
	}

	groups := splitGroups(req.SelectedBalls, groupSize)

	emit(models.StreamEvent{
		Type:        models.StreamEventStart,
		TotalGroups: len(groups),
		GroupSize:   groupSize,
		Message:     "开始分组分析",
	})

	completed := 0
	results := make([]models.GroupResult, 0, len(groups))
	for i, group := range groups {
		emit(models.StreamEvent{
			Type:       models.StreamEventGroupStart,
			GroupIndex: i + 1,
			BallIDs:    ballIDs(group),
			Message:    fmt.Sprintf("开始分析第%d组", i+1),
		})

		groupResult := s.analyzeGroup(ctx, requestID, i+1, req, group)
		results = append(results, groupResult)

		if groupResult.Success {
			completed++
			report := groupResult.Data.ToTranslationFormat()
			emit(models.StreamEvent{
				Type:            models.StreamEventGroupComplete,
				GroupIndex:      i + 1,
				BallIDs:         groupResult.BallIDs,
				Data:            &report,
				OriginalData:    groupResult.Data,
				CompletedGroups: completed,
				TotalGroups:     len(groups),
				Message:         fmt.Sprintf("第%d组分析完成", i+1),
				Duration:        groupResult.Duration,
			})
		} else {
			emit(models.StreamEvent{
				Type:       models.StreamEventGroupError,
				GroupIndex: i + 1,
				BallIDs:    groupResult.BallIDs,
				Error:      groupResult.Error,
				Message:    fmt.Sprintf("第%d组分析失败", i+1),
				Duration:   groupResult.Duration,
			})
		}
	}

	merged, successful, failed := mergeGroupResults(results)
	mergedReport := merged.ToTranslationFormat()

	result := &models.GroupedAnalysisResult{
		Data:             mergedReport,
		OriginalData:     merged,
		IsGrouped:        true,
		TotalGroups:      len(groups),
		SuccessfulGroups: successful,
		FailedGroups:     failed,
		GroupResults:     results,
		Duration:         msString(time.Since(start)),
	}

	emit(models.StreamEvent{
		Type:               models.StreamEventComplete,
		TotalGroups:        len(groups),
		CompletedGroups:    successful,
		FailedGroups:       failed,
		MergedResult:       &mergedReport,
		OriginalMergedData: merged,
		AllResults:         results,
		Message:            "所有分组分析完成",
		Duration:           result.Duration,
	})

	s.logger.WithFields(logrus.Fields{
		"request_id":        requestID,
		"total_groups":      len(groups),
		"successful_groups": successful,
		"failed_groups":     failed,
		"total_duration":    result.Duration,
	}).Info("流式分组分析完成")

	return result, nil
}

// analyzeGroup runs one group's model call and packages the outcome.
func (s *translationService) analyzeGroup(ctx context.Context, requestID string, index int, req models.BallAnalysisRequest, group []models.AnalysisBall) models.GroupResult {
	start := time.Now()

	s.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"group_index": index,
		"ball_ids":    ballIDs(group),
	}).Info(fmt.Sprintf("开始处理第%d组", index))

	envelope, err := s.runBallAnalysis(ctx, req, group)
	duration := msString(time.Since(start))

	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"request_id":  requestID,
			"group_index": index,
			"duration":    duration,
		}).Error(fmt.Sprintf("第%d组分析失败", index))

		return models.GroupResult{
			GroupIndex: index,
			BallIDs:    ballIDs(group),
			Success:    false,
			Error:      err.Error(),
			Duration:   duration,
		}
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"group_index": index,
		"duration":    duration,
	}).Info(fmt.Sprintf("第%d组分析完成", index))

	return models.GroupResult{
		GroupIndex: index,
		BallIDs:    ballIDs(group),
		Data:       envelope.OriginalData,
		Success:    true,
		Duration:   duration,
	}
}

// mergeGroupResults folds successful group outputs into one raw result. Each
// ball runs in exactly one group, so fields never collide; the first non-nil
// value per field is kept.
func mergeGroupResults(results []models.GroupResult) (*models.BallAnalysisResult, int, int) {
	merged := &models.BallAnalysisResult{AnalyzedAt: time.Now().UTC().Format("2006-01-02T15:04:05.000Z")}
	successful, failed := 0, 0

	for _, r := range results {
		if !r.Success || r.Data == nil {
			failed++
			continue
		}
		successful++

		if merged.TextFeatures == nil && r.Data.TextFeatures != nil {
			merged.TextFeatures = r.Data.TextFeatures
		}
		if (merged.Terminology == nil || len(merged.Terminology.Mapping()) == 0) && r.Data.Terminology != nil && len(r.Data.Terminology.Mapping()) > 0 {
			merged.Terminology = r.Data.Terminology
		}
		if merged.Suggestions == nil && r.Data.Suggestions != nil {
			merged.Suggestions = r.Data.Suggestions
		}
		if merged.IntentAnalysis == nil && r.Data.IntentAnalysis != nil {
			merged.IntentAnalysis = r.Data.IntentAnalysis
		}
		if merged.ReferenceAnalysis == nil && r.Data.ReferenceAnalysis != nil {
			merged.ReferenceAnalysis = r.Data.ReferenceAnalysis
		}
		if merged.DirectRequestAnalysis == nil && r.Data.DirectRequestAnalysis != nil {
			merged.DirectRequestAnalysis = r.Data.DirectRequestAnalysis
		}
	}

	return merged, successful, failed
}

// splitGroups partitions balls into consecutive groups of at most size.
func splitGroups(balls []models.AnalysisBall, size int) [][]models.AnalysisBall {
	var groups [][]models.AnalysisBall
	for i := 0; i < len(balls); i += size {
		end := i + size
		if end > len(balls) {
			end = len(balls)
		}
		groups = append(groups, balls[i:end])
	}
	return groups
}

func normalizeGroupSize(size int) int {
	if size == 0 {
		return defaultGroupSize
	}
	return size
}

func ballIDs(balls []models.AnalysisBall) []models.BallID {
	ids := make([]models.BallID, len(balls))
	for i, b := range balls {
		ids[i] = b.ID
	}
	return ids
}
