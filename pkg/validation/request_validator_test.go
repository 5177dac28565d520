package validation

import (
	"testing"

	apperrors "go-translation-studio/internal/errors"
	"go-translation-studio/pkg/models"
)

func TestValidateTranslation(t *testing.T) {
	v := NewRequestValidator()

	err := v.ValidateTranslation(models.TranslationRequest{Text: "   ", Mode: models.ModeZhToAr})
	if err == nil {
		t.Error("Expected error for blank text")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected validation error type, got %v", err)
	}

	err = v.ValidateTranslation(models.TranslationRequest{Text: "你好", Mode: "en-fr"})
	if err == nil {
		t.Error("Expected error for unsupported mode")
	}

	err = v.ValidateTranslation(models.TranslationRequest{Text: "你好", Mode: models.ModeArToZh})
	if err != nil {
		t.Errorf("Expected valid request to pass, got %v", err)
	}
}

func TestValidateLegacyAnalysis(t *testing.T) {
	v := NewRequestValidator()

	if err := v.ValidateLegacyAnalysis("文本", nil); err == nil {
		t.Error("Expected error for empty prompt list")
	}
	if err := v.ValidateLegacyAnalysis("", []string{"分析文本特征"}); err == nil {
		t.Error("Expected error for blank text")
	}
	if err := v.ValidateLegacyAnalysis("文本", []string{"分析文本特征"}); err != nil {
		t.Errorf("Expected valid request to pass, got %v", err)
	}
}

func TestValidateBallAnalysis(t *testing.T) {
	v := NewRequestValidator()
	valid := models.BallAnalysisRequest{
		Text:          "文本",
		Mode:          models.ModeZhToAr,
		SelectedBalls: []models.AnalysisBall{{ID: models.BallTextFeatures}},
	}

	if err := v.ValidateBallAnalysis(valid, false); err != nil {
		t.Errorf("Expected valid request to pass, got %v", err)
	}

	noBalls := valid
	noBalls.SelectedBalls = nil
	if err := v.ValidateBallAnalysis(noBalls, false); err == nil {
		t.Error("Expected error for missing balls")
	}

	badMode := valid
	badMode.Mode = "zh-en"
	if err := v.ValidateBallAnalysis(badMode, false); err == nil {
		t.Error("Expected error for unsupported mode")
	}
}

func TestValidateBallAnalysisGroupSize(t *testing.T) {
	v := NewRequestValidator()
	req := models.BallAnalysisRequest{
		Text:          "文本",
		Mode:          models.ModeZhToAr,
		SelectedBalls: []models.AnalysisBall{{ID: models.BallTextFeatures}},
		GroupSize:     4,
	}

	if err := v.ValidateBallAnalysis(req, true); err == nil {
		t.Error("Expected error for unsupported group size on grouped endpoint")
	}
	if err := v.ValidateBallAnalysis(req, false); err != nil {
		t.Errorf("Expected group size ignored on ungrouped endpoint, got %v", err)
	}

	req.GroupSize = 3
	if err := v.ValidateBallAnalysis(req, true); err != nil {
		t.Errorf("Expected group size 3 accepted, got %v", err)
	}

	req.GroupSize = 0
	if err := v.ValidateBallAnalysis(req, true); err != nil {
		t.Errorf("Expected omitted group size to default, got %v", err)
	}
}
