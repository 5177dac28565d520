package validation

import (
	"strings"

	apperrors "go-translation-studio/internal/errors"
	"go-translation-studio/pkg/models"
)

// RequestValidator checks incoming request bodies before any model call is
// made. Messages are client-facing and returned verbatim in error responses.
type RequestValidator struct {
	allowedGroupSizes []int
}

// NewRequestValidator creates a validator with the supported group sizes.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		allowedGroupSizes: []int{2, 3},
	}
}

// ValidateTranslation checks a translate request.
func (v *RequestValidator) ValidateTranslation(req models.TranslationRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("文本不能为空", nil)
	}
	if !req.Mode.Valid() {
		return apperrors.NewValidationError("翻译模式无效", nil)
	}
	return nil
}

// ValidateLegacyAnalysis checks a prompt-list analysis request.
func (v *RequestValidator) ValidateLegacyAnalysis(text string, prompts []string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.NewValidationError("文本不能为空", nil)
	}
	if len(prompts) == 0 {
		return apperrors.NewValidationError("请选择分析功能", nil)
	}
	return nil
}

// ValidateBallAnalysis checks a ball analysis request. Group size is only
// checked when the request targets a grouped endpoint.
func (v *RequestValidator) ValidateBallAnalysis(req models.BallAnalysisRequest, grouped bool) error {
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("文本不能为空", nil)
	}
	if len(req.SelectedBalls) == 0 {
		return apperrors.NewValidationError("请选择分析功能球", nil)
	}
	if !req.Mode.Valid() {
		return apperrors.NewValidationError("翻译模式无效", nil)
	}
	if grouped && req.GroupSize != 0 && !v.isGroupSizeAllowed(req.GroupSize) {
		return apperrors.NewValidationError("分组分析只支持2个或3个功能球一组", nil)
	}
	return nil
}

// isGroupSizeAllowed checks the group size against the supported sizes
func (v *RequestValidator) isGroupSizeAllowed(size int) bool {
	for _, allowed := range v.allowedGroupSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
