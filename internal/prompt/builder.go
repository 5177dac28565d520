package prompt

import (
	"fmt"

	"go-translation-studio/pkg/models"
)

// ReportPlaceholder is the token in the standard-tier translation prompt that
// the orchestrator replaces with the serialized analysis report.
const ReportPlaceholder = "{analysis_report}"

// Plan is the output of a builder: either a single prompt, or a two-part
// analysis-then-translate plan for the standard tier.
type Plan struct {
	Prompt            string
	AnalysisPrompt    string
	TranslationPrompt string
	IsTwoStep         bool
}

// Builder constructs the prompt plan for one quality tier. Builders are pure:
// the same inputs always produce the same plan.
type Builder interface {
	Build(text string, mode models.Mode, req models.Requirements, existing *models.AnalysisReport) Plan
	Tier() models.QualityTier
}

// FastBuilder builds the single-call quick-translation prompt.
type FastBuilder struct{}

// NewFastBuilder creates a fast-tier builder.
func NewFastBuilder() Builder {
	return &FastBuilder{}
}

// Tier returns the tier this builder serves.
func (b *FastBuilder) Tier() models.QualityTier {
	return models.TierFast
}

// Build renders the fast prompt.
func (b *FastBuilder) Build(text string, mode models.Mode, req models.Requirements, existing *models.AnalysisReport) Plan {
	prompt := fmt.Sprintf(`###角色
你是专业的%s-%s翻译专家，极力追求忠实和通顺。

###场景
这是速翻场景，多见于日常交流、紧急处理等情形中，请你再保证忠实度和通顺度的基础上优化生成的速度。

###任务
完成以下翻译任务。如果存在翻译意图/受众、参考译文风格和特殊要求，请严格参考，按照格式给出思考过程和翻译结果。

%s
###原文
%s

###输出格式
请严格按照以下格式提供json回复：
{"translate_advice": "提供具体的翻译策略建议",
"translate_result": "在这里提供准确、流畅的翻译"
}`, mode.SourceLanguage(), mode.TargetLanguage(), GuidanceSection(req), text)

	return Plan{Prompt: prompt}
}

// PremiumBuilder builds the single-call high-quality translation prompt.
type PremiumBuilder struct{}

// NewPremiumBuilder creates a premium-tier builder.
func NewPremiumBuilder() Builder {
	return &PremiumBuilder{}
}

// Tier returns the tier this builder serves.
func (b *PremiumBuilder) Tier() models.QualityTier {
	return models.TierPremium
}

// Build renders the premium prompt. Unlike the other tiers the guidance lines
// are always present, with 无 marking an unsupplied field.
func (b *PremiumBuilder) Build(text string, mode models.Mode, req models.Requirements, existing *models.AnalysisReport) Plan {
	intent := req.Intent
	if !req.HasIntent() {
		intent = "无"
	}
	reference := req.Reference
	if !req.HasReference() {
		reference = "无"
	}
	directRequest := req.DirectRequest
	if !req.HasDirectRequest() {
		directRequest = "无"
	}

	prompt := fmt.Sprintf(`###角色
你是专业的%s-%s翻译专家，极力追求忠实和通顺。

###场景
这是精翻场景，一般见于重要文档、正式场合等，请追求最高质量，注重忠实度、通顺度和文化适应性。

###任务
完成以下翻译任务。如果存在翻译意图/受众、参考译文风格和特殊要求，请严格参考，按照格式给出思考过程和翻译结果。

###翻译指导
- 翻译意图/受众：%s
- 参考译文风格，请总结并学习以下参考译文的风格：%s
- 直接要求：%s

###原文
%s

###输出格式
请严格按照以下格式提供json回复：
{"translate_advice": "提供具体的翻译策略建议",
"translate_result": "在这里提供准确、流畅的翻译"
}`, mode.SourceLanguage(), mode.TargetLanguage(), intent, reference, directRequest, text)

	return Plan{Prompt: prompt}
}
