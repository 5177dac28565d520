package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-translation-studio/pkg/models"
)

// StandardBuilder builds the two-step plan: an analysis prompt whose requested
// output schema adapts to the supplied guidance and any existing analysis, and
// a translation prompt carrying the ReportPlaceholder token.
type StandardBuilder struct{}

// NewStandardBuilder creates a standard-tier builder.
func NewStandardBuilder() Builder {
	return &StandardBuilder{}
}

// Tier returns the tier this builder serves.
func (b *StandardBuilder) Tier() models.QualityTier {
	return models.TierStandard
}

// Build renders both prompts of the plan.
func (b *StandardBuilder) Build(text string, mode models.Mode, req models.Requirements, existing *models.AnalysisReport) Plan {
	return Plan{
		AnalysisPrompt:    b.buildAnalysisPrompt(text, mode, req, existing),
		TranslationPrompt: b.buildTranslationPrompt(text, mode, req),
		IsTwoStep:         true,
	}
}

const standardWorkflow = `1. 分析原文文本特征，包括文本类型（如：商务文本、学术文本等）、语体风格（如：正式语体、礼貌语体等）、文本领域、情感色彩、文本主题、语用功能和语言结构特点。
2. 根据以上文本特征，思考初步的翻译策略，具体而专业。
3. 考虑领域专业性、实用性和可能的出现频率，提取专业术语、本地化成语/习语，保证提取的成果属于该文本领域。
3.1 如果存在翻译指导内容，根据它思考分析翻译。
3.2 结合以上初步翻译策略、翻译指导分析，思考改进现阶段的翻译策略（under_guidance_strategy）。
4. 结合上一步的翻译策略，思考以上术语/习语的翻译策略。
5. 总结以上所有阶段性策略并向专业译者提供具体而全面的翻译策略建议。`

func (b *StandardBuilder) buildAnalysisPrompt(text string, mode models.Mode, req models.Requirements, existing *models.AnalysisReport) string {
	var existingSection, workflowSection, outputFormat string

	if !existing.IsEmpty() {
		existingSection = buildExistingAnalysisSection(existing)
		workflowSection = "##工作流（如果步骤已被已有分析实现则跳过）\n" + standardWorkflow
		outputFormat = buildModifiedOutputFormat(req, existing)
	} else {
		workflowSection = "##工作流\n" + standardWorkflow
		outputFormat = buildStandardOutputFormat(req)
	}

	return fmt.Sprintf(`##角色
你是专业的%s-%s翻译分析和策略专家，极力追求忠实和通顺。你的翻译分析和策略将会被专业译者查阅并使用。

##场景
这是标准翻译场景，一般见于商务、学研和内容创作等情况，请兼顾效率与质量，注重忠实度和通顺度，提出完整而精细的翻译分析和策略。

##任务
完成以下翻译分析和策略任务。如果存在翻译意图/受众、参考译文风格和特殊要求，请严格参考，按照格式给出翻译分析和策略。
%s
%s

%s
##原文
%s

##输出格式
请严格按照以下格式提供json回复：
%s`, mode.SourceLanguage(), mode.TargetLanguage(), existingSection, workflowSection, GuidanceSection(req), text, outputFormat)
}

func (b *StandardBuilder) buildTranslationPrompt(text string, mode models.Mode, req models.Requirements) string {
	return fmt.Sprintf(`##角色
你是资深、专业的%s-%s高级译者，极力追求忠实和通顺，会与翻译分析和策略专家合作完成翻译。

##场景
这是标准翻译场景，一般见于商务、学研和内容创作等情况，请兼顾效率与质量，注重忠实度和通顺度，提出完整而精细的翻译分析和策略。

##任务
严格遵守原始翻译需求，理性参考翻译分析和策略专家提出的报告，完成以下翻译任务。请严格遵守翻译规范，包括基本的校对和润色，保证适合正式用途。

##工作流
1. 请先浏览并理解客户原始的翻译需求文件。
2. 仔细阅读和理解 翻译分析和策略专家的报告，对每一条分析的合理性进行独立思考评判，如果合理则接受，不合理改进策略。
3. 按照改进后的策略和原始翻译需求第一次直译，不要遗漏任何信息。
4. 检查第一次直译，重新润色，遵守原意的前提下让内容更加符合翻译策略和规则的要求，避免幻觉，符合%s表达习惯。

##原始翻译需求
%s
##原文
%s

##翻译分析和策略专家报告
%s

##输出格式
请严格按照以下格式提供json回复：
{"translate_advice_rationality": "是否合理，不合理之处改进",
"initial_translation": "第一次直译结果",
"initial_translation_revising_strategy": "检查翻译，包括是否遗漏客户原始需求",
"revised_translation": "润色后的最终翻译"
}`, mode.SourceLanguage(), mode.TargetLanguage(), mode.TargetLanguage(), GuidanceSection(req), text, ReportPlaceholder)
}

// buildExistingAnalysisSection serializes the already-answered fields so the
// model can see them and skip those sub-tasks.
func buildExistingAnalysisSection(existing *models.AnalysisReport) string {
	var b strings.Builder
	b.WriteString("\n#已有分析\n")

	if existing.TextCharacteristics != "" {
		fmt.Fprintf(&b, "text_characteristics: %q\n", existing.TextCharacteristics)
	}
	if len(existing.TerminologyIdiomsAnalysis) > 0 {
		data, err := json.Marshal(existing.TerminologyIdiomsAnalysis)
		if err == nil {
			fmt.Fprintf(&b, "terminology/idioms_analysis: %s\n", data)
		}
	}
	if existing.InitialTranslationStrategy != "" {
		fmt.Fprintf(&b, "initial_translation_strategy: %q\n", existing.InitialTranslationStrategy)
	}
	if existing.IntentAudienceAnalysis != "" {
		fmt.Fprintf(&b, "intent/audience_analysis: %q\n", existing.IntentAudienceAnalysis)
	}
	if existing.ReferenceTranslationAnalysis != "" {
		fmt.Fprintf(&b, "reference_translation_analysis: %q\n", existing.ReferenceTranslationAnalysis)
	}
	if existing.DirectInstructionAnalysis != "" {
		fmt.Fprintf(&b, "direct_instruction_analysis: %q\n", existing.DirectInstructionAnalysis)
	}

	return b.String()
}

const (
	schemaTextCharacteristics = `"text_characteristics": "分析文本类型（如：商务文本、学术文本等）、语体风格（如：正式语体、礼貌语体等）、文本领域、情感色彩、文本主题、语用功能和语言结构特点"`
	schemaInitialStrategy     = `"initial_translation_strategy": "根据文本特征思考的初步翻译策略"`
	schemaTerminology         = `"terminology/idioms_analysis": {"term/idiom1": "翻译成目标语的具体策略", "term/idiom2": "翻译成目标语的具体策略"}`
	schemaIntent              = `"intent/audience_analysis": "分析翻译意图/受众对翻译策略的影响"`
	schemaReference           = `"reference_translation_analysis": "分析参考译文风格对翻译策略的影响"`
	schemaDirectRequest       = `"direct_instruction_analysis": "分析直接要求对翻译策略的影响"`
	schemaUnderGuidance       = `"under_guidance_strategy": "结合翻译指导分析后的改进翻译策略"`
	schemaFinalAdvice         = `"final_translate_advice": "总结并向专业译者提供具体而全面的翻译策略建议"`
)

// buildStandardOutputFormat builds the requested schema for a fresh analysis.
// Guidance-dependent fields appear only when the guidance was supplied, and
// under_guidance_strategy only when two or more guidance fields were.
func buildStandardOutputFormat(req models.Requirements) string {
	fields := []string{schemaTextCharacteristics, schemaInitialStrategy, schemaTerminology}

	if req.HasIntent() {
		fields = append(fields, schemaIntent)
	}
	if req.HasReference() {
		fields = append(fields, schemaReference)
	}
	if req.HasDirectRequest() {
		fields = append(fields, schemaDirectRequest)
	}
	if req.GuidanceCount() >= 2 {
		fields = append(fields, schemaUnderGuidance)
	}
	fields = append(fields, schemaFinalAdvice)

	return "{" + strings.Join(fields, ",\n") + "\n}"
}

// buildModifiedOutputFormat builds the requested schema with already-answered
// fields removed, so the model is not asked to redo existing analysis.
func buildModifiedOutputFormat(req models.Requirements, existing *models.AnalysisReport) string {
	var fields []string

	if existing.TextCharacteristics == "" {
		fields = append(fields, schemaTextCharacteristics)
	}
	if existing.InitialTranslationStrategy == "" {
		fields = append(fields, schemaInitialStrategy)
	}
	if len(existing.TerminologyIdiomsAnalysis) == 0 {
		fields = append(fields, schemaTerminology)
	}
	if req.HasIntent() && existing.IntentAudienceAnalysis == "" {
		fields = append(fields, schemaIntent)
	}
	if req.HasReference() && existing.ReferenceTranslationAnalysis == "" {
		fields = append(fields, schemaReference)
	}
	if req.HasDirectRequest() && existing.DirectInstructionAnalysis == "" {
		fields = append(fields, schemaDirectRequest)
	}
	if req.GuidanceCount() >= 2 {
		fields = append(fields, schemaUnderGuidance)
	}
	fields = append(fields, schemaFinalAdvice)

	return "{" + strings.Join(fields, ",\n") + "\n}"
}
