package parser

import (
	"encoding/json"
	"strings"

	"go-translation-studio/pkg/models"
)

// ParseBallAnalysis parses a ball analysis response. Field names the model
// tends to improvise are accepted as synonyms of the requested ones. When the
// extracted JSON fails to decode it is retried once with raw control
// characters escaped, and after that a fixed placeholder result is returned.
func ParseBallAnalysis(response string) *models.BallAnalysisResult {
	span := extractJSONSpan(response)
	if span != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(span), &data); err == nil {
			return ballResultFromJSON(data)
		}

		// Models sometimes emit raw newlines or tabs inside string values.
		cleaned := strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(span)
		if err := json.Unmarshal([]byte(cleaned), &data); err == nil {
			return ballResultFromJSON(data)
		}
	}

	return &models.BallAnalysisResult{
		TextFeatures: &models.BallText{
			ForHumanUse: "分析完成，请查看具体内容",
			ForModel:    "分析完成，请查看具体内容",
		},
		Terminology: &models.BallTermMapping{
			ForHumanUse: map[string]string{},
			ForModel:    map[string]string{},
		},
		Suggestions: &models.BallText{
			ForHumanUse: "建议已生成，请人工查阅",
			ForModel:    "建议已生成，请人工查阅",
		},
		AnalyzedAt: nowISO(),
	}
}

func ballResultFromJSON(data map[string]any) *models.BallAnalysisResult {
	terms := mapField(data, "terminology/idioms_analysis", "terminology_idioms_analysis")
	if terms == nil {
		terms = map[string]string{}
	}

	return &models.BallAnalysisResult{
		TextFeatures: ballText(data,
			[]string{"text_characteristics_for_human_use"},
			[]string{"text_characteristics_for_model"}),
		Terminology: &models.BallTermMapping{
			ForHumanUse: terms,
			ForModel:    terms,
		},
		Suggestions: ballText(data,
			[]string{"translation_strategy_for_human_use", "initial_translation_strategy_for_human_use"},
			[]string{"initial_translation_strategy_for_model"}),
		IntentAnalysis: ballText(data,
			[]string{"intent/audience_analysis_for_human_use", "intent_audience_analysis_for_human_use"},
			[]string{"intent/audience_analysis_for_model", "intent_audience_analysis_for_model"}),
		ReferenceAnalysis: ballText(data,
			[]string{"reference_analysis_for_human_use", "reference_translation_analysis_for_human_use"},
			[]string{"reference_analysis_for_model", "reference_translation_analysis_for_model"}),
		DirectRequestAnalysis: ballText(data,
			[]string{"direct_instruction_analysis_for_human_use", "direct_request_analysis_for_human_use"},
			[]string{"direct_instruction_analysis_for_model", "direct_request_analysis_for_model"}),
		AnalyzedAt: nowISO(),
	}
}

// ballText assembles one for_human_use/for_model pair from synonym key lists,
// returning nil when neither variant is present.
func ballText(data map[string]any, humanKeys, modelKeys []string) *models.BallText {
	text := models.BallText{
		ForHumanUse: stringField(data, humanKeys...),
		ForModel:    stringField(data, modelKeys...),
	}
	if text.ForHumanUse == "" && text.ForModel == "" {
		return nil
	}
	return &text
}
