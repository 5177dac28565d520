package parser

import (
	"encoding/json"
	"strings"

	"go-translation-studio/pkg/models"
)

// ParseAnalysisStep parses the first response of the two-step flow into an
// analysis report. Empty model fields stay absent from the report. When
// nothing usable can be extracted the report carries placeholder advice.
func ParseAnalysisStep(response string) models.AnalysisReport {
	if span := extractJSONSpan(response); span != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(span), &data); err == nil {
			return parseAnalysisJSON(data)
		}
	}

	report := parseAnalysisText(response)
	if report.IsEmpty() {
		return models.AnalysisReport{
			TextCharacteristics:  "分析遇到问题，请重试",
			FinalTranslateAdvice: "分析完成，建议人工校对",
			AnalyzedAt:           nowISO(),
		}
	}
	return report
}

func parseAnalysisJSON(data map[string]any) models.AnalysisReport {
	report := models.AnalysisReport{AnalyzedAt: nowISO()}

	report.TextCharacteristics = stringField(data, "text_characteristics")
	if terms := mapField(data, "terminology/idioms_analysis", "terminology_idioms_analysis"); len(terms) > 0 {
		report.TerminologyIdiomsAnalysis = terms
	}
	report.InitialTranslationStrategy = stringField(data, "initial_translation_strategy")
	report.IntentAudienceAnalysis = stringField(data, "intent_audience_analysis")
	report.ReferenceTranslationAnalysis = stringField(data, "reference_translation_analysis")
	report.DirectInstructionAnalysis = stringField(data, "direct_instruction_analysis")
	report.UnderGuidanceStrategy = stringField(data, "under_guidance_strategy")
	report.TerminologyTranslationStrategy = stringField(data, "terminology_idioms_translation_strategy")
	report.FinalTranslateAdvice = stringField(data, "final_translate_advice")

	return report
}

func parseAnalysisText(response string) models.AnalysisReport {
	sections := splitNumberedSections(response)
	report := models.AnalysisReport{AnalyzedAt: nowISO()}

	if section, ok := findSection(sections, "文本特征", "特征分析"); ok {
		report.TextCharacteristics = strings.TrimSpace(section)
	}
	if section, ok := findSection(sections, "专业术语", "术语"); ok {
		if terms := parseTermLines(section); len(terms) > 0 {
			report.TerminologyIdiomsAnalysis = terms
		}
	}
	if section, ok := findSection(sections, "建议", "改进"); ok {
		if suggestions := parseSuggestionLines(section); len(suggestions) > 0 {
			report.FinalTranslateAdvice = strings.Join(suggestions, " ")
		}
	}

	return report
}

// ParseTranslationStep parses the second response of the two-step flow. The
// revised translation wins over the initial one; with neither present the
// original text stands in.
func ParseTranslationStep(response, originalText string) *models.TranslationResult {
	if span := extractJSONSpan(response); span != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(span), &data); err == nil {
			return parseTranslationStepJSON(data, originalText)
		}
	}

	result := parseTranslationText(response, originalText)
	result.Analysis.TextFeatures = nil
	result.Analysis.Terminology = nil
	return result
}

func parseTranslationStepJSON(data map[string]any, originalText string) *models.TranslationResult {
	translated := stringField(data, "revised_translation", "initial_translation")
	if translated == "" {
		translated = originalText
	}

	suggestions := []string{}
	if rationality := stringField(data, "translate_advice_rationality"); rationality != "" {
		suggestions = append(suggestions, "翻译建议合理性："+rationality)
	}
	if strategy := stringField(data, "initial_translation_revising_strategy"); strategy != "" {
		suggestions = append(suggestions, "翻译修订策略："+strategy)
	}

	return &models.TranslationResult{
		TranslatedText: translated,
		Analysis: models.ResultAnalysis{
			Suggestions:        suggestions,
			InitialTranslation: stringField(data, "initial_translation"),
			RevisedTranslation: stringField(data, "revised_translation"),
			AnalysisReport:     models.AnalysisReport{AnalyzedAt: nowISO()},
		},
	}
}
