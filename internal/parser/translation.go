package parser

import (
	"encoding/json"

	"go-translation-studio/pkg/models"
)

// ParseTranslation parses a single-call translation response. It tries the
// requested JSON shape first and falls back to numbered-section text
// extraction. When no translation can be found the original text stands in.
func ParseTranslation(response, originalText string) *models.TranslationResult {
	if span := extractJSONSpan(response); span != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(span), &data); err == nil {
			return parseTranslationJSON(data, originalText)
		}
	}
	return parseTranslationText(response, originalText)
}

func parseTranslationJSON(data map[string]any, originalText string) *models.TranslationResult {
	translated := stringField(data, "translate_result", "translate_final_result")
	if translated == "" {
		translated = originalText
	}

	features := ClassifyTextFeatures(stringField(data, "text_characteristics"))

	terminology := []models.TermPair{}
	for _, term := range stringSliceField(data, "existing_terminology") {
		terminology = append(terminology, models.TermPair{Original: term, Translation: term})
	}

	suggestions := []string{}
	if advice := stringField(data, "translate_advice"); advice != "" {
		suggestions = append(suggestions, advice)
	}

	return &models.TranslationResult{
		TranslatedText: translated,
		Analysis: models.ResultAnalysis{
			TextFeatures:              &features,
			Terminology:               terminology,
			Suggestions:               suggestions,
			IntentAnalysis:            stringField(data, "intent_audience_analysis"),
			ReferenceAnalysis:         stringField(data, "reference_translation_analysis"),
			DirectInstructionAnalysis: stringField(data, "direct_instruction_analysis"),
			AnalysisReport:            models.AnalysisReport{AnalyzedAt: nowISO()},
		},
	}
}

func parseTranslationText(response, originalText string) *models.TranslationResult {
	sections := splitNumberedSections(response)

	translated := ""
	if section, ok := findSection(sections, "翻译结果", "译文"); ok {
		translated = translationLine(section)
	}
	if translated == "" {
		translated = "翻译结果：" + originalText
	}

	features := models.TextFeatures{Type: defaultTextType, Style: defaultTextStyle}
	if section, ok := findSection(sections, "文本特征", "特征分析"); ok {
		features = ClassifyTextFeatures(section)
	}

	terminology := []models.TermPair{}
	if section, ok := findSection(sections, "专业术语", "术语"); ok {
		for original, translation := range parseTermLines(section) {
			terminology = append(terminology, models.TermPair{Original: original, Translation: translation})
		}
	}

	suggestions := []string{}
	if section, ok := findSection(sections, "建议", "改进"); ok {
		suggestions = parseSuggestionLines(section)
	}

	return &models.TranslationResult{
		TranslatedText: translated,
		Analysis: models.ResultAnalysis{
			TextFeatures:   &features,
			Terminology:    terminology,
			Suggestions:    suggestions,
			AnalysisReport: models.AnalysisReport{AnalyzedAt: nowISO()},
		},
	}
}

// translationLine returns the first content line of a translation section,
// skipping the header lines naming the section.
func translationLine(section string) string {
	for _, line := range splitLines(section) {
		if line == "" {
			continue
		}
		if containsAny(line, "翻译结果", "译文") {
			continue
		}
		return line
	}
	return ""
}
