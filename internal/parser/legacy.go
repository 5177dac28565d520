package parser

import (
	"strings"

	"go-translation-studio/pkg/models"
)

// ParseLegacyAnalysis parses the prompt-list analysis response. Only the
// sections matching the requested prompts are extracted; the rest stay at
// their zero values so clients see exactly what they asked for.
func ParseLegacyAnalysis(response string, prompts []string) *models.LegacyAnalysisResult {
	sections := splitNumberedSections(response)
	result := &models.LegacyAnalysisResult{
		Terminology: []models.TermPair{},
		Suggestions: []string{},
		AnalyzedAt:  nowISO(),
	}

	if promptsRequest(prompts, "文本特征") {
		features := models.TextFeatures{Type: defaultTextType, Style: defaultTextStyle}
		if section, ok := findSection(sections, "文本特征", "特征分析"); ok {
			features = ClassifyTextFeatures(section)
		}
		result.TextFeatures = &features
	}

	if promptsRequest(prompts, "专业术语") {
		if section, ok := findSection(sections, "专业术语", "术语"); ok {
			for original, translation := range parseTermLines(section) {
				result.Terminology = append(result.Terminology, models.TermPair{
					Original:    original,
					Translation: translation,
				})
			}
		}
	}

	if promptsRequest(prompts, "翻译建议") {
		if section, ok := findSection(sections, "建议", "改进"); ok {
			if suggestions := parseSuggestionLines(section); len(suggestions) > 0 {
				result.Suggestions = suggestions
			}
		}
	}

	return result
}

func promptsRequest(prompts []string, keyword string) bool {
	for _, p := range prompts {
		if strings.Contains(p, keyword) {
			return true
		}
	}
	return false
}
