package models

// AnalysisReport is the structured analysis of a source text. Every field is
// optional: absence means the sub-task has not been analyzed yet, not that it
// produced an empty answer. JSON names match the wire format the model is
// asked to produce.
type AnalysisReport struct {
	TextCharacteristics            string            `json:"text_characteristics,omitempty"`
	TerminologyIdiomsAnalysis      map[string]string `json:"terminology_idioms_analysis,omitempty"`
	InitialTranslationStrategy     string            `json:"initial_translation_strategy,omitempty"`
	IntentAudienceAnalysis         string            `json:"intent_audience_analysis,omitempty"`
	ReferenceTranslationAnalysis   string            `json:"reference_translation_analysis,omitempty"`
	DirectInstructionAnalysis      string            `json:"direct_instruction_analysis,omitempty"`
	UnderGuidanceStrategy          string            `json:"underGuidanceStrategy,omitempty"`
	TerminologyTranslationStrategy string            `json:"terminologyTranslationStrategy,omitempty"`
	FinalTranslateAdvice           string            `json:"final_translate_advice,omitempty"`
	AnalyzedAt                     string            `json:"analyzedAt,omitempty"`
}

// IsEmpty reports whether the report carries no analysis content at all.
func (r *AnalysisReport) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.TextCharacteristics == "" &&
		len(r.TerminologyIdiomsAnalysis) == 0 &&
		r.InitialTranslationStrategy == "" &&
		r.IntentAudienceAnalysis == "" &&
		r.ReferenceTranslationAnalysis == "" &&
		r.DirectInstructionAnalysis == "" &&
		r.UnderGuidanceStrategy == "" &&
		r.TerminologyTranslationStrategy == "" &&
		r.FinalTranslateAdvice == ""
}

// BallID identifies one selectable unit of analysis.
type BallID string

const (
	BallTextFeatures          BallID = "text-features"
	BallTerminology           BallID = "terminology"
	BallSuggestions           BallID = "suggestions"
	BallIntentAnalysis        BallID = "intent-analysis"
	BallReferenceAnalysis     BallID = "reference-analysis"
	BallDirectRequestAnalysis BallID = "direct-request-analysis"
)

// AnalysisBall is one requested analysis unit as sent by the client.
type AnalysisBall struct {
	ID BallID `json:"id"`
}

// BallText is a model-facing / human-facing pair of analysis strings.
type BallText struct {
	ForHumanUse string `json:"for_human_use,omitempty"`
	ForModel    string `json:"for_model,omitempty"`
}

// Value returns the model-facing variant, falling back to the human-facing one.
func (b *BallText) Value() string {
	if b == nil {
		return ""
	}
	if b.ForModel != "" {
		return b.ForModel
	}
	return b.ForHumanUse
}

// BallTermMapping is the terminology mapping in both variants.
type BallTermMapping struct {
	ForHumanUse map[string]string `json:"for_human_use"`
	ForModel    map[string]string `json:"for_model"`
}

// Mapping returns the human-facing mapping, falling back to the model-facing one.
func (b *BallTermMapping) Mapping() map[string]string {
	if b == nil {
		return nil
	}
	if len(b.ForHumanUse) > 0 {
		return b.ForHumanUse
	}
	return b.ForModel
}

// BallAnalysisResult is the raw shape of a ball analysis, keyed by ball.
// A nil field means the ball was not selected or produced nothing.
type BallAnalysisResult struct {
	TextFeatures          *BallText        `json:"textFeatures,omitempty"`
	Terminology           *BallTermMapping `json:"terminology,omitempty"`
	Suggestions           *BallText        `json:"suggestions,omitempty"`
	IntentAnalysis        *BallText        `json:"intentAnalysis,omitempty"`
	ReferenceAnalysis     *BallText        `json:"referenceAnalysis,omitempty"`
	DirectRequestAnalysis *BallText        `json:"directRequestAnalysis,omitempty"`
	AnalyzedAt            string           `json:"analyzedAt"`
}

// ToTranslationFormat converts the ball result into the report shape the
// translate flow consumes. Model-facing variants win for strategy fields; the
// terminology mapping prefers the human-facing variant.
func (r *BallAnalysisResult) ToTranslationFormat() AnalysisReport {
	report := AnalysisReport{AnalyzedAt: r.AnalyzedAt}
	report.TextCharacteristics = r.TextFeatures.Value()
	report.InitialTranslationStrategy = r.Suggestions.Value()
	report.IntentAudienceAnalysis = r.IntentAnalysis.Value()
	report.ReferenceTranslationAnalysis = r.ReferenceAnalysis.Value()
	report.DirectInstructionAnalysis = r.DirectRequestAnalysis.Value()
	if m := r.Terminology.Mapping(); len(m) > 0 {
		report.TerminologyIdiomsAnalysis = m
	} else if r.Terminology != nil {
		report.TerminologyIdiomsAnalysis = map[string]string{}
	}
	return report
}

// LegacyAnalysisResult is the payload of the legacy prompt-list analysis.
// TextFeatures is nil when text-feature analysis was not requested.
type LegacyAnalysisResult struct {
	TextFeatures *TextFeatures `json:"textFeatures"`
	Terminology  []TermPair    `json:"terminology"`
	Suggestions  []string      `json:"suggestions"`
	AnalyzedAt   string        `json:"analyzedAt"`
}
