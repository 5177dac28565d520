package models

// Mode identifies a supported translation direction.
type Mode string

const (
	// ModeZhToAr translates Chinese into Arabic
	ModeZhToAr Mode = "zh-ar"
	// ModeArToZh translates Arabic into Chinese
	ModeArToZh Mode = "ar-zh"
)

// Valid reports whether the mode is one of the two supported directions.
func (m Mode) Valid() bool {
	return m == ModeZhToAr || m == ModeArToZh
}

// SourceLanguage returns the human-readable source language name used in prompts.
func (m Mode) SourceLanguage() string {
	if m == ModeArToZh {
		return "阿拉伯语"
	}
	return "中文"
}

// TargetLanguage returns the human-readable target language name used in prompts.
func (m Mode) TargetLanguage() string {
	if m == ModeArToZh {
		return "中文"
	}
	return "阿拉伯语"
}

// QualityTier selects prompt complexity and call count.
type QualityTier string

const (
	// TierFast is a single-call quick translation
	TierFast QualityTier = "fast"
	// TierStandard is the two-step analysis-then-translate flow
	TierStandard QualityTier = "standard"
	// TierPremium is a single-call high-quality translation
	TierPremium QualityTier = "premium"
)

// Requirements carries the optional guidance a user may attach to a request.
type Requirements struct {
	Intent        string      `json:"intent,omitempty"`
	Reference     string      `json:"reference,omitempty"`
	DirectRequest string      `json:"directRequest,omitempty"`
	Quality       QualityTier `json:"quality,omitempty"`
}

// HasIntent reports whether a non-blank intent was supplied.
func (r Requirements) HasIntent() bool {
	return trimmedNonEmpty(r.Intent)
}

// HasReference reports whether a non-blank reference style was supplied.
func (r Requirements) HasReference() bool {
	return trimmedNonEmpty(r.Reference)
}

// HasDirectRequest reports whether a non-blank direct request was supplied.
func (r Requirements) HasDirectRequest() bool {
	return trimmedNonEmpty(r.DirectRequest)
}

// GuidanceCount counts the supplied guidance fields.
func (r Requirements) GuidanceCount() int {
	count := 0
	if r.HasIntent() {
		count++
	}
	if r.HasReference() {
		count++
	}
	if r.HasDirectRequest() {
		count++
	}
	return count
}

// TranslationRequest is the body of a translate call.
// AnalysisForTranslation carries a previously computed report the client wants reused.
type TranslationRequest struct {
	Text                   string          `json:"text"`
	Mode                   Mode            `json:"mode"`
	Requirements           Requirements    `json:"requirements"`
	AnalysisForTranslation *AnalysisReport `json:"analysisForTranslation,omitempty"`
}

// TextFeatures is the keyword-classified type and register of the source text.
type TextFeatures struct {
	Type  string `json:"type"`
	Style string `json:"style"`
}

// TermPair is one extracted term and its translation.
type TermPair struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// ResultAnalysis is the analysis bag attached to a translation result. Fields
// are present only when the flow that produced the result filled them in: the
// single-call tiers fill the camelCase fields, the two-step flow additionally
// flattens the merged AnalysisReport into the object.
type ResultAnalysis struct {
	AnalysisReport

	TextFeatures              *TextFeatures `json:"textFeatures,omitempty"`
	Terminology               []TermPair    `json:"terminology,omitempty"`
	Suggestions               []string      `json:"suggestions,omitempty"`
	IntentAnalysis            string        `json:"intentAnalysis,omitempty"`
	ReferenceAnalysis         string        `json:"referenceAnalysis,omitempty"`
	DirectInstructionAnalysis string        `json:"directInstructionAnalysis,omitempty"`
	InitialTranslation        string        `json:"initialTranslation,omitempty"`
	RevisedTranslation        string        `json:"revisedTranslation,omitempty"`
}

// TranslationResult is the final payload of a translate call.
type TranslationResult struct {
	TranslatedText string         `json:"translatedText"`
	Analysis       ResultAnalysis `json:"analysis"`
}

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
