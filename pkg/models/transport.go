package models

// BallAnalysisRequest is the body of the ball analysis endpoints.
type BallAnalysisRequest struct {
	Text          string         `json:"text"`
	SelectedBalls []AnalysisBall `json:"selectedBalls"`
	Intent        string         `json:"intent,omitempty"`
	Reference     string         `json:"reference,omitempty"`
	DirectRequest string         `json:"directRequest,omitempty"`
	Mode          Mode           `json:"mode"`
	GroupSize     int            `json:"groupSize,omitempty"`
}

// BallAnalysisEnvelope pairs the translation-compatible shape with the raw one.
type BallAnalysisEnvelope struct {
	Data         AnalysisReport      `json:"data"`
	OriginalData *BallAnalysisResult `json:"originalData"`
	Duration     string              `json:"duration"`
}

// GroupResult is the outcome of one group's model call in a grouped analysis.
type GroupResult struct {
	GroupIndex int                 `json:"groupIndex"`
	BallIDs    []BallID            `json:"ballIds"`
	Data       *BallAnalysisResult `json:"data"`
	Success    bool                `json:"success"`
	Error      string              `json:"error,omitempty"`
	Duration   string              `json:"duration"`
}

// GroupedAnalysisResult aggregates a grouped analysis run.
type GroupedAnalysisResult struct {
	Data             AnalysisReport      `json:"data"`
	OriginalData     *BallAnalysisResult `json:"originalData"`
	IsGrouped        bool                `json:"isGrouped"`
	TotalGroups      int                 `json:"totalGroups"`
	SuccessfulGroups int                 `json:"successfulGroups"`
	FailedGroups     int                 `json:"failedGroups"`
	GroupResults     []GroupResult       `json:"groupResults,omitempty"`
	Duration         string              `json:"duration"`
}

// Stream event types emitted by the streaming grouped analysis.
const (
	StreamEventStart         = "start"
	StreamEventGroupStart    = "group_start"
	StreamEventGroupComplete = "group_complete"
	StreamEventGroupError    = "group_error"
	StreamEventComplete      = "complete"
	StreamEventError         = "error"
)

// StreamEvent is one server-push progress event of the streaming analysis.
type StreamEvent struct {
	Type                string              `json:"type"`
	GroupIndex          int                 `json:"groupIndex,omitempty"`
	BallIDs             []BallID            `json:"ballIds,omitempty"`
	GroupSize           int                 `json:"groupSize,omitempty"`
	Data                *AnalysisReport     `json:"data,omitempty"`
	OriginalData        *BallAnalysisResult `json:"originalData,omitempty"`
	Error               string              `json:"error,omitempty"`
	Message             string              `json:"message,omitempty"`
	CompletedGroups     int                 `json:"completedGroups,omitempty"`
	TotalGroups         int                 `json:"totalGroups,omitempty"`
	FailedGroups        int                 `json:"failedGroups,omitempty"`
	MergedResult        *AnalysisReport     `json:"mergedResult,omitempty"`
	OriginalMergedData  *BallAnalysisResult `json:"originalMergedResult,omitempty"`
	AllResults          []GroupResult       `json:"allResults,omitempty"`
	Duration            string              `json:"duration,omitempty"`
}

// ModelRole tells which configured model served a call.
type ModelRole string

const (
	ModelPrimary  ModelRole = "primary"
	ModelFallback ModelRole = "fallback"
)

// CallAttempt records one attempt against one model.
type CallAttempt struct {
	Model      string    `json:"model"`
	Role       ModelRole `json:"role"`
	DurationMs int64     `json:"duration_ms"`
	Succeeded  bool      `json:"succeeded"`
	Error      string    `json:"error,omitempty"`
}

// ModelCallOutcome is the result of a gateway call, fallback included.
type ModelCallOutcome struct {
	Text       string        `json:"text"`
	Model      string        `json:"model"`
	ModelUsed  ModelRole     `json:"model_used"`
	DurationMs int64         `json:"duration_ms"`
	Attempts   []CallAttempt `json:"attempts"`
}
