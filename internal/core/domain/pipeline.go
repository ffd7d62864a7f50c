package domain

// Stage is a step of the reply interpretation state machine.
type Stage string

const (
	StageAwaitingQuestion Stage = "AWAITING_QUESTION"
	StageGotReply         Stage = "GOT_REPLY"
	StageChartRequested   Stage = "CHART_REQUESTED"
	StageExtracting       Stage = "EXTRACTING"
	StageRendering        Stage = "RENDERING"
	StageDone             Stage = "DONE"
)

// Outcome records how a pipeline run ended.
type Outcome string

const (
	OutcomeAnswered        Outcome = "answered"
	OutcomeChartRendered   Outcome = "chart_rendered"
	OutcomeExtractionMiss  Outcome = "extraction_miss"
	OutcomeRenderFailed    Outcome = "render_failed"
	OutcomeTransportFailed Outcome = "transport_failed"
	OutcomeEmptyReply      Outcome = "empty_reply"
)

// PipelineResult is what the presentation layer receives for one question.
// ChartFileName is empty unless HasChart is true.
type PipelineResult struct {
	DisplayText   string
	HasChart      bool
	ChartFileName string
	Outcome       Outcome
}
