package services

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"csv-insight-service/internal/core/domain"
	"csv-insight-service/internal/core/interpret"
	ports "csv-insight-service/internal/core/ports/output"
)

// PipelineService answers one question about one dataset. Every failure is
// handled locally and surfaced as display text; callers always get a result.
type PipelineService struct {
	model    ports.LanguageModel
	renderer ports.ChartRenderer
	metrics  ports.MetricsRecorder
}

func NewPipelineService(model ports.LanguageModel, renderer ports.ChartRenderer, metrics ports.MetricsRecorder) *PipelineService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PipelineService{model: model, renderer: renderer, metrics: metrics}
}

// Ask builds the prompt, calls the language model and interprets its reply.
func (s *PipelineService) Ask(ctx context.Context, dataset domain.TabularDataset, question string) domain.PipelineResult {
	logger := log.WithFields(log.Fields{
		"service": s.model.Name(),
		"rows":    dataset.Len(),
	})
	logger.WithField("stage", domain.StageAwaitingQuestion).Debug("building prompt")

	prompt := interpret.BuildPrompt(interpret.Flatten(dataset.Rows), question)

	start := time.Now()
	reply, err := s.model.Generate(ctx, prompt)
	s.metrics.RecordModelCall(s.model.Name(), time.Since(start), err)
	if err != nil {
		terr := &domain.TransportError{Service: s.model.Name(), Err: err}
		logger.WithError(terr).Error("language model call failed")
		return s.done(domain.PipelineResult{
			DisplayText: interpret.TransportFailureText(terr.Service, terr.Err),
			Outcome:     domain.OutcomeTransportFailed,
		})
	}

	return s.Interpret(ctx, reply, question)
}

// Interpret turns a raw model reply into display text and, when the question
// asked for a chart and the reply carries chart data, a rendered chart.
func (s *PipelineService) Interpret(ctx context.Context, reply, question string) domain.PipelineResult {
	logger := log.WithField("stage", domain.StageGotReply)
	logger.WithField("reply_len", len(reply)).Debug("reply received")

	if reply == "" {
		return s.done(domain.PipelineResult{
			DisplayText: interpret.EmptyReplyText(s.model.Name()),
			Outcome:     domain.OutcomeEmptyReply,
		})
	}

	if !interpret.IsChartRequest(question) {
		return s.done(domain.PipelineResult{DisplayText: reply, Outcome: domain.OutcomeAnswered})
	}
	log.WithField("stage", domain.StageChartRequested).Debug("chart requested")

	log.WithField("stage", domain.StageExtracting).Debug("extracting chart data")
	series, err := interpret.ExtractSeries(reply)
	if err != nil {
		log.WithField("stage", domain.StageExtracting).WithError(err).Info("no chart data found in reply")
		return s.done(domain.PipelineResult{DisplayText: reply, Outcome: domain.OutcomeExtractionMiss})
	}

	labels := interpret.DeriveLabels(question)
	spec := domain.ChartSpec{
		Title:      labels.Title,
		YAxisLabel: labels.YAxis,
		XAxisLabel: labels.XAxis,
		Series:     series,
	}
	s.metrics.RecordChartSeries(len(series))

	log.WithFields(log.Fields{
		"stage":  domain.StageRendering,
		"title":  spec.Title,
		"points": len(series),
	}).Debug("rendering chart")

	artifact, err := s.renderer.Render(ctx, spec)
	if err != nil {
		var rerr *domain.RenderError
		if !errors.As(err, &rerr) {
			rerr = &domain.RenderError{Op: "render chart", Err: err}
		}
		log.WithField("stage", domain.StageRendering).WithError(rerr).Error("chart generation failed")
		return s.done(domain.PipelineResult{
			DisplayText: reply + interpret.RenderFailureAnnotation(rerr),
			Outcome:     domain.OutcomeRenderFailed,
		})
	}

	log.WithField("file", artifact.FileName).Info("chart generated")
	return s.done(domain.PipelineResult{
		DisplayText:   reply + interpret.ChartAnnotation(artifact.FileName),
		HasChart:      true,
		ChartFileName: artifact.FileName,
		Outcome:       domain.OutcomeChartRendered,
	})
}

func (s *PipelineService) done(result domain.PipelineResult) domain.PipelineResult {
	s.metrics.RecordOutcome(result.Outcome)
	log.WithFields(log.Fields{
		"stage":     domain.StageDone,
		"outcome":   result.Outcome,
		"has_chart": result.HasChart,
	}).Debug("pipeline finished")
	return result
}

type noopMetrics struct{}

func (noopMetrics) RecordOutcome(domain.Outcome)                {}
func (noopMetrics) RecordModelCall(string, time.Duration, error) {}
func (noopMetrics) RecordChartSeries(int)                       {}
