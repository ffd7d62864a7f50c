package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"csv-insight-service/internal/adapters/secondary/chart"
	"csv-insight-service/internal/adapters/secondary/llm"
	"csv-insight-service/internal/adapters/secondary/memory"
	"csv-insight-service/internal/adapters/secondary/tabular"
	"csv-insight-service/internal/config"
	"csv-insight-service/internal/core/domain"
	ports "csv-insight-service/internal/core/ports/output"
	"csv-insight-service/internal/core/services"
)

type askOptions struct {
	Path      string
	Question  string
	ChartsDir string
	Preview   bool
	JSON      bool
}

type askOutput struct {
	Response  string `json:"response"`
	HasChart  bool   `json:"has_chart"`
	ChartPath string `json:"chart_path,omitempty"`
	Outcome   string `json:"outcome"`
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())

	model, err := llm.New(&cfg.LLM)
	if err != nil {
		return err
	}

	opts := askOptions{
		Path:      args[0],
		Question:  question,
		ChartsDir: cfg.Charts.Dir,
		Preview:   showPreview,
		JSON:      asJSON,
	}
	if chartsDir != "" {
		opts.ChartsDir = chartsDir
	}

	return ask(cmd.Context(), afero.NewOsFs(), model, opts, cmd.OutOrStdout())
}

func ask(ctx context.Context, fs afero.Fs, model ports.LanguageModel, opts askOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	content, err := afero.ReadFile(fs, opts.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.Path, err)
	}

	sessionSvc := services.NewSessionService(memory.NewSessionRepository(0), tabular.NewParser(), services.DefaultPreviewLines)
	session, err := sessionSvc.Upload(ctx, uuid.Nil, filepath.Base(opts.Path), content)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Path, err)
	}

	renderer := chart.NewRenderer(fs, opts.ChartsDir, "")
	pipelineSvc := services.NewPipelineService(model, renderer, nil)
	result := pipelineSvc.Ask(ctx, session.Dataset, opts.Question)

	return printResult(out, opts, sessionSvc.Preview(session), result)
}

func printResult(out io.Writer, opts askOptions, preview string, result domain.PipelineResult) error {
	res := askOutput{
		Response: result.DisplayText,
		HasChart: result.HasChart,
		Outcome:  string(result.Outcome),
	}
	if result.HasChart {
		res.ChartPath = filepath.Join(opts.ChartsDir, result.ChartFileName)
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if opts.Preview {
		fmt.Fprintf(out, "%s\n\n", preview)
	}
	fmt.Fprintln(out, res.Response)
	if res.HasChart {
		fmt.Fprintf(out, "\nChart: %s\n", res.ChartPath)
	}
	return nil
}
