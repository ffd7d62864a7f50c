package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"csv-insight-service/internal/core/domain"
)

const (
	canvasWidth  = 800
	canvasHeight = 400

	// horizontal space shared by all bars and the gaps between them
	barBudget = 560
)

// Renderer draws bar charts as PNG files. A chart is written to a temp file
// first and then renamed into the public directory, so readers of that
// directory only ever see complete images.
type Renderer struct {
	fs      afero.Fs
	dir     string
	tempDir string
	names   *nameSequencer
}

// NewRenderer publishes charts into dir on fs. tempDir should live on the same
// file system as dir so the final rename is atomic.
func NewRenderer(fs afero.Fs, dir, tempDir string) *Renderer {
	if tempDir == "" {
		tempDir = filepath.Join(filepath.Dir(filepath.Clean(dir)), ".chart-tmp")
	}
	return &Renderer{
		fs:      fs,
		dir:     dir,
		tempDir: tempDir,
		names:   newNameSequencer(nil),
	}
}

// Dir returns the public chart directory.
func (r *Renderer) Dir() string {
	return r.dir
}

func (r *Renderer) Render(ctx context.Context, spec domain.ChartSpec) (*domain.ChartArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RenderError{Op: "render chart", Err: err}
	}
	if len(spec.Series) == 0 {
		return nil, &domain.RenderError{Op: "render chart", Err: errors.New("chart has no data points")}
	}

	bc, err := buildBarChart(spec)
	if err != nil {
		return nil, &domain.RenderError{Op: "draw chart", Err: err}
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, &domain.RenderError{Op: "draw chart", Err: err}
	}

	name := r.names.Next()
	path, err := r.publish(name, buf.Bytes())
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"file":  name,
		"path":  path,
		"bytes": buf.Len(),
	}).Debug("chart published")

	return &domain.ChartArtifact{FileName: name, Path: path}, nil
}

func (r *Renderer) publish(name string, data []byte) (string, error) {
	if err := r.fs.MkdirAll(r.tempDir, 0o755); err != nil {
		return "", &domain.RenderError{Op: "create temp directory", Err: err}
	}

	tmp, err := afero.TempFile(r.fs, r.tempDir, chartFilePrefix+"*"+chartFileExt)
	if err != nil {
		return "", &domain.RenderError{Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		r.discard(tmpName)
		return "", &domain.RenderError{Op: "write chart", Err: err}
	}
	if err := tmp.Close(); err != nil {
		r.discard(tmpName)
		return "", &domain.RenderError{Op: "write chart", Err: err}
	}

	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		r.discard(tmpName)
		return "", &domain.RenderError{Op: "create chart directory", Err: err}
	}

	final := filepath.Join(r.dir, name)
	if err := r.fs.Rename(tmpName, final); err != nil {
		r.discard(tmpName)
		return "", &domain.RenderError{Op: "move chart", Err: err}
	}

	return final, nil
}

func (r *Renderer) discard(path string) {
	if err := r.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		log.WithError(err).WithField("path", path).Warn("failed to remove temp chart")
	}
}

// buildBarChart rejects series whose value range overflows float64.
func buildBarChart(spec domain.ChartSpec) (gochart.BarChart, error) {
	bars := make([]gochart.Value, 0, len(spec.Series))
	lo, hi := 0.0, 0.0
	for _, p := range spec.Series {
		bars = append(bars, gochart.Value{Label: p.Label, Value: p.Value})
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if math.IsInf(hi-lo, 0) {
		return gochart.BarChart{}, fmt.Errorf("value range %g to %g is too wide to plot", lo, hi)
	}
	// go-chart rejects a zero-height range
	if hi == lo {
		hi = lo + 1
	}

	barWidth, spacing := barGeometry(len(bars))

	return gochart.BarChart{
		Title:  spec.Title,
		Width:  canvasWidth,
		Height: canvasHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 40},
		},
		BarWidth:     barWidth,
		BarSpacing:   spacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: gochart.YAxis{
			Name:  spec.YAxisLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars:     bars,
		Elements: []gochart.Renderable{axisNames(spec.XAxisLabel, spec.YAxisLabel)},
	}, nil
}

func barGeometry(n int) (width, spacing int) {
	slot := barBudget / n
	width = slot * 2 / 3
	if width < 1 {
		width = 1
	}
	spacing = slot - width
	if spacing < 1 {
		spacing = 1
	}
	return width, spacing
}

// axisNames draws the category name under the bars and the value name above
// the plot. go-chart's bar chart does not label its axes itself.
func axisNames(xName, yName string) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		style := gochart.Style{
			FontSize:  11,
			FontColor: drawing.ColorBlack,
		}.InheritFrom(defaults)

		if xName != "" {
			style.WriteTextOptionsToRenderer(r)
			tb := r.MeasureText(xName)
			x := canvasBox.Left + (canvasBox.Width()-tb.Width())/2
			gochart.Draw.Text(r, xName, x, canvasHeight-8, style)
		}
		if yName != "" {
			gochart.Draw.Text(r, yName, canvasBox.Left, canvasBox.Top-10, style)
		}
	}
}
