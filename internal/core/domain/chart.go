package domain

// SeriesPoint is one bar of a categorical chart.
type SeriesPoint struct {
	Label string
	Value float64
}

// ChartSpec is the fully resolved input of a chart render.
// Series always holds at least one point with a finite value.
type ChartSpec struct {
	Title      string
	YAxisLabel string
	XAxisLabel string
	Series     []SeriesPoint
}

// ChartArtifact identifies a rendered chart image in the public chart directory.
type ChartArtifact struct {
	FileName string
	Path     string
}
