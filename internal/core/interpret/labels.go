package interpret

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultTitle      = "Data Visualization"
	DefaultYAxisLabel = "Value"
	DefaultXAxisLabel = "Category"
)

// Each label has its own pattern. They are matched independently and may
// disagree on unusual questions; keep them separate.
var (
	titlePattern     = regexp.MustCompile(`(?i)of\s+(.+?)\s+by\s+(.+)`)
	yAxisPattern     = regexp.MustCompile(`(?i)of\s+(.+?)\s+by`)
	xAxisPattern     = regexp.MustCompile(`(?i)by\s+(.+)`)
	chartWordPattern = regexp.MustCompile(`\s*(graph|plot|chart).*`)
)

// Labels are the captions of a chart derived from the question.
type Labels struct {
	Title string
	YAxis string
	XAxis string
}

// DeriveLabels runs the three label heuristics over the same question.
func DeriveLabels(question string) Labels {
	return Labels{
		Title: ChartTitle(question),
		YAxis: YAxisLabel(question),
		XAxis: XAxisLabel(question),
	}
}

// ChartTitle turns "... of <A> by <B>" into "A by B".
func ChartTitle(question string) string {
	m := titlePattern.FindStringSubmatch(question)
	if m == nil {
		return DefaultTitle
	}
	return Capitalize(m[1]) + " by " + Capitalize(m[2])
}

func YAxisLabel(question string) string {
	m := yAxisPattern.FindStringSubmatch(question)
	if m == nil {
		return DefaultYAxisLabel
	}
	return Capitalize(m[1])
}

// XAxisLabel takes whatever follows "by", dropping a trailing
// "graph"/"plot"/"chart" and everything after it.
func XAxisLabel(question string) string {
	m := xAxisPattern.FindStringSubmatch(question)
	if m == nil {
		return DefaultXAxisLabel
	}
	label := strings.TrimSpace(m[1])
	label = chartWordPattern.ReplaceAllString(label, "")
	return Capitalize(label)
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}
