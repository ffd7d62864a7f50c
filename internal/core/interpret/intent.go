package interpret

import "strings"

var chartKeywords = []string{"graph", "plot", "chart"}

// IsChartRequest reports whether the question asks for a chart.
// Only the question is inspected, never the reply.
func IsChartRequest(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range chartKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
