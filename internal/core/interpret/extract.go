package interpret

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"csv-insight-service/internal/core/domain"
)

// dataMarker is the wire contract for chart data embedded in a reply:
// DATA: labels=[l1,l2,...], values=[v1,v2,...], optionally wrapped in [...].
var dataMarker = regexp.MustCompile(`\[?DATA: labels=\[(.*?)\], values=\[(.*?)\]\]?`)

// ExtractSeries reads the first structured-data marker in reply and pairs its
// labels and values by position. Every failure wraps domain.ErrExtractionMiss.
func ExtractSeries(reply string) ([]domain.SeriesPoint, error) {
	m := dataMarker.FindStringSubmatch(reply)
	if m == nil {
		return nil, fmt.Errorf("%w: marker not found", domain.ErrExtractionMiss)
	}

	labels := splitList(m[1])
	values := splitList(m[2])
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels but %d values", domain.ErrExtractionMiss, len(labels), len(values))
	}

	points := make([]domain.SeriesPoint, 0, len(labels))
	for i, raw := range values {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %q at position %d is not a finite number", domain.ErrExtractionMiss, raw, i)
		}
		points = append(points, domain.SeriesPoint{Label: labels[i], Value: v})
	}

	return points, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
