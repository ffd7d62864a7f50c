package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsChartRequest(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"Show a graph of sales by region", true},
		{"PLOT revenue", true},
		{"Can you draw a Chart?", true},
		{"what is the bar-chart total", true},
		{"What is the average salary?", false},
		{"", false},
		{"graphs are nice", true},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, IsChartRequest(tt.question))
		})
	}
}
