// Package interpret turns a tabular upload into a model prompt and reads chart
// data back out of the model's free-text reply.
package interpret

import "strings"

const fieldSeparator = ", "

// Flatten renders rows as prompt text: fields joined by ", ", every row
// terminated by a newline. Fields are embedded as-is.
func Flatten(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, fieldSeparator))
		sb.WriteByte('\n')
	}
	return sb.String()
}
