// Command csvask asks one question about a local CSV, TSV or XLSX file and
// prints the answer, rendering a chart when the question asks for one.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	question    string
	chartsDir   string
	showPreview bool
	asJSON      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "csvask [file]",
		Short: "Ask a language model a question about a tabular file",
		Long: `csvask sends the rows of a CSV, TSV or XLSX file together with a question
to the configured language model (LLM_PROVIDER, LLM_API_KEY, LLM_MODEL).
Questions mentioning a graph, plot or chart produce a PNG bar chart.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&question, "question", "q", "", "Question to ask about the data (required)")
	rootCmd.Flags().StringVar(&chartsDir, "charts-dir", "", "Directory for rendered charts (default: CHARTS_DIR)")
	rootCmd.Flags().BoolVar(&showPreview, "preview", false, "Print the first lines of the file before the answer")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	_ = rootCmd.MarkFlagRequired("question")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
