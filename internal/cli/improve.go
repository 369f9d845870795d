// internal/cli/improve.go
package cardsmith

import "github.com/spf13/cobra"

var improveCmd = &cobra.Command{
	Use:   "improve",
	Short: "Rewrite raw definitions through an LLM batch pipeline",
	Long: `Improve reads a vocabulary CSV, sends the words to an Ollama-compatible
backend in batches, validates the NDJSON responses, retries unresolved words,
and writes a CSV with word, original, model, and cleaned definition columns.
Words that never resolve keep empty enhancement columns; the run still
succeeds and reports them in the summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImprove(cmd)
	},
}

func init() {
	rootCmd.AddCommand(improveCmd)

	improveCmd.Flags().StringP("in", "i", "", "input CSV with at least a 'word' column")
	improveCmd.Flags().StringP("out", "o", "", "output CSV path")
	improveCmd.Flags().StringP("system", "s", "", "system prompt file")
	improveCmd.Flags().StringP("model", "m", "", "backend model name")
	improveCmd.Flags().String("url", "", "backend base URL")
	improveCmd.Flags().Int("batch", 0, "words per request")
	improveCmd.Flags().Int("retry-batch", 0, "words per retry request")
	improveCmd.Flags().Int("retries", 0, "retry rounds for unresolved words")
	improveCmd.Flags().Int("timeout", 0, "request timeout in seconds")
	improveCmd.Flags().Int("concurrency", 0, "batches in flight at once")
	improveCmd.Flags().Float64("temperature", 0, "sampling temperature")
	improveCmd.Flags().Float64("top-p", 0, "sampling top-p")
	improveCmd.Flags().Float64("sleep", 0, "pause between retry requests in seconds")
	_ = improveCmd.MarkFlagRequired("in")
	_ = improveCmd.MarkFlagRequired("out")
}
