package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/sweep"
)

var (
	summarizePath  string
	summarizeTuned bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Aggregate per-fold test results of a cross-validation run",
	Long:  "Read the test_results.json of every fold_<n> directory under --path and print a summary table (class-wise F1, averaged metrics, subset accuracy, plus mean and std rows) as CSV to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		summary, err := sweep.SummarizeCrossValidation(summarizePath, sweep.DefaultClasses, summarizeTuned)
		if err != nil {
			logrus.Fatalf("Summarize failed: %v", err)
		}
		if err := summary.WriteCSV(os.Stdout); err != nil {
			logrus.Fatalf("Failed to write summary: %v", err)
		}
		if len(summary.SkippedFolds) > 0 {
			for _, skipped := range summary.SkippedFolds {
				logrus.Errorf("Skipped %s", skipped)
			}
			os.Exit(1)
		}
		logrus.Infof("Summarized %d folds", len(summary.Rows))
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizePath, "path", "", "Cross-validation run directory containing fold_<n> subdirectories")
	summarizeCmd.Flags().BoolVar(&summarizeTuned, "tuned", false, "Use the threshold-tuned accuracy column")
	_ = summarizeCmd.MarkFlagRequired("path")

	rootCmd.AddCommand(summarizeCmd)
}
