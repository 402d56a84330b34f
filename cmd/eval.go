package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/sweep"
	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/sweep/report"
)

var (
	evalConfigPath     string
	evalRoot           string
	evalCheckpointFile string
	evalCommand        string
	evalBaseArgs       []string
	evalTestDirs       []string
	evalTune           bool
	evalReportPath     string
	evalTimeout        time.Duration
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run the evaluator over every model directory under a root path",
	Long:  "For each immediate subdirectory of --root, invoke the external evaluator with the directory's saved checkpoint and each configured dataset directory. Failed invocations are recorded and the sweep continues; the exit status reflects whether any invocation failed.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := evalSweepConfig(cmd)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		evaluator := sweep.NewExecEvaluator(cfg.Evaluator.Command, cfg.Evaluator.Args)
		driver := sweep.NewDriver(cfg, evaluator)
		driver.Timeout = evalTimeout

		batch, err := driver.Run(context.Background())
		if err != nil {
			logrus.Fatalf("Evaluation sweep failed: %v", err)
		}

		if evalReportPath != "" {
			if err := batch.WriteJSON(evalReportPath); err != nil {
				logrus.Fatalf("Failed to write batch report: %v", err)
			}
			logrus.Infof("Batch report written to %s", evalReportPath)
		}

		summary := report.Summarize(batch)
		logrus.Infof("Sweep complete: %d invocations, %d ok, %d failed",
			summary.TotalInvocations, summary.OKCount, summary.FailedCount)
		if summary.FailedCount > 0 {
			for _, label := range summary.FailedLabels {
				logrus.Errorf("Failed: %s", label)
			}
			os.Exit(1)
		}
	},
}

// evalSweepConfig resolves the sweep configuration from the optional config
// file plus flag overrides. Flags that were set on the command line win over
// file values.
func evalSweepConfig(cmd *cobra.Command) (*sweep.Config, error) {
	cfg := &sweep.Config{
		CheckpointFile: sweep.DefaultCheckpointFile,
		Evaluator:      sweep.EvaluatorConfig{Command: "python3", Args: []string{"test.py"}},
	}
	if evalConfigPath != "" {
		loaded, err := sweep.LoadConfig(evalConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("root") {
		cfg.Root = evalRoot
	}
	if cmd.Flags().Changed("checkpoint-file") {
		cfg.CheckpointFile = evalCheckpointFile
	}
	if cmd.Flags().Changed("evaluator") {
		cfg.Evaluator.Command = evalCommand
	}
	if cmd.Flags().Changed("evaluator-arg") {
		cfg.Evaluator.Args = evalBaseArgs
	}
	if cmd.Flags().Changed("test-dir") {
		cfg.Datasets = nil
		for _, dir := range evalTestDirs {
			cfg.Datasets = append(cfg.Datasets, sweep.DatasetPass{
				Name: filepath.Base(dir),
				Dir:  dir,
				Tune: evalTune,
			})
		}
	}
	return cfg, nil
}

func init() {
	evalCmd.Flags().StringVar(&evalConfigPath, "config", "", "Path to sweep config YAML file")
	evalCmd.Flags().StringVar(&evalRoot, "root", "", "Root path containing one model directory per run")
	evalCmd.Flags().StringVar(&evalCheckpointFile, "checkpoint-file", sweep.DefaultCheckpointFile, "Checkpoint file name expected in each model directory")
	evalCmd.Flags().StringVar(&evalCommand, "evaluator", "python3", "Evaluator command")
	evalCmd.Flags().StringArrayVar(&evalBaseArgs, "evaluator-arg", []string{"test.py"}, "Leading evaluator argument (can be repeated)")
	evalCmd.Flags().StringArrayVar(&evalTestDirs, "test-dir", nil, "Test data directory, one pass per flag (can be repeated)")
	evalCmd.Flags().BoolVar(&evalTune, "tune", false, "Request threshold tuning from the evaluator")
	evalCmd.Flags().StringVar(&evalReportPath, "report", "", "Write the batch report JSON to this path")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", 0, "Per-invocation timeout (0 = none)")

	rootCmd.AddCommand(evalCmd)
}
