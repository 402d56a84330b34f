package sweep

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryTestClasses = []string{"SNR", "AF"}

// writeFoldResults writes a minimal test_results.json where every metric
// value equals v, except the subset accuracy which is v/2.
func writeFoldResults(t *testing.T, runDir, fold string, v float64) {
	t.Helper()
	classWise := func(metric string) string {
		return fmt.Sprintf(`"%s": {"SNR": %[2]f, "AF": %[2]f, "macro avg": %[2]f, "weighted avg": %[2]f}`, metric, v)
	}
	content := fmt.Sprintf(`{
  "class_wise": {%s, %s, %s, %s},
  "single_metrics": {"sk_subset_accuracy": %f}
}`, classWise("f1-score"), classWise("torch_roc_auc"), classWise("torch_accuracy"), classWise("torch_acc"), v/2)
	writeFile(t, filepath.Join(runDir, fold, CrossValidResultsFile), content)
}

func TestSummarizeCrossValidation_AggregatesFoldsInNumericOrder(t *testing.T) {
	runDir := t.TempDir()
	writeFoldResults(t, runDir, "fold_10", 0.6)
	writeFoldResults(t, runDir, "fold_2", 0.8)

	summary, err := SummarizeCrossValidation(runDir, summaryTestClasses, false)
	require.NoError(t, err)

	require.Len(t, summary.Rows, 2)
	assert.Equal(t, 2, summary.Rows[0].Fold)
	assert.Equal(t, 10, summary.Rows[1].Fold)
	assert.Empty(t, summary.SkippedFolds)

	// Header: Fold, classes, W-AVG_F1, m-AVG_F1, m-AVG_ROC, m-AVG_Acc, MR
	assert.Equal(t, []string{"Fold", "SNR", "AF", "W-AVG_F1", "m-AVG_F1", "m-AVG_ROC", "m-AVG_Acc", "MR"}, summary.Header)
	assert.InDelta(t, 0.8, summary.Rows[0].Values[0], 1e-9)
	assert.InDelta(t, 0.4, summary.Rows[0].Values[len(summary.Rows[0].Values)-1], 1e-9) // MR = v/2

	// Mean and sample standard deviation over {0.8, 0.6}
	assert.InDelta(t, 0.7, summary.Mean[0], 1e-9)
	assert.InDelta(t, math.Sqrt(0.02), summary.Stddev[0], 1e-9)
}

func TestSummarizeCrossValidation_MissingResultsFileSkipsFold(t *testing.T) {
	runDir := t.TempDir()
	writeFoldResults(t, runDir, "fold_1", 0.9)
	mkdirs(t, runDir, "fold_2") // no results file

	summary, err := SummarizeCrossValidation(runDir, summaryTestClasses, false)
	require.NoError(t, err)

	require.Len(t, summary.Rows, 1)
	require.Len(t, summary.SkippedFolds, 1)
	assert.True(t, strings.HasPrefix(summary.SkippedFolds[0], "fold_2:"))
}

func TestSummarizeCrossValidation_NoFoldDirsIsAnError(t *testing.T) {
	_, err := SummarizeCrossValidation(t.TempDir(), summaryTestClasses, false)
	assert.Error(t, err)
}

func TestSummarizeCrossValidation_MissingRunDirIsAnError(t *testing.T) {
	_, err := SummarizeCrossValidation(filepath.Join(t.TempDir(), "gone"), summaryTestClasses, false)
	assert.Error(t, err)
}

func TestSummarizeCrossValidation_TunedUsesTunedAccuracyColumn(t *testing.T) {
	runDir := t.TempDir()
	// torch_acc present, torch_accuracy absent: only the tuned read succeeds.
	content := `{
  "class_wise": {
    "f1-score": {"SNR": 0.5, "AF": 0.5, "macro avg": 0.5, "weighted avg": 0.5},
    "torch_roc_auc": {"macro avg": 0.5},
    "torch_acc": {"macro avg": 0.5}
  },
  "single_metrics": {"sk_subset_accuracy": 0.25}
}`
	writeFile(t, filepath.Join(runDir, "fold_1", CrossValidResultsFile), content)

	tuned, err := SummarizeCrossValidation(runDir, summaryTestClasses, true)
	require.NoError(t, err)
	assert.Len(t, tuned.Rows, 1)

	untuned, err := SummarizeCrossValidation(runDir, summaryTestClasses, false)
	require.NoError(t, err)
	assert.Empty(t, untuned.Rows)
	assert.Len(t, untuned.SkippedFolds, 1)
}

func TestCrossValidSummary_WriteCSV(t *testing.T) {
	runDir := t.TempDir()
	writeFoldResults(t, runDir, "fold_1", 0.8)
	writeFoldResults(t, runDir, "fold_2", 0.6)

	summary, err := SummarizeCrossValidation(runDir, summaryTestClasses, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, summary.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5) // header, 2 folds, mean, std
	assert.Equal(t, "Fold,SNR,AF,W-AVG_F1,m-AVG_F1,m-AVG_ROC,m-AVG_Acc,MR", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,0.800"))
	assert.True(t, strings.HasPrefix(lines[3], "mean,0.700"))
	assert.True(t, strings.HasPrefix(lines[4], "std,0.141"))
}
