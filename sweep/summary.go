package sweep

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// CrossValidResultsFile is the per-fold metrics file written by the evaluator
// into each fold directory.
const CrossValidResultsFile = "test_results.json"

// DefaultClasses are the CinC 2020 diagnosis classes the models predict, in
// reporting order.
var DefaultClasses = []string{"SNR", "AF", "IAVB", "LBBB", "RBBB", "PAC", "VEB", "STD", "STE"}

// foldResults mirrors the evaluator's per-fold results file: class-wise
// metric tables plus scalar single metrics.
type foldResults struct {
	ClassWise     map[string]map[string]float64 `json:"class_wise"`
	SingleMetrics map[string]float64            `json:"single_metrics"`
}

// FoldRow is one summary table row: the fold number and its metric values in
// header order.
type FoldRow struct {
	Fold   int
	Values []float64
}

// CrossValidSummary is the aggregated summary table of one cross-validation
// run directory: per-fold rows plus mean and standard deviation per column.
type CrossValidSummary struct {
	Header       []string // "Fold" followed by the value column names
	Rows         []FoldRow
	Mean         []float64
	Stddev       []float64
	SkippedFolds []string // fold dirs whose results could not be loaded, with reason
}

// SummarizeCrossValidation reads the per-fold evaluation results under
// runDir (directories named fold_<n>, in fold-number order) and aggregates
// them into a summary table: class-wise F1 per fold, the weighted and macro
// averaged metrics, and the subset accuracy (MR). With tuned set, the
// accuracy column produced by threshold tuning is used. Folds whose results
// file is missing or malformed are skipped and listed in SkippedFolds.
func SummarizeCrossValidation(runDir string, classes []string, tuned bool) (*CrossValidSummary, error) {
	folds, err := foldDirs(runDir)
	if err != nil {
		return nil, err
	}
	if len(folds) == 0 {
		return nil, fmt.Errorf("no fold directories under %q", runDir)
	}

	accKey := "torch_accuracy"
	if tuned {
		accKey = "torch_acc"
	}

	header := append([]string{"Fold"}, classes...)
	header = append(header, "W-AVG_F1", "m-AVG_F1", "m-AVG_ROC", "m-AVG_Acc", "MR")

	summary := &CrossValidSummary{Header: header}
	for _, fold := range folds {
		values, err := foldRowValues(filepath.Join(runDir, fold.name, CrossValidResultsFile), classes, accKey)
		if err != nil {
			summary.SkippedFolds = append(summary.SkippedFolds, fmt.Sprintf("%s: %v", fold.name, err))
			continue
		}
		summary.Rows = append(summary.Rows, FoldRow{Fold: fold.number, Values: values})
	}

	if len(summary.Rows) > 0 {
		numCols := len(header) - 1
		summary.Mean = make([]float64, numCols)
		summary.Stddev = make([]float64, numCols)
		column := make([]float64, 0, len(summary.Rows))
		for col := 0; col < numCols; col++ {
			column = column[:0]
			for _, row := range summary.Rows {
				column = append(column, row.Values[col])
			}
			summary.Mean[col] = stat.Mean(column, nil)
			summary.Stddev[col] = stat.StdDev(column, nil)
		}
	}
	return summary, nil
}

// foldRowValues loads one fold's results file and extracts the summary row
// values in header order.
func foldRowValues(path string, classes []string, accKey string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var results foldResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	var values []float64
	for _, class := range classes {
		v, err := classWiseValue(results, "f1-score", class)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	for _, col := range [][2]string{
		{"f1-score", "weighted avg"},
		{"f1-score", "macro avg"},
		{"torch_roc_auc", "macro avg"},
		{accKey, "macro avg"},
	} {
		v, err := classWiseValue(results, col[0], col[1])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	mr, ok := results.SingleMetrics["sk_subset_accuracy"]
	if !ok {
		return nil, fmt.Errorf("missing single metric %q", "sk_subset_accuracy")
	}
	values = append(values, mr)
	return values, nil
}

func classWiseValue(results foldResults, metric, column string) (float64, error) {
	table, ok := results.ClassWise[metric]
	if !ok {
		return 0, fmt.Errorf("missing metric %q", metric)
	}
	v, ok := table[column]
	if !ok {
		return 0, fmt.Errorf("missing column %q for metric %q", column, metric)
	}
	return v, nil
}

type foldDir struct {
	name   string
	number int
}

// foldDirs lists the fold_<n> directories under runDir in fold-number order,
// so fold_2 sorts before fold_10.
func foldDirs(runDir string) ([]foldDir, error) {
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return nil, fmt.Errorf("read run dir %q: %w", runDir, err)
	}
	var folds []foldDir
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "fold_") {
			continue
		}
		number, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), "fold_"))
		if err != nil {
			continue
		}
		folds = append(folds, foldDir{name: entry.Name(), number: number})
	}
	sort.Slice(folds, func(i, j int) bool { return folds[i].number < folds[j].number })
	return folds, nil
}

// WriteCSV writes the summary table as CSV: one row per fold, then a mean
// row and a standard deviation row. Values are rounded to three decimals,
// matching the project's reporting convention.
func (s *CrossValidSummary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, row := range s.Rows {
		record := append([]string{strconv.Itoa(row.Fold)}, formatValues(row.Values)...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write fold row: %w", err)
		}
	}
	if err := cw.Write(append([]string{"mean"}, formatValues(s.Mean)...)); err != nil {
		return fmt.Errorf("write mean row: %w", err)
	}
	if err := cw.Write(append([]string{"std"}, formatValues(s.Stddev)...)); err != nil {
		return fmt.Errorf("write std row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func formatValues(values []float64) []string {
	formatted := make([]string, len(values))
	for i, v := range values {
		formatted[i] = strconv.FormatFloat(v, 'f', 3, 64)
	}
	return formatted
}
