package report

import (
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates statistics from a BatchReport.
type Summary struct {
	TotalInvocations int      `json:"total_invocations"`
	OKCount          int      `json:"ok_count"`
	FailedCount      int      `json:"failed_count"`
	FailedLabels     []string `json:"failed_labels,omitempty"` // dataset/model_dir, encounter order
	MeanDurationMs   float64  `json:"mean_duration_ms"`
	MaxDurationMs    int64    `json:"max_duration_ms"`
}

// Summarize computes aggregate statistics from a BatchReport.
// Safe for nil or empty reports (returns zero-value fields).
func Summarize(br *BatchReport) *Summary {
	summary := &Summary{}
	if br == nil || len(br.Records) == 0 {
		return summary
	}

	summary.TotalInvocations = len(br.Records)
	durations := make([]float64, 0, len(br.Records))
	for _, r := range br.Records {
		if r.Status == StatusOK {
			summary.OKCount++
		} else {
			summary.FailedCount++
			summary.FailedLabels = append(summary.FailedLabels, r.Label())
		}
		durations = append(durations, float64(r.DurationMs))
		if r.DurationMs > summary.MaxDurationMs {
			summary.MaxDurationMs = r.DurationMs
		}
	}
	summary.MeanDurationMs = stat.Mean(durations, nil)

	return summary
}
