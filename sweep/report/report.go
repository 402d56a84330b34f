package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// BatchReport collects invocation records during an evaluation sweep.
type BatchReport struct {
	Records []InvocationRecord `json:"records"`
}

// NewBatchReport creates a BatchReport ready for recording.
func NewBatchReport() *BatchReport {
	return &BatchReport{
		Records: make([]InvocationRecord, 0),
	}
}

// Record appends an invocation record.
func (br *BatchReport) Record(record InvocationRecord) {
	br.Records = append(br.Records, record)
}

// Failed returns the failed records in encounter order.
func (br *BatchReport) Failed() []InvocationRecord {
	var failed []InvocationRecord
	for _, r := range br.Records {
		if r.Status != StatusOK {
			failed = append(failed, r)
		}
	}
	return failed
}

// OK reports whether every invocation in the batch succeeded.
func (br *BatchReport) OK() bool {
	return len(br.Failed()) == 0
}

// reportFile is the on-disk shape of a batch report artifact.
type reportFile struct {
	Records []InvocationRecord `json:"records"`
	Summary *Summary           `json:"summary"`
}

// WriteJSON writes the records plus their summary as indented JSON to path.
func (br *BatchReport) WriteJSON(path string) error {
	data, err := json.MarshalIndent(reportFile{
		Records: br.Records,
		Summary: Summarize(br),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write batch report %q: %w", path, err)
	}
	return nil
}
