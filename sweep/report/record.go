// Package report provides typed per-invocation results and batch aggregation
// for evaluation sweeps. This package has no dependencies on sweep/ — it
// stores pure data types.
package report

// Status classifies the outcome of one evaluator invocation.
type Status string

const (
	// StatusOK means the evaluator exited zero.
	StatusOK Status = "ok"
	// StatusFailed means the evaluator exited non-zero or never started.
	StatusFailed Status = "failed"
)

// InvocationRecord captures a single evaluator invocation.
type InvocationRecord struct {
	ModelDir   string `json:"model_dir"`
	Dataset    string `json:"dataset"`
	ResumePath string `json:"resume_path"`
	Status     Status `json:"status"`
	ExitCode   int    `json:"exit_code"` // -1 if the process never started
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`       // error string on failure
	StderrTail string `json:"stderr_tail,omitempty"` // last portion of captured stderr
}

// Label identifies the invocation in summaries and logs.
func (r InvocationRecord) Label() string {
	return r.Dataset + "/" + r.ModelDir
}
