package sweep

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/sweep/report"
)

// stderrTailBytes bounds how much captured stderr ends up in a record.
const stderrTailBytes = 2048

// Invocation is one evaluation request: which saved model to resume from,
// which dataset split to evaluate on, and whether to run threshold tuning.
type Invocation struct {
	ModelDir   string // model directory name, for reporting
	Dataset    string // dataset pass name, for reporting
	ResumePath string
	TestDir    string
	Tune       bool
}

// Evaluator runs one evaluation invocation to completion and reports what
// happened. Implementations never abort the batch; failures are returned as
// failed records.
type Evaluator interface {
	Evaluate(ctx context.Context, inv Invocation) report.InvocationRecord
}

// CommandRunner is the interface for running the external evaluator process.
// It exists so tests can substitute a fake for os/exec.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string) (stderr []byte, err error)
}

// ExecCommandRunner uses os/exec. The evaluator's stdout is passed through to
// the terminal; stderr is captured for the invocation record.
type ExecCommandRunner struct{}

// Run runs a command to completion.
func (ExecCommandRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return errBuf.Bytes(), err
}

// ExecEvaluator invokes an external evaluator command such as
// "python3 test.py" with --resume/--test_dir/--tune arguments.
type ExecEvaluator struct {
	Command  string
	BaseArgs []string
	runner   CommandRunner
}

// NewExecEvaluator creates an evaluator backed by os/exec.
func NewExecEvaluator(command string, baseArgs []string) *ExecEvaluator {
	return NewExecEvaluatorWithRunner(command, baseArgs, ExecCommandRunner{})
}

// NewExecEvaluatorWithRunner creates an evaluator with a custom runner.
func NewExecEvaluatorWithRunner(command string, baseArgs []string, runner CommandRunner) *ExecEvaluator {
	return &ExecEvaluator{
		Command:  command,
		BaseArgs: baseArgs,
		runner:   runner,
	}
}

// buildArgs constructs the evaluator argument vector for one invocation.
func (e *ExecEvaluator) buildArgs(inv Invocation) []string {
	args := append([]string{}, e.BaseArgs...)
	args = append(args, "--resume", inv.ResumePath, "--test_dir", inv.TestDir)
	if inv.Tune {
		args = append(args, "--tune")
	}
	return args
}

// Evaluate runs the evaluator once, blocking until it exits, and maps the
// outcome to a typed record. Exit codes are recovered from exec.ExitError;
// a process that never started is recorded with exit code -1.
func (e *ExecEvaluator) Evaluate(ctx context.Context, inv Invocation) report.InvocationRecord {
	record := report.InvocationRecord{
		ModelDir:   inv.ModelDir,
		Dataset:    inv.Dataset,
		ResumePath: inv.ResumePath,
		Status:     report.StatusOK,
	}

	start := time.Now()
	stderr, err := e.runner.Run(ctx, e.Command, e.buildArgs(inv))
	record.DurationMs = time.Since(start).Milliseconds()
	record.StderrTail = tailString(stderr, stderrTailBytes)

	if err != nil {
		record.Status = report.StatusFailed
		record.Error = err.Error()
		record.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			record.ExitCode = exitErr.ExitCode()
		}
	}
	return record
}

// tailString returns at most max trailing bytes of b as a string.
func tailString(b []byte, max int) string {
	if len(b) > max {
		b = b[len(b)-max:]
	}
	return string(b)
}
