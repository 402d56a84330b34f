package sweep

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/sweep/report"
)

// Driver replays an evaluation command over every model directory under the
// configured root, once per dataset pass. Invocations run strictly
// sequentially; a failed invocation is recorded and the batch continues.
type Driver struct {
	cfg  *Config
	eval Evaluator

	// Timeout bounds a single invocation. Zero means no deadline.
	Timeout time.Duration
}

// NewDriver creates a driver for the given configuration and evaluator.
func NewDriver(cfg *Config, eval Evaluator) *Driver {
	return &Driver{
		cfg:  cfg,
		eval: eval,
	}
}

// Run executes every configured dataset pass over the model directories and
// returns the aggregated batch report. The model directory listing is taken
// once and reused for every pass. Only listing the root can fail; evaluator
// failures end up in the report instead.
func (d *Driver) Run(ctx context.Context) (*report.BatchReport, error) {
	dirs, err := ModelDirs(d.cfg.Root)
	if err != nil {
		return nil, err
	}

	batch := report.NewBatchReport()
	for _, ds := range d.cfg.Datasets {
		logrus.Infof("Evaluating %d model directories against %s (%s)", len(dirs), ds.Name, ds.Dir)
		for _, dir := range dirs {
			logrus.Infof("Evaluating %s", dir)
			inv := Invocation{
				ModelDir:   dir,
				Dataset:    ds.Name,
				ResumePath: filepath.Join(d.cfg.Root, dir, d.cfg.CheckpointFile),
				TestDir:    ds.Dir,
				Tune:       ds.Tune,
			}
			record := d.evaluate(ctx, inv)
			if record.Status != report.StatusOK {
				logrus.Warnf("Evaluation of %s failed (exit code %d): %s", record.Label(), record.ExitCode, record.Error)
			}
			batch.Record(record)
		}
	}
	return batch, nil
}

func (d *Driver) evaluate(ctx context.Context, inv Invocation) report.InvocationRecord {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	return d.eval.Evaluate(ctx, inv)
}
