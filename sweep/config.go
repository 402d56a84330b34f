// Package sweep implements checkpoint-tree maintenance and batch evaluation
// sweeps over directories of saved model checkpoints.
package sweep

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCheckpointFile is the best-model file written by the trainer
	// into each model directory.
	DefaultCheckpointFile = "model_best.pth"

	// DefaultPrunePattern matches intermediate checkpoint directories
	// produced during training.
	DefaultPrunePattern = "checkpoint_*"
)

// DatasetPass describes one full evaluation pass over all model directories
// against a single dataset split.
type DatasetPass struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
	Tune bool   `yaml:"tune"`
}

// EvaluatorConfig describes the external evaluator command line. Args are
// prepended before the per-invocation flags (e.g. ["test.py"] for a
// "python3 test.py ..." invocation).
type EvaluatorConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Config holds everything an evaluation sweep needs.
type Config struct {
	Root           string          `yaml:"root"`
	CheckpointFile string          `yaml:"checkpoint_file"`
	Evaluator      EvaluatorConfig `yaml:"evaluator"`
	Datasets       []DatasetPass   `yaml:"datasets"`
}

// LoadConfig parses a sweep config YAML file with strict field checking, so
// that typos in keys cause errors instead of silent defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sweep config %q: %w", path, err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse sweep config %q: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.CheckpointFile == "" {
		c.CheckpointFile = DefaultCheckpointFile
	}
	for i := range c.Datasets {
		if c.Datasets[i].Name == "" {
			c.Datasets[i].Name = fmt.Sprintf("pass_%d", i+1)
		}
	}
}

// Validate checks the configuration once at startup. The root must exist and
// be a directory; the evaluator command and every dataset dir must be set.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root path not set")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root path %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %q is not a directory", c.Root)
	}
	if c.CheckpointFile == "" {
		return fmt.Errorf("checkpoint file name not set")
	}
	if c.Evaluator.Command == "" {
		return fmt.Errorf("evaluator command not set")
	}
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no dataset passes configured")
	}
	for _, ds := range c.Datasets {
		if ds.Dir == "" {
			return fmt.Errorf("dataset pass %q has no dir", ds.Name)
		}
	}
	return nil
}
