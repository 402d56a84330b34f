package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ParsesAllFields(t *testing.T) {
	path := writeConfig(t, `
root: savedVM/models/Multibranch_MACRO_CV
checkpoint_file: model_best.pth
evaluator:
  command: python3
  args: [test.py]
datasets:
  - name: valid
    dir: data/CinC_CPSC/valid
  - name: test
    dir: data/CinC_CPSC/test
    tune: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "savedVM/models/Multibranch_MACRO_CV", cfg.Root)
	assert.Equal(t, "model_best.pth", cfg.CheckpointFile)
	assert.Equal(t, "python3", cfg.Evaluator.Command)
	assert.Equal(t, []string{"test.py"}, cfg.Evaluator.Args)
	require.Len(t, cfg.Datasets, 2)
	assert.False(t, cfg.Datasets[0].Tune)
	assert.True(t, cfg.Datasets[1].Tune)
}

func TestLoadConfig_UnknownKeysAreErrors(t *testing.T) {
	path := writeConfig(t, `
root: savedVM
chekpoint_file: model_best.pth
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
root: savedVM
evaluator:
  command: python3
datasets:
  - dir: data/test
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCheckpointFile, cfg.CheckpointFile)
	assert.Equal(t, "pass_1", cfg.Datasets[0].Name)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	root := t.TempDir()
	valid := Config{
		Root:           root,
		CheckpointFile: DefaultCheckpointFile,
		Evaluator:      EvaluatorConfig{Command: "python3", Args: []string{"test.py"}},
		Datasets:       []DatasetPass{{Name: "test", Dir: "data/test"}},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing root", func(c *Config) { c.Root = "" }, true},
		{"nonexistent root", func(c *Config) { c.Root = filepath.Join(root, "gone") }, true},
		{"empty evaluator command", func(c *Config) { c.Evaluator.Command = "" }, true},
		{"no datasets", func(c *Config) { c.Datasets = nil }, true},
		{"dataset without dir", func(c *Config) { c.Datasets = []DatasetPass{{Name: "x"}} }, true},
		{"empty checkpoint file", func(c *Config) { c.CheckpointFile = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidate_RootMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "root")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := Config{
		Root:           file,
		CheckpointFile: DefaultCheckpointFile,
		Evaluator:      EvaluatorConfig{Command: "python3"},
		Datasets:       []DatasetPass{{Dir: "data/test"}},
	}
	assert.Error(t, cfg.Validate())
}
