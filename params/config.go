package params

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid training config")

// Context aggregation strategies.
const (
	AggregateSum  = "sum"
	AggregateMean = "mean"
)

// Negative sample filters.
//
// ExcludeTarget drops draws equal to the true target (the usual semantics).
// KeepTarget keeps only the draws equal to the true target, which is what the
// first version of this trainer did. Both stay selectable so runs made with
// either behaviour can be reproduced.
const (
	ExcludeTarget = "exclude_target"
	KeepTarget    = "keep_target"
)

type TrainingConfig struct {
	VocabSize           int     `yaml:"-"`                    // |V|, fixed by NewConfig
	EmbeddingsDimension int     `yaml:"embeddings_dimension"` // width of each vector
	RandomSamples       int     `yaml:"random_samples"`       // negative draws per step (before filtering)
	Mean                float64 `yaml:"mean"`                 // input matrix init mean
	StdDev              float64 `yaml:"std_dev"`              // input matrix init std-dev
	HalfWindow          int     `yaml:"window_size"`          // context radius w; window is 2w+1
	LearningRate        float64 `yaml:"learning_rate"`
	Epochs              int     `yaml:"epochs"`

	Seed           uint64 `yaml:"seed"`            // 0 = pick from the clock
	Aggregation    string `yaml:"aggregation"`     // sum | mean
	NegativeFilter string `yaml:"negative_filter"` // exclude_target | keep_target
}

// DefaultConfig returns the defaults for small corpora.
func DefaultConfig() TrainingConfig {
	return TrainingConfig{
		EmbeddingsDimension: 100,
		RandomSamples:       30,
		Mean:                0.0,
		StdDev:              0.01,
		HalfWindow:          2,
		LearningRate:        0.01,
		Epochs:              100,

		Aggregation:    AggregateSum,
		NegativeFilter: ExcludeTarget,
	}
}

// NewConfig fixes the vocabulary size on base and validates the result.
// The returned value is not meant to be changed once training starts.
func NewConfig(vocabSize int, base TrainingConfig) (TrainingConfig, error) {
	cfg := base
	cfg.VocabSize = vocabSize
	if err := cfg.Validate(); err != nil {
		return TrainingConfig{}, err
	}
	return cfg, nil
}

// WindowSize is the full window length, 2w+1.
func (c TrainingConfig) WindowSize() int {
	return c.HalfWindow*2 + 1
}

// TargetOffset is the position of the target inside a window.
func (c TrainingConfig) TargetOffset() int {
	return c.HalfWindow
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c TrainingConfig) Validate() error {
	switch {
	case c.VocabSize < 0:
		return invalid("vocab_size must not be negative, got %d", c.VocabSize)
	case c.EmbeddingsDimension <= 0:
		return invalid("embeddings_dimension must be positive, got %d", c.EmbeddingsDimension)
	case c.RandomSamples < 0:
		return invalid("random_samples must not be negative, got %d", c.RandomSamples)
	case !finite(c.Mean):
		return invalid("mean must be finite, got %g", c.Mean)
	case !finite(c.StdDev) || c.StdDev <= 0:
		return invalid("std_dev must be positive and finite, got %g", c.StdDev)
	case c.HalfWindow < 1:
		return invalid("window_size must be at least 1, got %d", c.HalfWindow)
	case !finite(c.LearningRate) || c.LearningRate <= 0:
		return invalid("learning_rate must be positive and finite, got %g", c.LearningRate)
	case c.Epochs < 0:
		return invalid("epochs must not be negative, got %d", c.Epochs)
	}
	switch c.Aggregation {
	case AggregateSum, AggregateMean:
	default:
		return invalid("unknown aggregation %q", c.Aggregation)
	}
	switch c.NegativeFilter {
	case ExcludeTarget, KeepTarget:
	default:
		return invalid("unknown negative_filter %q", c.NegativeFilter)
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig. Keys not in TrainingConfig
// are rejected. The vocabulary size is not part of the file.
func LoadConfig(path string) (TrainingConfig, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
