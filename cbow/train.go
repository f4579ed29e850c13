package cbow

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/manningwu07/CBOW/optimizations"
	"github.com/manningwu07/CBOW/params"
)

var (
	ErrShapeMismatch   = errors.New("matrix shape does not match config")
	ErrIndexOutOfRange = errors.New("word id out of range")
	ErrNonFinite       = errors.New("non-finite value in embeddings")
)

// EpochStats is reported after every epoch.
type EpochStats struct {
	Epoch           int // 1-based
	Loss            float64
	Pairs           int
	NegativeSamples int
	Elapsed         time.Duration
}

// ProgressFunc receives per-epoch statistics.
type ProgressFunc func(EpochStats)

// TrainStats summarises a finished run.
type TrainStats struct {
	Epochs          int
	Steps           int
	NegativeSamples int
	FinalLoss       float64 // mean loss per pair over the last epoch
}

// Trainer owns the input and output matrices for the duration of training
// and mutates them in place. It is not safe for concurrent use.
type Trainer struct {
	cfg     params.TrainingConfig
	input   *Matrix
	output  *Matrix
	sampler *NegativeSampler
	agg     Aggregator

	logger   *slog.Logger
	progress ProgressFunc
}

type TrainerOption func(*Trainer)

func WithLogger(l *slog.Logger) TrainerOption {
	return func(t *Trainer) { t.logger = l }
}

func WithProgress(fn ProgressFunc) TrainerOption {
	return func(t *Trainer) { t.progress = fn }
}

// WithAggregator overrides the strategy named by the config.
func WithAggregator(a Aggregator) TrainerOption {
	return func(t *Trainer) { t.agg = a }
}

// NewTrainer checks that both matrices are VocabSize x EmbeddingsDimension.
func NewTrainer(cfg params.TrainingConfig, input, output *Matrix, sampler *NegativeSampler, opts ...TrainerOption) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkShape("input", input, cfg); err != nil {
		return nil, err
	}
	if err := checkShape("output", output, cfg); err != nil {
		return nil, err
	}
	if sampler == nil {
		return nil, errors.New("negative sampler is nil")
	}
	agg, err := AggregatorFor(cfg.Aggregation)
	if err != nil {
		return nil, err
	}

	t := &Trainer{
		cfg:     cfg,
		input:   input,
		output:  output,
		sampler: sampler,
		agg:     agg,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Step applies one CBOW negative-sampling update for p and returns the
// step loss and the number of negatives used.
func (t *Trainer) Step(p Pair) (loss float64, negatives int) {
	lr := t.cfg.LearningRate

	// forward: hidden vector from the context rows
	neu1 := t.agg.Aggregate(t.input, p.Context)
	neu1e := make([]float64, t.cfg.EmbeddingsDimension)

	loss += optimizations.LogisticUpdateInPlace(neu1, t.output.Row(p.Target), neu1e, optimizations.PositiveLabel, lr)

	for _, n := range t.sampler.Sample(p.Target) {
		loss += optimizations.LogisticUpdateInPlace(neu1, t.output.Row(n), neu1e, optimizations.NegativeLabel, lr)
		negatives++
	}

	// backward: every context occurrence receives the full error
	for _, c := range p.Context {
		floats.Add(t.input.Row(c), neu1e)
	}
	return loss, negatives
}

// Train runs cfg.Epochs passes over pairs. With no pairs or no epochs it
// leaves the matrices untouched. Training stops with ErrNonFinite as soon as
// an epoch leaves a NaN or Inf in either matrix.
func (t *Trainer) Train(pairs []Pair) (TrainStats, error) {
	if err := t.checkPairs(pairs); err != nil {
		return TrainStats{}, err
	}

	var stats TrainStats
	start := time.Now()
	for e := 0; e < t.cfg.Epochs; e++ {
		epochStart := time.Now()
		var epochLoss float64
		var epochNeg int

		for _, p := range pairs {
			loss, neg := t.Step(p)
			epochLoss += loss
			epochNeg += neg
		}

		stats.Epochs++
		stats.Steps += len(pairs)
		stats.NegativeSamples += epochNeg
		if len(pairs) > 0 {
			stats.FinalLoss = epochLoss / float64(len(pairs))
		}

		es := EpochStats{
			Epoch:           e + 1,
			Loss:            stats.FinalLoss,
			Pairs:           len(pairs),
			NegativeSamples: epochNeg,
			Elapsed:         time.Since(epochStart),
		}
		t.logger.Debug("epoch complete",
			slog.Int("epoch", es.Epoch),
			slog.Float64("loss", es.Loss),
			slog.Int("pairs", es.Pairs),
			slog.Int("negatives", es.NegativeSamples),
			slog.Duration("elapsed", es.Elapsed))
		if t.progress != nil {
			t.progress(es)
		}

		if !t.input.Finite() || !t.output.Finite() {
			return stats, fmt.Errorf("%w: after epoch %d (learning_rate %g)", ErrNonFinite, es.Epoch, t.cfg.LearningRate)
		}
	}

	t.logger.Info("training finished",
		slog.Int("epochs", stats.Epochs),
		slog.Int("steps", stats.Steps),
		slog.Int("negatives", stats.NegativeSamples),
		slog.Float64("loss", stats.FinalLoss),
		slog.Duration("elapsed", time.Since(start)))
	return stats, nil
}

func (t *Trainer) checkPairs(pairs []Pair) error {
	for i, p := range pairs {
		if !t.inVocab(p.Target) {
			return fmt.Errorf("%w: pair %d target %d, vocab size %d", ErrIndexOutOfRange, i, p.Target, t.cfg.VocabSize)
		}
		for _, c := range p.Context {
			if !t.inVocab(c) {
				return fmt.Errorf("%w: pair %d context id %d, vocab size %d", ErrIndexOutOfRange, i, c, t.cfg.VocabSize)
			}
		}
	}
	for _, id := range t.sampler.corpus {
		if !t.inVocab(id) {
			return fmt.Errorf("%w: corpus id %d, vocab size %d", ErrIndexOutOfRange, id, t.cfg.VocabSize)
		}
	}
	return nil
}

func checkShape(name string, m *Matrix, cfg params.TrainingConfig) error {
	if m == nil {
		return fmt.Errorf("%w: %s matrix is nil", ErrShapeMismatch, name)
	}
	if m.Rows != cfg.VocabSize || m.Cols != cfg.EmbeddingsDimension || len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("%w: %s is %dx%d (len %d), want %dx%d",
			ErrShapeMismatch, name, m.Rows, m.Cols, len(m.Data), cfg.VocabSize, cfg.EmbeddingsDimension)
	}
	return nil
}

func (t *Trainer) inVocab(id int) bool {
	return id >= 0 && id < t.cfg.VocabSize
}
